package configuration

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type configurationService struct {
	configuration Configuration
}

func (cs *configurationService) GetConfiguration() Configuration {
	return cs.configuration
}

// Init reads the settings file. A missing file yields the defaults.
func Init(filename string) (ConfigurationService, error) {
	cfg := Default()

	buf, err := os.ReadFile(filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %v: %w", filename, err)
	}

	if err == nil {
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("parse %v: %w", filename, err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &configurationService{configuration: cfg}, nil
}

func Default() Configuration {
	cfg := Configuration{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Configuration) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./eeprom.bin"
	}
	if cfg.Storage.Size == 0 {
		cfg.Storage.Size = 1024
	}
	if cfg.Http.Address == "" {
		cfg.Http.Address = ":80"
	}
	if cfg.Network.Interface == "" {
		cfg.Network.Interface = "wlan0"
	}
	if cfg.Network.JoinTimeoutSeconds == 0 {
		cfg.Network.JoinTimeoutSeconds = 60
	}
	if cfg.Broker.RetryIntervalSeconds == 0 {
		cfg.Broker.RetryIntervalSeconds = 30
	}
	if cfg.Broker.ConnectTimeoutSeconds == 0 {
		cfg.Broker.ConnectTimeoutSeconds = 10
	}
	if cfg.Broker.KeepAliveSeconds == 0 {
		cfg.Broker.KeepAliveSeconds = 15
	}
	if cfg.Telemetry.IntervalSeconds == 0 {
		cfg.Telemetry.IntervalSeconds = 30
	}
	if cfg.Sensor.Path == "" {
		cfg.Sensor.Path = "/sys/class/thermal/thermal_zone0/temp"
	}
	if cfg.TickMilliseconds == 0 {
		cfg.TickMilliseconds = 10
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg Configuration) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Storage.Size < 0 || cfg.Network.JoinTimeoutSeconds < 0 ||
		cfg.Broker.RetryIntervalSeconds < 0 || cfg.Telemetry.IntervalSeconds < 0 ||
		cfg.TickMilliseconds < 0 {
		return errors.New("sizes and intervals must not be negative")
	}

	return nil
}

func (c Configuration) JoinTimeout() time.Duration {
	return time.Duration(c.Network.JoinTimeoutSeconds) * time.Second
}

func (c Configuration) RetryInterval() time.Duration {
	return time.Duration(c.Broker.RetryIntervalSeconds) * time.Second
}

func (c Configuration) ConnectTimeout() time.Duration {
	return time.Duration(c.Broker.ConnectTimeoutSeconds) * time.Second
}

func (c Configuration) KeepAlive() time.Duration {
	return time.Duration(c.Broker.KeepAliveSeconds) * time.Second
}

func (c Configuration) TelemetryInterval() time.Duration {
	return time.Duration(c.Telemetry.IntervalSeconds) * time.Second
}

func (c Configuration) TickInterval() time.Duration {
	return time.Duration(c.TickMilliseconds) * time.Millisecond
}
