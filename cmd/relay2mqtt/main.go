package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supby/relay2mqtt/internal/configuration"
	"github.com/supby/relay2mqtt/internal/control"
	"github.com/supby/relay2mqtt/internal/controller"
	"github.com/supby/relay2mqtt/internal/logger"
	"github.com/supby/relay2mqtt/internal/mqtt"
	"github.com/supby/relay2mqtt/internal/network"
	"github.com/supby/relay2mqtt/internal/store"
	"github.com/supby/relay2mqtt/internal/telemetry"
)

const (
	controlQueueSize = 8
	shutdownTimeout  = 5 * time.Second
)

func main() {
	var configFile = flag.String("c", "./configuration.yaml", "path to config file name")
	flag.Parse()

	mainLogger := logger.GetLogger("[main]", logger.LogLevelInfo)

	configService, err := configuration.Init(*configFile)
	if err != nil {
		mainLogger.Error("Configuration initialization error: %v", err)
		os.Exit(1)
	}
	settings := configService.GetConfiguration()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := logger.ParseLevel(settings.LogLevel)
	d := device{
		settings: settings,
		newLogger: func(prefix string) logger.Logger {
			return logger.GetLogger(prefix, level)
		},
	}
	if settings.Storage.Backend == configuration.BackendMemory {
		d.memory = store.NewMemoryRegion(settings.Storage.Size)
	}

	for {
		err := d.run(ctx)
		if errors.Is(err, controller.ErrRestart) {
			mainLogger.Info("restarting...")
			continue
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			mainLogger.Error("%v", err)
			os.Exit(1)
		}
		break
	}

	mainLogger.Info("exiting app...")
}

// device builds every component from scratch on each run, so a restart
// starts from the persisted configuration only.
type device struct {
	settings  configuration.Configuration
	newLogger func(prefix string) logger.Logger
	memory    *store.MemoryRegion
}

func (d *device) run(ctx context.Context) error {
	region, err := d.openRegion()
	if err != nil {
		return fmt.Errorf("open region: %w", err)
	}
	defer region.Close()

	st, err := store.New(region, d.newLogger("[store]"))
	if err != nil {
		return err
	}

	iface := control.New(controlQueueSize, d.newLogger("[control]"))
	server := control.NewServer(d.settings.Http.Address, iface, d.newLogger("[http]"))
	if err := server.Start(); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	port := 80
	if addr, ok := server.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	ctrl := controller.New(controller.Deps{
		Store:     st,
		Driver:    network.NewLinkDriver(d.settings.Network.Interface, d.newLogger("[link]")),
		Indicator: network.NewLEDIndicator(d.settings.Indicator.Path, d.newLogger("[led]")),
		Registrar: network.NewMDNSRegistrar(port),
		Dial: mqtt.NewDialer(mqtt.Options{
			RetryInterval:  d.settings.RetryInterval(),
			ConnectTimeout: d.settings.ConnectTimeout(),
			KeepAlive:      d.settings.KeepAlive(),
		}, d.newLogger("[MQTT Client]")),
		Sensor:            telemetry.NewThermalSensor(d.settings.Sensor.Path),
		Control:           iface,
		JoinTimeout:       d.settings.JoinTimeout(),
		RetryInterval:     d.settings.RetryInterval(),
		TelemetryInterval: d.settings.TelemetryInterval(),
		NewLogger:         d.newLogger,
	}, time.Now())
	defer ctrl.Close()

	ctrl.Boot(time.Now())

	return ctrl.Run(ctx, d.settings.TickInterval())
}

func (d *device) openRegion() (store.Region, error) {
	switch d.settings.Storage.Backend {
	case configuration.BackendBadger:
		return store.NewBadgerRegion(d.settings.Storage.Path, d.settings.Storage.Size, d.newLogger("[badger]"))
	case configuration.BackendMemory:
		return d.memory, nil
	}

	return store.NewFileRegion(d.settings.Storage.Path, d.settings.Storage.Size)
}
