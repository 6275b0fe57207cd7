package configuration

type StorageConfiguration struct {
	Backend string `yaml:"backend"` // file, badger or memory
	Path    string `yaml:"path"`
	Size    int    `yaml:"size"`
}

type HttpConfiguration struct {
	Address string `yaml:"address"`
}

type NetworkConfiguration struct {
	Interface          string `yaml:"interface"`
	JoinTimeoutSeconds int    `yaml:"joinTimeoutSeconds"`
}

type BrokerConfiguration struct {
	RetryIntervalSeconds  int `yaml:"retryIntervalSeconds"`
	ConnectTimeoutSeconds int `yaml:"connectTimeoutSeconds"`
	KeepAliveSeconds      int `yaml:"keepAliveSeconds"`
}

type TelemetryConfiguration struct {
	IntervalSeconds int `yaml:"intervalSeconds"`
}

type SensorConfiguration struct {
	Path string `yaml:"path"`
}

type IndicatorConfiguration struct {
	Path string `yaml:"path"`
}

// Configuration holds the process settings of the controller host. The
// device configuration edited by operators lives in the persistence region,
// not here.
type Configuration struct {
	Storage          StorageConfiguration   `yaml:"storage"`
	Http             HttpConfiguration      `yaml:"http"`
	Network          NetworkConfiguration   `yaml:"network"`
	Broker           BrokerConfiguration    `yaml:"broker"`
	Telemetry        TelemetryConfiguration `yaml:"telemetry"`
	Sensor           SensorConfiguration    `yaml:"sensor"`
	Indicator        IndicatorConfiguration `yaml:"indicator"`
	TickMilliseconds int                    `yaml:"tickMilliseconds"`
	LogLevel         string                 `yaml:"logLevel"` // error, warn, info, debug
}
