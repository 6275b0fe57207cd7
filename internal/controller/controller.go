package controller

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/supby/relay2mqtt/internal/control"
	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
	"github.com/supby/relay2mqtt/internal/mqtt"
	"github.com/supby/relay2mqtt/internal/network"
	"github.com/supby/relay2mqtt/internal/store"
	"github.com/supby/relay2mqtt/internal/telemetry"
)

// ErrRestart is returned by Tick after an operator asked for a restart.
var ErrRestart = errors.New("restart requested")

type Deps struct {
	Store     *store.Store
	Driver    network.Driver
	Indicator network.Indicator
	Registrar network.Registrar
	Dial      mqtt.Dialer
	Sensor    telemetry.Sensor
	Control   *control.Interface

	JoinTimeout       time.Duration
	RetryInterval     time.Duration
	TelemetryInterval time.Duration

	NewLogger func(prefix string) logger.Logger
}

// Controller owns the device configuration and drives every component from
// one cooperative tick.
type Controller struct {
	config    devconfig.Config
	store     *store.Store
	network   *network.Manager
	session   *mqtt.Session
	telemetry *telemetry.Publisher
	control   *control.Interface
	logger    logger.Logger

	bootID  string
	restart bool
}

func New(deps Deps, now time.Time) *Controller {
	c := &Controller{
		config:  devconfig.Default(),
		store:   deps.Store,
		control: deps.Control,
		logger:  deps.NewLogger("[controller]"),
		bootID:  uuid.NewString(),
	}

	c.network = network.NewManager(&c.config, deps.Driver, deps.Indicator, deps.Registrar, deps.JoinTimeout, deps.NewLogger("[network]"))
	c.session = mqtt.NewSession(&c.config, deps.Dial, deps.RetryInterval, now, deps.NewLogger("[MQTT Client]"))
	c.telemetry = telemetry.NewPublisher(&c.config, deps.Sensor, c.session, deps.TelemetryInterval, now, deps.NewLogger("[telemetry]"))

	return c
}

// Boot loads the stored configuration and brings the network up.
func (c *Controller) Boot(now time.Time) {
	c.logger.Info("Boot %v", c.bootID)

	cfg, err := c.store.Load()
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.logger.Info("Configuration region is empty, using defaults")
	case err != nil:
		c.logger.Error("Loading configuration: %v", err)
	}
	c.config = cfg

	c.network.Setup(now)
}

// Tick runs one scheduler iteration: network, at most one control request,
// broker session, telemetry.
func (c *Controller) Tick(now time.Time) error {
	c.network.Tick(now)

	c.control.Service(now, c)

	if c.brokerEnabled() {
		c.session.Tick(now)
		c.telemetry.Tick(now)
	} else if c.network.State() != network.Joined && c.session.State() != mqtt.Disconnected {
		c.session.Close()
	}

	if c.restart {
		return ErrRestart
	}

	return nil
}

func (c *Controller) brokerEnabled() bool {
	return c.network.State() == network.Joined && c.config.BrokerAddress != ""
}

// Close releases the broker connection and the name registration.
func (c *Controller) Close() {
	c.session.Close()
	c.network.Close()
}

func (c *Controller) NetworkState() network.State {
	return c.network.State()
}

func (c *Controller) BrokerState() mqtt.State {
	return c.session.State()
}

func (c *Controller) Configuration() devconfig.Config {
	return c.config
}

func (c *Controller) Status(now time.Time) control.Status {
	return control.Status{
		Temperature:     c.telemetry.Current(now).Temperature,
		NetworkState:    c.network.State().String(),
		NetworkMode:     c.network.Mode().String(),
		BrokerState:     c.session.State().String(),
		BrokerConnected: c.session.Connected(),
		BootID:          c.bootID,
	}
}

func (c *Controller) Apply(values url.Values) []string {
	return c.config.Apply(values)
}

func (c *Controller) Replace(cfg devconfig.Config) {
	c.config = cfg.Clamped()
}

func (c *Controller) Save() error {
	return c.store.Save(c.config)
}

func (c *Controller) Restart() {
	c.logger.Info("Restart requested")
	c.restart = true
}
