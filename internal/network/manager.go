package network

import (
	"time"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

// Manager selects between joining the configured network and hosting one.
type Manager struct {
	config      *devconfig.Config
	driver      Driver
	indicator   Indicator
	registrar   Registrar
	joinTimeout time.Duration
	logger      logger.Logger

	state       State
	joinStarted time.Time
	lastBlink   time.Time
	lightOn     bool
}

func NewManager(
	config *devconfig.Config,
	driver Driver,
	indicator Indicator,
	registrar Registrar,
	joinTimeout time.Duration,
	log logger.Logger) *Manager {
	if joinTimeout <= 0 {
		joinTimeout = DefaultJoinTimeout
	}

	return &Manager{
		config:      config,
		driver:      driver,
		indicator:   indicator,
		registrar:   registrar,
		joinTimeout: joinTimeout,
		logger:      log,
		state:       Disconnected,
	}
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) Mode() Mode {
	return m.driver.Mode()
}

// Setup leaves Disconnected: it starts joining the configured network, or
// hosts straight away when no network name is configured.
func (m *Manager) Setup(now time.Time) {
	if m.config.NetworkName == "" {
		m.logger.Info("No network configured")
		m.host()
		return
	}

	m.beginJoin(now)
}

// Tick advances the state machine. It never waits on the link.
func (m *Manager) Tick(now time.Time) {
	switch m.state {
	case Disconnected:
		m.Setup(now)
	case JoiningNetwork:
		m.pollJoin(now)
	case Joined:
		if !m.driver.Joined() {
			m.logger.Warn("Connection to %v lost", m.config.NetworkName)
			m.beginJoin(now)
		}
	case Hosting:
	}
}

func (m *Manager) beginJoin(now time.Time) {
	m.logger.Info("Connecting to %v", m.config.NetworkName)

	m.state = JoiningNetwork
	m.joinStarted = now
	m.lastBlink = now
	m.setLight(true)

	if err := m.driver.Join(m.config.NetworkName, m.config.NetworkSecret); err != nil {
		m.logger.Error("Join %v: %v", m.config.NetworkName, err)
	}

	m.pollJoin(now)
}

func (m *Manager) pollJoin(now time.Time) {
	if m.driver.Joined() {
		m.setLight(false)
		m.state = Joined
		m.logger.Info("Network %v joined", m.config.NetworkName)
		m.register()
		return
	}

	if now.Sub(m.joinStarted) >= m.joinTimeout {
		m.setLight(false)
		m.logger.Warn("Joining %v failed after %v", m.config.NetworkName, m.joinTimeout)
		m.host()
		return
	}

	if now.Sub(m.lastBlink) >= BlinkInterval {
		m.lastBlink = now
		m.setLight(!m.lightOn)
	}
}

func (m *Manager) host() {
	m.logger.Info("Configuring access point %v", HostNetworkName)

	m.state = Hosting
	if err := m.driver.Host(HostNetworkName, HostNetworkSecret); err != nil {
		m.logger.Error("Access point %v: %v", HostNetworkName, err)
	}
}

func (m *Manager) register() {
	if m.config.ResolutionLabel == "" || m.registrar == nil {
		return
	}

	if err := m.registrar.Register(m.config.ResolutionLabel); err != nil {
		m.logger.Error("Error setting up mDNS responder: %v", err)
		return
	}

	m.logger.Info("mDNS responder started for %v", m.config.ResolutionLabel)
}

func (m *Manager) setLight(on bool) {
	m.lightOn = on
	if m.indicator != nil {
		m.indicator.Set(on)
	}
}

// Close withdraws the name registration.
func (m *Manager) Close() {
	if m.registrar != nil {
		m.registrar.Shutdown()
	}
}
