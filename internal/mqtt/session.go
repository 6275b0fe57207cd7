package mqtt

import (
	"time"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

// Session keeps one broker connection alive. Connection attempts are at
// least RetryInterval apart; the interval does not grow on repeated
// failures.
type Session struct {
	config        *devconfig.Config
	dial          Dialer
	retryInterval time.Duration
	logger        logger.Logger

	state          State
	conn           Conn
	connectToken   Token
	subscribeToken Token
	subscribeTopic string
	lastAttempt    time.Time
}

// NewSession creates a disconnected session. The first attempt is due one
// retry interval after start.
func NewSession(config *devconfig.Config, dial Dialer, retryInterval time.Duration, start time.Time, log logger.Logger) *Session {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	return &Session{
		config:        config,
		dial:          dial,
		retryInterval: retryInterval,
		logger:        log,
		state:         Disconnected,
		lastAttempt:   start,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Connected() bool {
	return s.state == Connected
}

// Tick polls pending broker operations and, when disconnected and the retry
// interval has passed, starts exactly one connection attempt.
func (s *Session) Tick(now time.Time) {
	if s.state == Connecting {
		s.pollConnect(now)
		return
	}

	if s.state == Connected {
		s.pollSubscribe()
		if s.conn.IsConnected() {
			return
		}

		s.logger.Warn("Connection to broker dropped")
		s.reset()
	}

	if now.Sub(s.lastAttempt) < s.retryInterval {
		return
	}

	s.attempt(now)
}

// Publish hands payload to the broker. It returns false, dropping the
// payload, unless the session is connected.
func (s *Session) Publish(topic string, payload []byte) bool {
	if s.state != Connected || !s.conn.IsConnected() {
		s.logger.Debug("Not connected, dropped message for %v", topic)
		return false
	}

	s.conn.Publish(topic, payload)
	return true
}

// Close disconnects and leaves the session Disconnected.
func (s *Session) Close() {
	if s.conn != nil && s.state == Connected {
		s.logger.Info("Disconnecting from broker")
		s.conn.Disconnect()
	}

	s.reset()
}

func (s *Session) attempt(now time.Time) {
	s.lastAttempt = now

	s.logger.Info("Attempting MQTT connection to %v:%v", s.config.BrokerAddress, s.config.BrokerPort)
	s.logger.Debug("Client %v User %v", s.config.BrokerClientID, s.config.BrokerUser)

	s.conn = s.dial(*s.config)
	s.connectToken = s.conn.Connect()
	s.state = Connecting

	s.pollConnect(now)
}

func (s *Session) pollConnect(now time.Time) {
	if !done(s.connectToken) {
		return
	}

	if err := s.connectToken.Error(); err != nil {
		s.logger.Error("MQTT connection failed, rc=%v: %v", returnCode(s.connectToken), err)
		s.reset()
		s.lastAttempt = now
		return
	}

	s.connectToken = nil
	s.state = Connected
	s.logger.Info("Connected to MQTT on '%v:%v'", s.config.BrokerAddress, s.config.BrokerPort)

	s.subscribeTopic = SubscriptionTopic(s.config.BrokerTopic)
	s.logger.Info("Subscribing to %v", s.subscribeTopic)
	s.subscribeToken = s.conn.Subscribe(s.subscribeTopic, s.onMessage)
	s.pollSubscribe()
}

func (s *Session) pollSubscribe() {
	if s.subscribeToken == nil || !done(s.subscribeToken) {
		return
	}

	if err := s.subscribeToken.Error(); err != nil {
		s.logger.Error("Subscribe to %v failed: %v", s.subscribeTopic, err)
	} else {
		s.logger.Debug("Subscribed to %v", s.subscribeTopic)
	}

	s.subscribeToken = nil
}

func (s *Session) onMessage(topic string, payload []byte) {
	s.logger.Debug("Received message: %s from topic: %s", payload, topic)
}

func (s *Session) reset() {
	s.state = Disconnected
	s.conn = nil
	s.connectToken = nil
	s.subscribeToken = nil
}

func done(token Token) bool {
	select {
	case <-token.Done():
		return true
	default:
		return false
	}
}

// returnCode extracts the CONNACK code when the token carries one.
func returnCode(token Token) interface{} {
	if ct, ok := token.(interface{ ReturnCode() byte }); ok {
		return ct.ReturnCode()
	}
	return "n/a"
}
