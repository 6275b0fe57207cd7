package mqtt

import (
	"fmt"
	"log"

	mqttlib "github.com/eclipse/paho.mqtt.golang"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

// NewDialer returns a Dialer building paho clients. Reconnection is left to
// the Session, so paho's own retry is switched off.
func NewDialer(options Options, l logger.Logger) Dialer {
	mqttlib.ERROR = log.New(l.GetWriter(), "[MQTT Client] ", 0)

	return func(cfg devconfig.Config) Conn {
		opts := mqttlib.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.BrokerAddress, cfg.BrokerPort))
		opts.SetClientID(cfg.BrokerClientID)
		if cfg.BrokerUser != "" {
			opts.SetUsername(cfg.BrokerUser)
			opts.SetPassword(cfg.BrokerSecret)
		}
		opts.SetAutoReconnect(false)
		opts.SetConnectRetry(false)
		opts.SetCleanSession(true)
		opts.SetKeepAlive(options.KeepAlive)
		opts.SetConnectTimeout(options.ConnectTimeout)
		opts.SetOrderMatters(false)
		opts.OnConnectionLost = func(client mqttlib.Client, err error) {
			l.Warn("Connect lost: %v", err)
		}

		return &pahoConn{innerClient: mqttlib.NewClient(opts)}
	}
}

type pahoConn struct {
	innerClient mqttlib.Client
}

func (c *pahoConn) Connect() Token {
	return c.innerClient.Connect()
}

func (c *pahoConn) IsConnected() bool {
	return c.innerClient.IsConnected()
}

func (c *pahoConn) Subscribe(topic string, handler MessageHandler) Token {
	return c.innerClient.Subscribe(topic, 0, func(client mqttlib.Client, msg mqttlib.Message) {
		handler(msg.Topic(), msg.Payload())
	})
}

func (c *pahoConn) Publish(topic string, payload []byte) Token {
	return c.innerClient.Publish(topic, 0, false, payload)
}

func (c *pahoConn) Disconnect() {
	c.innerClient.Disconnect(0)
}
