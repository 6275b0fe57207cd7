package mqtt

import "github.com/supby/relay2mqtt/internal/devconfig"

// Token tracks an asynchronous broker operation.
type Token interface {
	Done() <-chan struct{}
	Error() error
}

type MessageHandler func(topic string, payload []byte)

// Conn is one broker connection. Connect, Subscribe and Publish return at
// once; completion is observed through the token.
type Conn interface {
	Connect() Token
	IsConnected() bool
	Subscribe(topic string, handler MessageHandler) Token
	Publish(topic string, payload []byte) Token
	Disconnect()
}

// Dialer builds a connection for the broker described by cfg.
type Dialer func(cfg devconfig.Config) Conn
