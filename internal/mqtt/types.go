package mqtt

import (
	"strings"
	"time"
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	}
	return "Unknown"
}

const DefaultRetryInterval = 30 * time.Second

type Options struct {
	RetryInterval  time.Duration
	ConnectTimeout time.Duration
	KeepAlive      time.Duration
}

// SubscriptionTopic roots topic at the path separator.
func SubscriptionTopic(topic string) string {
	if strings.HasPrefix(topic, "/") {
		return topic
	}
	return "/" + topic
}
