package telemetry

import "time"

type Sensor interface {
	Read(now time.Time) Reading
}

// Sink delivers a payload; false means it was dropped.
type Sink interface {
	Publish(topic string, payload []byte) bool
}
