package telemetry

import (
	"math"
	"time"
)

const DefaultInterval = 30 * time.Second

// Reading is one sensor sample. Failed reads carry NaN, like the DHT
// driver's invalid-reading value.
type Reading struct {
	Temperature float64
	Humidity    float64
	SampledAt   time.Time
}

func (r Reading) Valid() bool {
	return !math.IsNaN(r.Temperature)
}

func Invalid(now time.Time) Reading {
	return Reading{
		Temperature: math.NaN(),
		Humidity:    math.NaN(),
		SampledAt:   now,
	}
}
