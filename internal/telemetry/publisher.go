package telemetry

import (
	"strconv"
	"time"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

// Publisher samples the sensor every interval and publishes the temperature
// on the configured topic.
type Publisher struct {
	config   *devconfig.Config
	sensor   Sensor
	sink     Sink
	interval time.Duration
	logger   logger.Logger

	lastSample time.Time
	latest     *Reading
}

// NewPublisher creates a publisher whose first sample is due one interval
// after start.
func NewPublisher(config *devconfig.Config, sensor Sensor, sink Sink, interval time.Duration, start time.Time, log logger.Logger) *Publisher {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Publisher{
		config:     config,
		sensor:     sensor,
		sink:       sink,
		interval:   interval,
		logger:     log,
		lastSample: start,
	}
}

func (p *Publisher) Tick(now time.Time) {
	if now.Sub(p.lastSample) < p.interval {
		return
	}
	p.lastSample = now

	r := p.sample(now)
	payload := Format(r)
	p.logger.Info("Temp: %vC", payload)

	// Invalid readings go out unchanged; consumers must cope with "NaN".
	if !p.sink.Publish(p.config.BrokerTopic, []byte(payload)) {
		p.logger.Debug("Telemetry dropped")
	}
}

// Current returns the latest sample, reading the sensor again when there is
// none or it is older than one interval.
func (p *Publisher) Current(now time.Time) Reading {
	if p.latest != nil && now.Sub(p.latest.SampledAt) < p.interval {
		return *p.latest
	}

	return p.sample(now)
}

func (p *Publisher) sample(now time.Time) Reading {
	r := p.sensor.Read(now)
	p.latest = &r
	return r
}

// Format renders the temperature with two decimals.
func Format(r Reading) string {
	return strconv.FormatFloat(r.Temperature, 'f', 2, 64)
}
