package telemetry

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ThermalSensor reads a millidegree Celsius value from a sysfs thermal zone.
// It has no humidity channel.
type ThermalSensor struct {
	path string
}

func NewThermalSensor(path string) *ThermalSensor {
	return &ThermalSensor{path: path}
}

func (s *ThermalSensor) Read(now time.Time) Reading {
	r := Invalid(now)

	buf, err := os.ReadFile(s.path)
	if err != nil {
		return r
	}

	milli, err := strconv.ParseInt(strings.TrimSpace(string(buf)), 10, 64)
	if err != nil {
		return r
	}

	r.Temperature = float64(milli) / 1000
	return r
}
