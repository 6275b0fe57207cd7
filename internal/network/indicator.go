package network

import (
	"os"

	"github.com/supby/relay2mqtt/internal/logger"
)

// LEDIndicator drives a LED through its sysfs brightness file.
type LEDIndicator struct {
	path   string
	logger logger.Logger
	failed bool
}

func NewLEDIndicator(path string, log logger.Logger) Indicator {
	if path == "" {
		return nopIndicator{}
	}

	return &LEDIndicator{
		path:   path,
		logger: log,
	}
}

func (l *LEDIndicator) Set(on bool) {
	value := []byte("0")
	if on {
		value = []byte("1")
	}

	if err := os.WriteFile(l.path, value, 0644); err != nil {
		// logged once per failure streak
		if !l.failed {
			l.logger.Warn("LED %v: %v", l.path, err)
		}
		l.failed = true
		return
	}

	l.failed = false
}

type nopIndicator struct{}

func (nopIndicator) Set(on bool) {}
