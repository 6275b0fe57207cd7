package control

import (
	"net/url"
	"time"

	"github.com/supby/relay2mqtt/internal/devconfig"
)

// Core is the device state the control interface reads and edits. It is
// only called from Service, on the scheduler's tick.
type Core interface {
	Configuration() devconfig.Config
	Status(now time.Time) Status
	Apply(values url.Values) []string
	Replace(cfg devconfig.Config)
	Save() error
	Restart()
}
