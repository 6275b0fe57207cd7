package network

import (
	"net"

	"github.com/supby/relay2mqtt/internal/logger"
)

// LinkDriver runs on a host whose wireless association is handled by the
// operating system. The station is considered joined while the interface is
// up and holds a non-loopback unicast address. Hosting only records the mode.
type LinkDriver struct {
	iface  string
	mode   Mode
	logger logger.Logger

	lookup func(name string) (*net.Interface, error)
}

func NewLinkDriver(iface string, log logger.Logger) *LinkDriver {
	return &LinkDriver{
		iface:  iface,
		mode:   ModeOff,
		logger: log,
		lookup: net.InterfaceByName,
	}
}

func (d *LinkDriver) Join(name string, secret string) error {
	d.mode = ModeStation
	d.logger.Debug("Station %v on %v", name, d.iface)
	return nil
}

func (d *LinkDriver) Joined() bool {
	if d.mode != ModeStation {
		return false
	}

	ifc, err := d.lookup(d.iface)
	if err != nil || ifc.Flags&net.FlagUp == 0 {
		return false
	}

	addrs, err := ifc.Addrs()
	if err != nil {
		return false
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if ok && !ipnet.IP.IsLoopback() && ipnet.IP.IsGlobalUnicast() {
			return true
		}
	}

	return false
}

func (d *LinkDriver) Host(name string, secret string) error {
	d.mode = ModeAccessPoint
	d.logger.Info("Access point %v served on %v", name, d.iface)
	return nil
}

func (d *LinkDriver) Mode() Mode {
	return d.mode
}
