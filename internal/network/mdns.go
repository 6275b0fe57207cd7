package network

import (
	"fmt"

	"github.com/enbility/zeroconf/v3"
)

const (
	mdnsService = "_http._tcp"
	mdnsDomain  = "local."
)

// MDNSRegistrar announces the control interface as an _http._tcp service
// named after the resolution label.
type MDNSRegistrar struct {
	port   int
	server *zeroconf.Server
}

func NewMDNSRegistrar(port int) *MDNSRegistrar {
	return &MDNSRegistrar{port: port}
}

func (r *MDNSRegistrar) Register(label string) error {
	r.Shutdown()

	server, err := zeroconf.Register(label, mdnsService, mdnsDomain, r.port, []string{"path=/"}, nil)
	if err != nil {
		return fmt.Errorf("register %v: %w", label, err)
	}

	r.server = server
	return nil
}

func (r *MDNSRegistrar) Shutdown() {
	if r.server != nil {
		r.server.Shutdown()
		r.server = nil
	}
}
