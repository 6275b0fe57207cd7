package network

import "time"

type State int

const (
	Disconnected State = iota
	JoiningNetwork
	Joined
	Hosting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case JoiningNetwork:
		return "JoiningNetwork"
	case Joined:
		return "Joined"
	case Hosting:
		return "Hosting"
	}
	return "Unknown"
}

// Mode is the radio mode reported by the link driver.
type Mode int

const (
	ModeOff Mode = iota
	ModeStation
	ModeAccessPoint
	ModeHybrid
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "OFF"
	case ModeStation:
		return "WiFi Client"
	case ModeAccessPoint:
		return "Access Point"
	case ModeHybrid:
		return "Hybrid (AP+STA)"
	}
	return "Unknown!"
}

const (
	// HostNetworkName and HostNetworkSecret identify the network created in
	// Hosting mode. They do not come from the device configuration.
	HostNetworkName   = "ESP_Relay"
	HostNetworkSecret = "password"

	DefaultJoinTimeout = 60 * time.Second
	BlinkInterval      = 500 * time.Millisecond
)
