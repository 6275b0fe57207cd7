package network

// Driver controls the radio link. Every method returns promptly; joining is
// started by Join and observed by polling Joined.
type Driver interface {
	Join(name string, secret string) error
	Joined() bool
	Host(name string, secret string) error
	Mode() Mode
}

// Indicator is the operator status light.
type Indicator interface {
	Set(on bool)
}

// Registrar publishes the device under a name-resolution label.
type Registrar interface {
	Register(label string) error
	Shutdown()
}
