package store

// Region is a fixed-size byte store holding the device configuration image.
// Commit replaces the whole image or leaves the previous one in place.
type Region interface {
	Size() int
	Read() ([]byte, error)
	Commit(image []byte) error
	Close() error
}
