package store

import "fmt"

// MemoryRegion keeps the image in process memory. It does not survive a
// process exit, only the restarts performed inside one.
type MemoryRegion struct {
	image []byte
}

func NewMemoryRegion(size int) *MemoryRegion {
	return &MemoryRegion{image: erased(size)}
}

func (r *MemoryRegion) Size() int {
	return len(r.image)
}

func (r *MemoryRegion) Read() ([]byte, error) {
	return append([]byte(nil), r.image...), nil
}

func (r *MemoryRegion) Commit(image []byte) error {
	if len(image) != len(r.image) {
		return fmt.Errorf("image of %d bytes does not fit region of %d", len(image), len(r.image))
	}

	copy(r.image, image)
	return nil
}

func (r *MemoryRegion) Close() error {
	return nil
}

// erased returns an image in the state of freshly erased flash.
func erased(size int) []byte {
	image := make([]byte, size)
	for i := range image {
		image[i] = 0xFF
	}
	return image
}
