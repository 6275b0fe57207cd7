package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileRegion stores the image in a single file. Commit writes a sibling
// temporary file and renames it over the image.
type FileRegion struct {
	path string
	size int
}

func NewFileRegion(path string, size int) (*FileRegion, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", size)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &FileRegion{
		path: path,
		size: size,
	}, nil
}

func (r *FileRegion) Size() int {
	return r.size
}

// Read returns the image. A missing file reads as erased; a short file is
// padded as erased.
func (r *FileRegion) Read() ([]byte, error) {
	image := erased(r.size)

	buf, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return image, nil
	}
	if err != nil {
		return nil, err
	}

	copy(image, buf)
	return image, nil
}

func (r *FileRegion) Commit(image []byte) error {
	if len(image) != r.size {
		return fmt.Errorf("image of %d bytes does not fit region of %d", len(image), r.size)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), r.path)
}

func (r *FileRegion) Close() error {
	return nil
}
