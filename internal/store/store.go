package store

import (
	"errors"
	"fmt"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

// ErrNotFound means the region holds no configuration written by Save.
var ErrNotFound = errors.New("no stored configuration")

type Store struct {
	region Region
	logger logger.Logger
}

func New(region Region, log logger.Logger) (*Store, error) {
	if region.Size() < RecordSize {
		return nil, fmt.Errorf("region of %d bytes cannot hold a %d byte record", region.Size(), RecordSize)
	}

	return &Store{
		region: region,
		logger: log,
	}, nil
}

// Load returns the stored configuration, or ErrNotFound together with the
// defaults when the signature does not match.
func (s *Store) Load() (devconfig.Config, error) {
	s.logger.Info("Reading config from region")

	image, err := s.region.Read()
	if err != nil {
		return devconfig.Default(), fmt.Errorf("read region: %w", err)
	}

	cfg, err := Decode(image)
	if err != nil {
		return devconfig.Default(), err
	}

	return cfg, nil
}

// Save writes cfg over the record part of the region and commits the image.
// Bytes past the record are preserved.
func (s *Store) Save(cfg devconfig.Config) error {
	s.logger.Info("Writing config to region")

	image, err := s.region.Read()
	if err != nil {
		return fmt.Errorf("read region: %w", err)
	}

	copy(image, Encode(cfg))

	if err := s.region.Commit(image); err != nil {
		return fmt.Errorf("commit region: %w", err)
	}

	return nil
}
