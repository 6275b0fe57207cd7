package store

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/supby/relay2mqtt/internal/logger"
)

var regionKey = []byte("region")

// BadgerRegion keeps the image as a single value in a badger database, so a
// commit is one transaction.
type BadgerRegion struct {
	db   *badger.DB
	size int
}

func NewBadgerRegion(dirname string, size int, log logger.Logger) (*BadgerRegion, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", size)
	}

	opt := badger.DefaultOptions(dirname).
		WithLogger(badgerLogger{log}).
		WithValueLogFileSize(1 << 20).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opt)
	if err != nil {
		return nil, err
	}

	return &BadgerRegion{
		db:   db,
		size: size,
	}, nil
}

func (r *BadgerRegion) Size() int {
	return r.size
}

func (r *BadgerRegion) Read() ([]byte, error) {
	image := erased(r.size)

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(regionKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(v []byte) error {
			copy(image, v)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *BadgerRegion) Commit(image []byte) error {
	if len(image) != r.size {
		return fmt.Errorf("image of %d bytes does not fit region of %d", len(image), r.size)
	}

	value := append([]byte(nil), image...)

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(regionKey, value)
	})
}

func (r *BadgerRegion) Close() error {
	return r.db.Close()
}

type badgerLogger struct {
	log logger.Logger
}

func (l badgerLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(format, v...)
}

func (l badgerLogger) Warningf(format string, v ...interface{}) {
	l.log.Warn(format, v...)
}

func (l badgerLogger) Infof(format string, v ...interface{}) {
	l.log.Debug(format, v...)
}

func (l badgerLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(format, v...)
}
