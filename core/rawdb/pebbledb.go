package rawdb

import (
	"bytes"
	"errors"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// PebbleStore is a persistent KVStore backed by a pebble database.
type PebbleStore struct {
	db  *pebble.DB
	log *zap.Logger
}

// NewPebbleStore opens (or creates) a pebble database at path. A nil
// logger disables logging.
func NewPebbleStore(path string, logger *zap.Logger) (*PebbleStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	logger.Info("opened record database", zap.String("path", path))
	return &PebbleStore{db: db, log: logger}, nil
}

// Get retrieves the value for a key. Returns ErrNotFound if absent.
func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(val), nil
}

// Put stores a key-value pair.
func (s *PebbleStore) Put(key, value []byte) error {
	return s.db.Set(key, value, pebble.NoSync)
}

// Delete removes a key from the store.
func (s *PebbleStore) Delete(key []byte) error {
	return s.db.Delete(key, pebble.NoSync)
}

// Has returns whether the key exists in the store.
func (s *PebbleStore) Has(key []byte) (bool, error) {
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

// NewBatch creates a new batch targeting this store.
func (s *PebbleStore) NewBatch() Batch {
	return &pebbleBatch{b: s.db.NewBatch()}
}

// Close flushes and closes the database.
func (s *PebbleStore) Close() error {
	s.log.Info("closing record database")
	return s.db.Close()
}

// pebbleBatch adapts a pebble batch to the Batch interface.
type pebbleBatch struct {
	b       *pebble.Batch
	written bool
}

func (b *pebbleBatch) Put(key, value []byte) {
	_ = b.b.Set(key, value, nil)
}

func (b *pebbleBatch) Delete(key []byte) {
	_ = b.b.Delete(key, nil)
}

func (b *pebbleBatch) Write() error {
	if b.written {
		return ErrBatchWritten
	}
	b.written = true
	return b.b.Commit(pebble.NoSync)
}

func (b *pebbleBatch) Reset() {
	b.b.Reset()
	b.written = false
}

func (b *pebbleBatch) Len() int {
	return int(b.b.Count())
}
