// Package rawdb persists encoded records in a key-value store under
// content-derived keys. It holds no chain logic: callers encode records
// through their types and this package stores the resulting bytes,
// keyed by their keccak hash, relying on the codec's byte-exactness
// guarantee when reading them back.
package rawdb

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a key is absent from the store.
	ErrNotFound = errors.New("rawdb: not found")

	// ErrBatchWritten is returned when a batch is written twice.
	ErrBatchWritten = errors.New("rawdb: batch already written")
)

// KVStore is the interface the record accessors run against. Both the
// in-memory store and the pebble-backed store implement it.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	NewBatch() Batch
	Close() error
}

// Batch buffers put and delete operations for atomic application.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	// Write applies the buffered operations in order. A batch can be
	// written once; Reset clears it for reuse.
	Write() error
	Reset()
	Len() int
}

// MemoryKVStore is an in-memory KVStore, safe for concurrent use and
// suitable for tests.
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKVStore creates a new in-memory key-value store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		data: make(map[string][]byte),
	}
}

// Get retrieves the value for a key. Returns ErrNotFound if absent.
func (m *MemoryKVStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

// Put stores a key-value pair. The value is copied.
func (m *MemoryKVStore) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[string(key)] = cp
	return nil
}

// Delete removes a key from the store. It is a no-op if the key does
// not exist.
func (m *MemoryKVStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

// Has returns whether the key exists in the store.
func (m *MemoryKVStore) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

// Len returns the number of entries.
func (m *MemoryKVStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close is a no-op for the in-memory store.
func (m *MemoryKVStore) Close() error { return nil }

// NewBatch creates a new batch targeting this store.
func (m *MemoryKVStore) NewBatch() Batch {
	return &memoryBatch{store: m}
}

// memoryBatchOp represents a single put or delete operation.
type memoryBatchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// memoryBatch buffers operations for atomic application to the backing
// store under a single write lock.
type memoryBatch struct {
	store   *MemoryKVStore
	ops     []memoryBatchOp
	written bool
}

func (b *memoryBatch) Put(key, value []byte) {
	keyCp := make([]byte, len(key))
	copy(keyCp, key)
	valCp := make([]byte, len(value))
	copy(valCp, value)
	b.ops = append(b.ops, memoryBatchOp{key: keyCp, value: valCp})
}

func (b *memoryBatch) Delete(key []byte) {
	keyCp := make([]byte, len(key))
	copy(keyCp, key)
	b.ops = append(b.ops, memoryBatchOp{key: keyCp, delete: true})
}

func (b *memoryBatch) Write() error {
	if b.written {
		return ErrBatchWritten
	}
	b.written = true

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		if op.delete {
			delete(b.store.data, string(op.key))
		} else {
			b.store.data[string(op.key)] = op.value
		}
	}
	return nil
}

func (b *memoryBatch) Reset() {
	b.ops = b.ops[:0]
	b.written = false
}

func (b *memoryBatch) Len() int {
	return len(b.ops)
}
