package rawdb

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/MasamiYui/ciri/core/types"
	"github.com/MasamiYui/ciri/crypto"
)

// ErrContentMismatch is returned when bytes read from the store do not
// hash to the key they were stored under.
var ErrContentMismatch = errors.New("rawdb: stored bytes do not match content key")

// WriteHeader stores a header's canonical encoding under its
// content-derived key and returns that key.
func WriteHeader(db KVStore, h *types.Header) (types.Hash, error) {
	hash := h.Hash()
	if err := db.Put(headerKey(hash), h.Encode()); err != nil {
		return types.Hash{}, err
	}
	return hash, nil
}

// ReadHeader retrieves and decodes the header stored under hash. The
// stored bytes are re-hashed and checked against the key before
// decoding, so a corrupted entry surfaces as ErrContentMismatch rather
// than as a silently different header.
func ReadHeader(db KVStore, hash types.Hash) (*types.Header, error) {
	data, err := db.Get(headerKey(hash))
	if err != nil {
		return nil, err
	}
	if crypto.Keccak256Hash(data) != hash {
		return nil, fmt.Errorf("%w: header %s", ErrContentMismatch, hash)
	}
	return types.DecodeHeader(data)
}

// HasHeader checks if a header exists in the database.
func HasHeader(db KVStore, hash types.Hash) bool {
	ok, _ := db.Has(headerKey(hash))
	return ok
}

// DeleteHeader removes a header.
func DeleteHeader(db KVStore, hash types.Hash) error {
	return db.Delete(headerKey(hash))
}

// WriteCanonicalHash marks hash as the canonical header at the given
// height.
func WriteCanonicalHash(db KVStore, number uint64, hash types.Hash) error {
	return db.Put(canonicalKey(number), hash.Bytes())
}

// ReadCanonicalHash retrieves the canonical header hash at the given
// height.
func ReadCanonicalHash(db KVStore, number uint64) (types.Hash, error) {
	data, err := db.Get(canonicalKey(number))
	if err != nil {
		return types.Hash{}, err
	}
	if len(data) != types.HashLength {
		return types.Hash{}, fmt.Errorf("%w: canonical entry has %d bytes", ErrContentMismatch, len(data))
	}
	return types.BytesToHash(data), nil
}

// DeleteCanonicalHash removes the canonical mapping at the given height.
func DeleteCanonicalHash(db KVStore, number uint64) error {
	return db.Delete(canonicalKey(number))
}

// WriteHeadHeaderHash stores the hash of the current chain head.
func WriteHeadHeaderHash(db KVStore, hash types.Hash) error {
	return db.Put(headHeaderKey, hash.Bytes())
}

// ReadHeadHeaderHash retrieves the hash of the current chain head.
func ReadHeadHeaderHash(db KVStore) (types.Hash, error) {
	data, err := db.Get(headHeaderKey)
	if err != nil {
		return types.Hash{}, err
	}
	return types.BytesToHash(data), nil
}

// WriteTotalDifficulty stores a header's accumulated difficulty as
// minimal big-endian bytes (zero stores as the empty value).
func WriteTotalDifficulty(db KVStore, hash types.Hash, td *uint256.Int) error {
	return db.Put(tdKey(hash), td.Bytes())
}

// ReadTotalDifficulty retrieves a header's accumulated difficulty.
func ReadTotalDifficulty(db KVStore, hash types.Hash) (*uint256.Int, error) {
	data, err := db.Get(tdKey(hash))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(data), nil
}

// AccumulateTotalDifficulty computes and stores the total difficulty of
// h: the parent's stored total plus h's own difficulty. A header with a
// zero parent hash starts the accumulation at zero.
func AccumulateTotalDifficulty(db KVStore, h *types.Header) (*uint256.Int, error) {
	td := new(uint256.Int)
	if parent := h.ParentHash(); !parent.IsZero() {
		ptd, err := ReadTotalDifficulty(db, parent)
		if err != nil {
			return nil, fmt.Errorf("parent %s: %w", parent, err)
		}
		td.Set(ptd)
	}
	td.Add(td, uint256.NewInt(h.Difficulty()))
	if err := WriteTotalDifficulty(db, h.Hash(), td); err != nil {
		return nil, err
	}
	return td, nil
}
