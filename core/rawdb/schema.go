package rawdb

import (
	"encoding/binary"

	"github.com/MasamiYui/ciri/core/types"
)

// Key prefixes for the database schema. Single-byte prefixes keep the
// namespaces from colliding.
var (
	headerPrefix    = []byte("h") // h + hash -> header RLP
	canonicalPrefix = []byte("c") // c + num (8 bytes BE) -> canonical hash
	tdPrefix        = []byte("t") // t + hash -> total difficulty (minimal BE)

	headHeaderKey = []byte("hh") // -> hash of the current head header
)

// encodeBlockNumber encodes a block number as an 8-byte big-endian value.
func encodeBlockNumber(number uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, number)
	return enc
}

// headerKey = headerPrefix + hash
func headerKey(hash types.Hash) []byte {
	return append(append([]byte{}, headerPrefix...), hash.Bytes()...)
}

// canonicalKey = canonicalPrefix + num
func canonicalKey(number uint64) []byte {
	return append(append([]byte{}, canonicalPrefix...), encodeBlockNumber(number)...)
}

// tdKey = tdPrefix + hash
func tdKey(hash types.Hash) []byte {
	return append(append([]byte{}, tdPrefix...), hash.Bytes()...)
}
