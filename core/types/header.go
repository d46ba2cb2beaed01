package types

import (
	"sync/atomic"

	"golang.org/x/crypto/sha3"

	"github.com/MasamiYui/ciri/sedes"
)

// headerType is the block header record type, defined once at package
// initialization. Field order is the wire order and feeds straight into
// the header hash, so it must never change.
var headerType = func() *sedes.RecordType {
	rt, err := sedes.DefineRecordType("Header", []sedes.Field{
		{Name: "parent_hash", Type: sedes.RawType()},
		{Name: "transactions_root", Type: sedes.RawType()},
		{Name: "beneficiary", Type: sedes.RawType()},
		{Name: "state_root", Type: sedes.RawType()},
		{Name: "receipts_root", Type: sedes.RawType()},
		{Name: "difficulty", Type: sedes.UintType()},
		{Name: "number", Type: sedes.UintType()},
		{Name: "gas_limit", Type: sedes.UintType()},
		{Name: "gas_used", Type: sedes.UintType()},
		{Name: "timestamp", Type: sedes.UintType()},
		{Name: "extra_data", Type: sedes.RawType()},
		{Name: "mix_hash", Type: sedes.RawType()},
		{Name: "nonce", Type: sedes.RawType()},
	}, map[string]sedes.Value{
		"difficulty": sedes.Uint(0),
		"gas_used":   sedes.Uint(0),
		"extra_data": sedes.Raw(nil),
	})
	if err != nil {
		panic(err)
	}
	return rt
}()

// HeaderType returns the header's record type, for schema introspection.
func HeaderType() *sedes.RecordType { return headerType }

// Header is a block header. It is immutable after construction; use
// WithField to derive a modified copy.
type Header struct {
	rec *sedes.Record
	enc []byte

	hash atomic.Pointer[Hash]
}

// NewHeader constructs a header from field values, merging the type's
// defaults and validating eagerly: missing fields and mistyped values
// are reported here, not at encode time.
func NewHeader(fields map[string]sedes.Value) (*Header, error) {
	rec, err := headerType.New(fields)
	if err != nil {
		return nil, err
	}
	enc, err := rec.Encode()
	if err != nil {
		return nil, err
	}
	return &Header{rec: rec, enc: enc}, nil
}

// DecodeHeader parses a canonical header encoding.
func DecodeHeader(b []byte) (*Header, error) {
	rec, err := headerType.Decode(b)
	if err != nil {
		return nil, err
	}
	enc := make([]byte, len(b))
	copy(enc, b)
	return &Header{rec: rec, enc: enc}, nil
}

// Encode returns the header's canonical encoding. Records are immutable,
// so the bytes are computed once at construction; re-encoding a decoded
// header reproduces its input exactly.
func (h *Header) Encode() []byte {
	out := make([]byte, len(h.enc))
	copy(out, h.enc)
	return out
}

// Hash returns the keccak256 hash of the encoded header, the block's
// content-derived identifier. The hash is computed once and cached.
func (h *Header) Hash() Hash {
	if cached := h.hash.Load(); cached != nil {
		return *cached
	}
	d := sha3.NewLegacyKeccak256()
	d.Write(h.enc)
	hash := BytesToHash(d.Sum(nil))
	h.hash.Store(&hash)
	return hash
}

// Record exposes the underlying record, for generic codec consumers.
func (h *Header) Record() *sedes.Record { return h.rec }

// WithField returns a fresh validated header equal to h except for the
// named field.
func (h *Header) WithField(name string, v sedes.Value) (*Header, error) {
	rec, err := h.rec.WithField(name, v)
	if err != nil {
		return nil, err
	}
	enc, err := rec.Encode()
	if err != nil {
		return nil, err
	}
	return &Header{rec: rec, enc: enc}, nil
}

// Equal reports field-value equality of two headers.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.rec.Equal(other.rec)
}

func (h *Header) rawField(name string) []byte {
	v, _ := h.rec.Get(name)
	b, _ := v.(sedes.Raw)
	return b
}

func (h *Header) uintField(name string) uint64 {
	v, _ := h.rec.Get(name)
	u, _ := v.(sedes.Uint)
	return uint64(u)
}

// ParentHash returns the hash of the parent block's header.
func (h *Header) ParentHash() Hash { return BytesToHash(h.rawField("parent_hash")) }

// TxRoot returns the root hash of the block's transaction trie.
func (h *Header) TxRoot() Hash { return BytesToHash(h.rawField("transactions_root")) }

// Beneficiary returns the address collecting the block reward.
func (h *Header) Beneficiary() Address { return BytesToAddress(h.rawField("beneficiary")) }

// StateRoot returns the root hash of the state trie.
func (h *Header) StateRoot() Hash { return BytesToHash(h.rawField("state_root")) }

// ReceiptsRoot returns the root hash of the receipts trie.
func (h *Header) ReceiptsRoot() Hash { return BytesToHash(h.rawField("receipts_root")) }

// Difficulty returns the block's proof-of-work difficulty.
func (h *Header) Difficulty() uint64 { return h.uintField("difficulty") }

// Number returns the block height.
func (h *Header) Number() uint64 { return h.uintField("number") }

// GasLimit returns the block gas limit.
func (h *Header) GasLimit() uint64 { return h.uintField("gas_limit") }

// GasUsed returns the gas consumed by the block's transactions.
func (h *Header) GasUsed() uint64 { return h.uintField("gas_used") }

// Timestamp returns the block's unix timestamp.
func (h *Header) Timestamp() uint64 { return h.uintField("timestamp") }

// Extra returns the header's extra data bytes.
func (h *Header) Extra() []byte { return h.rawField("extra_data") }

// MixHash returns the proof-of-work mix digest.
func (h *Header) MixHash() Hash { return BytesToHash(h.rawField("mix_hash")) }

// Nonce returns the proof-of-work nonce.
func (h *Header) Nonce() BlockNonce { return BytesToNonce(h.rawField("nonce")) }
