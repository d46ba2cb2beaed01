// Package sedes implements the typed schema layer of the codec: it maps
// named, ordered, typed record fields onto the primitive rlp item format
// and back. The name follows the serialization/deserialization objects
// ("sedes") of the Ethereum lineage this wire format comes from.
//
// A record type declares its schema once, at program initialization, and
// gains encode, decode and equality from it. Schemas and records are
// immutable after construction and safe for concurrent use.
package sedes

import "bytes"

// Value is a field value. It is a closed sum: Raw bytes, an unsigned
// integer, a boolean, a list of values, or a nested record (*Record).
type Value interface {
	// Equal reports deep equality with another value of the same shape.
	Equal(other Value) bool

	isValue()
}

// Raw is an opaque byte-string value, passed through the codec unchanged.
type Raw []byte

// Uint is a non-negative integer value. It encodes as the minimal
// big-endian byte string; zero encodes as the empty string.
type Uint uint64

// Bool is a boolean value. True encodes as the single byte 0x01, false
// as the empty byte string (wire byte 0x80, the canonical empty form).
type Bool bool

// List is an ordered list of values, all of the schema field's element
// type.
type List []Value

func (Raw) isValue()  {}
func (Uint) isValue() {}
func (Bool) isValue() {}
func (List) isValue() {}

// Equal reports byte equality. Nil and empty Raw are the same value.
func (r Raw) Equal(other Value) bool {
	o, ok := other.(Raw)
	return ok && bytes.Equal(r, o)
}

func (u Uint) Equal(other Value) bool {
	o, ok := other.(Uint)
	return ok && u == o
}

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Equal reports element-wise equality. Nil and empty lists are the same
// value.
func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l) != len(o) {
		return false
	}
	for i, v := range l {
		if !v.Equal(o[i]) {
			return false
		}
	}
	return true
}
