// Package rlp implements the canonical recursive length prefix encoding
// used for block headers, transactions and peer messages. Every logical
// value has exactly one valid encoding; the decoder rejects any
// non-canonical alternative so that encoded bytes can be hashed and
// compared directly.
package rlp

import "bytes"

// Kind represents the type of an RLP item.
type Kind int

const (
	StringKind Kind = iota // byte string (including empty)
	ListKind               // ordered list of items
)

// Item is the codec's universal value: either a byte string or an
// ordered list of items. Items are immutable once constructed.
type Item struct {
	kind Kind
	str  []byte
	list []*Item
}

// Bytes returns a byte-string item holding b. The slice is not copied;
// callers must not mutate it afterwards.
func Bytes(b []byte) *Item {
	return &Item{kind: StringKind, str: b}
}

// String returns a byte-string item holding the bytes of s.
func String(s string) *Item {
	return &Item{kind: StringKind, str: []byte(s)}
}

// Uint returns a byte-string item holding the minimal big-endian
// representation of u. Zero maps to the empty string.
func Uint(u uint64) *Item {
	if u == 0 {
		return &Item{kind: StringKind}
	}
	return &Item{kind: StringKind, str: putUintBigEndian(u)}
}

// List returns a list item over the given children, in order.
func List(items ...*Item) *Item {
	return &Item{kind: ListKind, list: items}
}

// Kind returns whether the item is a byte string or a list.
func (it *Item) Kind() Kind { return it.kind }

// IsList reports whether the item is a list.
func (it *Item) IsList() bool { return it.kind == ListKind }

// Bytes returns the byte-string payload. It returns nil for lists.
func (it *Item) Bytes() []byte {
	if it.kind != StringKind {
		return nil
	}
	return it.str
}

// Items returns the child items of a list. It returns nil for strings.
func (it *Item) Items() []*Item {
	if it.kind != ListKind {
		return nil
	}
	return it.list
}

// Len returns the payload length: byte count for strings, child count
// for lists.
func (it *Item) Len() int {
	if it.kind == ListKind {
		return len(it.list)
	}
	return len(it.str)
}

// Uint decodes the item as a canonical minimal big-endian unsigned
// integer. The empty string decodes to zero. A leading zero byte or a
// payload wider than 8 bytes is an error.
func (it *Item) Uint() (uint64, error) {
	if it.kind != StringKind {
		return 0, ErrExpectedString
	}
	b := it.str
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	if b[0] == 0 {
		return 0, ErrCanonInt
	}
	var val uint64
	for _, x := range b {
		val = (val << 8) | uint64(x)
	}
	return val, nil
}

// Equal reports deep equality: same kind, and byte-equal payload or
// element-wise equal children.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	if it.kind != other.kind {
		return false
	}
	if it.kind == StringKind {
		return bytes.Equal(it.str, other.str)
	}
	if len(it.list) != len(other.list) {
		return false
	}
	for i, child := range it.list {
		if !child.Equal(other.list[i]) {
			return false
		}
	}
	return true
}
