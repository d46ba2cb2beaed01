package rlp

import (
	"bytes"
	"io"
)

// Decode parses b as exactly one canonical RLP item. Trailing bytes
// after the item are an error; use DecodeSequence for concatenated
// top-level items.
func Decode(b []byte) (*Item, error) {
	d := &decoder{data: b}
	it, err := d.item(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(b) {
		return nil, ErrTrailingBytes
	}
	return it, nil
}

// DecodeSequence parses b as zero or more concatenated top-level items.
func DecodeSequence(b []byte) ([]*Item, error) {
	d := &decoder{data: b}
	var items []*Item
	for d.pos < len(d.data) {
		it, err := d.item(0)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

type decoder struct {
	data []byte
	pos  int
}

// item parses one complete item starting at the current position,
// recursing into list payloads.
func (d *decoder) item(depth int) (*Item, error) {
	if depth > MaxDepth {
		return nil, ErrNestingTooDeep
	}
	if d.pos >= len(d.data) {
		return nil, io.ErrUnexpectedEOF
	}
	prefix := d.data[d.pos]

	switch {
	case prefix <= 0x7f:
		// Single byte literal.
		d.pos++
		return Bytes([]byte{prefix}), nil

	case prefix <= 0xb7:
		// Short string: 0-55 bytes.
		size := int(prefix - 0x80)
		payload, err := d.payload(1, size)
		if err != nil {
			return nil, err
		}
		if size == 1 && payload[0] <= 0x7f {
			return nil, ErrCanonSize
		}
		return Bytes(bytes.Clone(payload)), nil

	case prefix <= 0xbf:
		// Long string.
		size, lenOfLen, err := d.longSize(prefix - 0xb7)
		if err != nil {
			return nil, err
		}
		payload, err := d.payload(1+lenOfLen, size)
		if err != nil {
			return nil, err
		}
		return Bytes(bytes.Clone(payload)), nil

	case prefix <= 0xf7:
		// Short list: payload 0-55 bytes.
		size := int(prefix - 0xc0)
		payload, err := d.payload(1, size)
		if err != nil {
			return nil, err
		}
		return d.listItems(payload, depth)

	default:
		// Long list.
		size, lenOfLen, err := d.longSize(prefix - 0xf7)
		if err != nil {
			return nil, err
		}
		payload, err := d.payload(1+lenOfLen, size)
		if err != nil {
			return nil, err
		}
		return d.listItems(payload, depth)
	}
}

// longSize reads a long-form payload length of lenOfLen bytes following
// the prefix byte. The length must have no leading zero byte and must
// not fit the short form.
func (d *decoder) longSize(lenOfLen byte) (size, n int, err error) {
	n = int(lenOfLen)
	if d.pos+1+n > len(d.data) {
		return 0, 0, io.ErrUnexpectedEOF
	}
	sizeBytes := d.data[d.pos+1 : d.pos+1+n]
	if sizeBytes[0] == 0 {
		return 0, 0, ErrCanonInt
	}
	if n > 8 {
		return 0, 0, ErrValueTooLarge
	}
	var u uint64
	for _, x := range sizeBytes {
		u = (u << 8) | uint64(x)
	}
	if u <= 55 {
		return 0, 0, ErrNonCanonicalSize
	}
	if u > uint64(maxInt) {
		return 0, 0, ErrValueTooLarge
	}
	return int(u), n, nil
}

// payload consumes skip header bytes plus size payload bytes and
// returns the payload slice.
func (d *decoder) payload(skip, size int) ([]byte, error) {
	start := d.pos + skip
	if size > len(d.data)-start {
		return nil, io.ErrUnexpectedEOF
	}
	d.pos = start + size
	return d.data[start : start+size], nil
}

// listItems parses a list payload into child items positionally until
// the declared length is consumed.
func (d *decoder) listItems(payload []byte, depth int) (*Item, error) {
	sub := &decoder{data: payload}
	items := []*Item{}
	for sub.pos < len(sub.data) {
		child, err := sub.item(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, child)
	}
	return List(items...), nil
}

const maxInt = int(^uint(0) >> 1)
