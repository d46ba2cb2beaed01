package rlp

import "io"

// MaxDepth is the maximum list nesting the codec accepts, on both the
// encode and decode paths. Wire input is untrusted; without a bound a
// few kilobytes of nested list prefixes would drive the recursive
// parser arbitrarily deep.
const MaxDepth = 1024

// Encode returns the canonical RLP encoding of the item.
func Encode(it *Item) ([]byte, error) {
	return encodeItem(nil, it, 0)
}

// EncodeToWriter writes the canonical RLP encoding of the item to w.
func EncodeToWriter(w io.Writer, it *Item) error {
	b, err := Encode(it)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeItem(dst []byte, it *Item, depth int) ([]byte, error) {
	if it == nil {
		return nil, ErrNilItem
	}
	if depth > MaxDepth {
		return nil, ErrNestingTooDeep
	}
	if it.kind == StringKind {
		return append(dst, encodeString(it.str)...), nil
	}

	var payload []byte
	for _, child := range it.list {
		var err error
		payload, err = encodeItem(payload, child, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, wrapList(payload)...), nil
}

// encodeString encodes a byte string with the canonical prefix:
// a single byte below 0x80 is its own encoding, short strings get a
// 0x80+len prefix, long strings a 0xb7+lenlen prefix and the length in
// minimal big-endian form.
func encodeString(data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] <= 0x7f {
		return data
	}
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0x80 + byte(n)
		copy(buf[1:], data)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xb7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], data)
	return buf
}

// wrapList wraps an already-encoded payload in a list header, using the
// 0xc0+len short form or the 0xf7+lenlen long form.
func wrapList(payload []byte) []byte {
	n := len(payload)
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0xc0 + byte(n)
		copy(buf[1:], payload)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xf7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], payload)
	return buf
}

// putUintBigEndian encodes u as big-endian with no leading zeros.
func putUintBigEndian(u uint64) []byte {
	switch {
	case u < (1 << 8):
		return []byte{byte(u)}
	case u < (1 << 16):
		return []byte{byte(u >> 8), byte(u)}
	case u < (1 << 24):
		return []byte{byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 32):
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 40):
		return []byte{byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 48):
		return []byte{byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 56):
		return []byte{byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	default:
		return []byte{byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	}
}
