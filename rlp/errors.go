package rlp

import "errors"

var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("rlp: expected string")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("rlp: expected list")

	// ErrCanonSize is returned when a single byte below 0x80 is wrapped
	// in a short-string prefix instead of encoding as itself.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	// ErrCanonInt is returned when an integer or length uses non-canonical
	// encoding (leading zero bytes).
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrNonCanonicalSize is returned when the long size form is used for
	// a payload that fits the short form.
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = errors.New("rlp: uint64 overflow")

	// ErrValueTooLarge is returned when a declared payload length does not
	// fit in the decoder's address space.
	ErrValueTooLarge = errors.New("rlp: value too large")

	// ErrTrailingBytes is returned by Decode when input remains after one
	// complete top-level item.
	ErrTrailingBytes = errors.New("rlp: trailing bytes after item")

	// ErrNestingTooDeep is returned when list nesting exceeds MaxDepth.
	ErrNestingTooDeep = errors.New("rlp: nesting too deep")

	// ErrNilItem is returned when encoding a nil item.
	ErrNilItem = errors.New("rlp: nil item")
)
