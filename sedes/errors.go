package sedes

import "errors"

var (
	// ErrInvalidSchema is returned for malformed type tags at definition
	// time, and for missing or unknown fields at record construction time.
	ErrInvalidSchema = errors.New("sedes: invalid schema")

	// ErrInvalidValue is returned during typed encode/decode when a value
	// does not match its field's type tag, or when a decoded item is not
	// the canonical representation for the tag.
	ErrInvalidValue = errors.New("sedes: invalid value")
)
