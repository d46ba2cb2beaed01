package sedes

import "fmt"

type typeKind uint8

const (
	kindInvalid typeKind = iota // zero Type, rejected at schema definition
	kindRaw
	kindUint
	kindBool
	kindRecord
	kindList
)

// Type is a field's type tag: raw bytes, unsigned integer, boolean, a
// nested record type, or a homogeneous list of an element type. The
// zero Type is invalid; construct tags with RawType, UintType,
// BoolType, RecordOf and ListOf.
type Type struct {
	kind typeKind
	elem *Type
	rec  *RecordType
}

// RawType is the tag for opaque byte strings.
func RawType() Type { return Type{kind: kindRaw} }

// UintType is the tag for non-negative integers up to 64 bits. Wider
// integers travel as RawType minimal big-endian bytes.
func UintType() Type { return Type{kind: kindUint} }

// BoolType is the tag for booleans.
func BoolType() Type { return Type{kind: kindBool} }

// RecordOf is the tag for a nested record of the given type. The type
// may still be undefined when the tag is built, which is how a schema
// references its own record type.
func RecordOf(rt *RecordType) Type { return Type{kind: kindRecord, rec: rt} }

// ListOf is the tag for a homogeneous list of elem. Lists nest to any
// depth.
func ListOf(elem Type) Type {
	e := elem
	return Type{kind: kindList, elem: &e}
}

// validate rejects malformed tags. It runs at schema definition time so
// that encode and decode never see an invalid tag.
func (t Type) validate() error {
	switch t.kind {
	case kindRaw, kindUint, kindBool:
		return nil
	case kindRecord:
		if t.rec == nil {
			return fmt.Errorf("%w: record tag with nil record type", ErrInvalidSchema)
		}
		return nil
	case kindList:
		if t.elem == nil {
			return fmt.Errorf("%w: list tag with no element type", ErrInvalidSchema)
		}
		return t.elem.validate()
	default:
		return fmt.Errorf("%w: invalid type tag", ErrInvalidSchema)
	}
}

// String renders the tag for error messages.
func (t Type) String() string {
	switch t.kind {
	case kindRaw:
		return "raw"
	case kindUint:
		return "uint"
	case kindBool:
		return "bool"
	case kindRecord:
		if t.rec == nil {
			return "record(nil)"
		}
		return "record(" + t.rec.Name() + ")"
	case kindList:
		if t.elem == nil {
			return "[invalid]"
		}
		return "[" + t.elem.String() + "]"
	default:
		return "invalid"
	}
}
