package sedes

import (
	"fmt"

	"github.com/MasamiYui/ciri/rlp"
)

// RecordType is a named record type with a schema and optional field
// defaults. Creation and definition are separate steps so that a
// schema's type tags can reference the type being defined. A type is
// defined exactly once, at program initialization, and is immutable
// afterwards.
type RecordType struct {
	name     string
	schema   *Schema
	defaults map[string]Value
}

// NewRecordType creates an undefined record type. Records cannot be
// built or decoded until Define has run.
func NewRecordType(name string) *RecordType {
	return &RecordType{name: name}
}

// Define installs the type's schema and defaults. Defaults supply
// values only for fields absent from a construction map; every default
// must name a schema field. Define fails on a malformed schema and on
// repeated definition.
func (rt *RecordType) Define(fields []Field, defaults map[string]Value) error {
	if rt.schema != nil {
		return fmt.Errorf("%w: type %q already defined", ErrInvalidSchema, rt.name)
	}
	schema, err := NewSchema(fields)
	if err != nil {
		return err
	}
	for name := range defaults {
		if !schema.Has(name) {
			return fmt.Errorf("%w: default for unknown field %q", ErrInvalidSchema, name)
		}
	}
	merged := make(map[string]Value, len(defaults))
	for name, v := range defaults {
		merged[name] = v
	}
	rt.schema = schema
	rt.defaults = merged
	return nil
}

// DefineRecordType creates and defines a record type in one step, for
// types whose schema does not reference itself.
func DefineRecordType(name string, fields []Field, defaults map[string]Value) (*RecordType, error) {
	rt := NewRecordType(name)
	if err := rt.Define(fields, defaults); err != nil {
		return nil, err
	}
	return rt, nil
}

// Name returns the type's name.
func (rt *RecordType) Name() string { return rt.name }

// Schema returns the type's schema, or nil before Define.
func (rt *RecordType) Schema() *Schema { return rt.schema }

// Record is an immutable instance of a record type: a complete
// field-value mapping validated against the type's schema.
type Record struct {
	typ    *RecordType
	values map[string]Value
}

// New constructs a record from the given field values merged with the
// type's defaults. After the merge every schema field must be present
// and no extra fields may remain; violations are ErrInvalidSchema
// naming the offending field.
func (rt *RecordType) New(values map[string]Value) (*Record, error) {
	if rt.schema == nil {
		return nil, fmt.Errorf("%w: type %q is not defined", ErrInvalidSchema, rt.name)
	}
	merged := make(map[string]Value, rt.schema.Len())
	for name, v := range values {
		if !rt.schema.Has(name) {
			return nil, fmt.Errorf("%w: unknown field %q for type %q",
				ErrInvalidSchema, name, rt.name)
		}
		merged[name] = v
	}
	for name, v := range rt.defaults {
		if _, ok := merged[name]; !ok {
			merged[name] = v
		}
	}
	for _, f := range rt.schema.fields {
		if _, ok := merged[f.Name]; !ok {
			return nil, fmt.Errorf("%w: missing field %q for type %q",
				ErrInvalidSchema, f.Name, rt.name)
		}
	}
	return &Record{typ: rt, values: merged}, nil
}

// Decode parses the wire encoding into a record of this type.
func (rt *RecordType) Decode(b []byte) (*Record, error) {
	if rt.schema == nil {
		return nil, fmt.Errorf("%w: type %q is not defined", ErrInvalidSchema, rt.name)
	}
	values, err := rt.schema.Decode(b)
	if err != nil {
		return nil, err
	}
	return &Record{typ: rt, values: values}, nil
}

// decodeItem decodes a nested record from its sub-item.
func (rt *RecordType) decodeItem(it *rlp.Item) (*Record, error) {
	if rt.schema == nil {
		return nil, fmt.Errorf("%w: type %q is not defined", ErrInvalidSchema, rt.name)
	}
	values, err := rt.schema.decodeItem(it)
	if err != nil {
		return nil, err
	}
	return &Record{typ: rt, values: values}, nil
}

// Type returns the record's type.
func (r *Record) Type() *RecordType { return r.typ }

// Get returns the value of the named field.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields returns a copy of the record's field-value mapping. Mutating
// the copy does not affect the record; pass it back through the type's
// New to build a modified record.
func (r *Record) Fields() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for name, v := range r.values {
		out[name] = v
	}
	return out
}

// WithField returns a fresh validated record equal to r except for the
// named field. The receiver is unchanged.
func (r *Record) WithField(name string, v Value) (*Record, error) {
	values := r.Fields()
	values[name] = v
	return r.typ.New(values)
}

// Encode returns the record's canonical wire encoding.
func (r *Record) Encode() ([]byte, error) {
	it, err := r.encodeItem()
	if err != nil {
		return nil, err
	}
	return rlp.Encode(it)
}

// encodeItem builds the record's item tree for direct embedding in a
// parent record, avoiding an encode/re-parse round trip.
func (r *Record) encodeItem() (*rlp.Item, error) {
	return r.typ.schema.encodeItem(r.values)
}

func (*Record) isValue() {}

// Equal reports record equality: same record type and deep-equal field
// values, regardless of how either record was constructed.
func (r *Record) Equal(other Value) bool {
	o, ok := other.(*Record)
	if !ok || o == nil || r.typ != o.typ {
		return false
	}
	for name, v := range r.values {
		if !v.Equal(o.values[name]) {
			return false
		}
	}
	return true
}
