package sedes

import (
	"bytes"
	"fmt"

	"github.com/MasamiYui/ciri/rlp"
)

// Field is one schema entry: a name and a type tag.
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered, immutable list of named, typed fields. Field
// order is the wire order; names are unique.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from the given fields, validating every
// type tag eagerly. A duplicate or empty field name or a malformed tag
// is an ErrInvalidSchema.
func NewSchema(fields []Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range s.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: empty field name at position %d", ErrInvalidSchema, i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		if err := f.Type.validate(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// Fields returns a copy of the schema's fields in wire order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Has reports whether the schema has a field with the given name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Encode converts the field values to the wire encoding: each field in
// schema order becomes one element of the top-level list. The value map
// must contain exactly the schema's fields.
func (s *Schema) Encode(values map[string]Value) ([]byte, error) {
	it, err := s.encodeItem(values)
	if err != nil {
		return nil, err
	}
	return rlp.Encode(it)
}

// encodeItem builds the record's item tree without materializing nested
// encodings.
func (s *Schema) encodeItem(values map[string]Value) (*rlp.Item, error) {
	for name := range values {
		if _, ok := s.index[name]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidSchema, name)
		}
	}
	items := make([]*rlp.Item, len(s.fields))
	for i, f := range s.fields {
		v, ok := values[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidSchema, f.Name)
		}
		it, err := fieldToItem(v, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		items[i] = it
	}
	return rlp.List(items...), nil
}

// Decode parses the wire encoding back into a field-value map. The
// top-level item must be a list whose arity equals the schema's field
// count.
func (s *Schema) Decode(b []byte) (map[string]Value, error) {
	it, err := rlp.Decode(b)
	if err != nil {
		return nil, err
	}
	return s.decodeItem(it)
}

func (s *Schema) decodeItem(it *rlp.Item) (map[string]Value, error) {
	if !it.IsList() {
		return nil, fmt.Errorf("%w: record encoding is not a list", ErrInvalidValue)
	}
	children := it.Items()
	if len(children) != len(s.fields) {
		return nil, fmt.Errorf("%w: got %d fields, schema has %d",
			ErrInvalidValue, len(children), len(s.fields))
	}
	values := make(map[string]Value, len(s.fields))
	for i, f := range s.fields {
		v, err := itemToField(children[i], f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		values[f.Name] = v
	}
	return values, nil
}

// fieldToItem converts one typed value to its primitive item form.
func fieldToItem(v Value, t Type) (*rlp.Item, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value for %s field", ErrInvalidValue, t)
	}
	switch t.kind {
	case kindRaw:
		return rawToItem(v)

	case kindUint:
		u, ok := v.(Uint)
		if !ok {
			return nil, fmt.Errorf("%w: %T for uint field", ErrInvalidValue, v)
		}
		return rlp.Uint(uint64(u)), nil

	case kindBool:
		b, ok := v.(Bool)
		if !ok {
			return nil, fmt.Errorf("%w: %T for bool field", ErrInvalidValue, v)
		}
		if b {
			return rlp.Bytes([]byte{0x01}), nil
		}
		return rlp.Bytes(nil), nil

	case kindRecord:
		r, ok := v.(*Record)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %s field", ErrInvalidValue, v, t)
		}
		if r.typ != t.rec {
			return nil, fmt.Errorf("%w: record of type %q for %s field",
				ErrInvalidValue, r.typ.Name(), t)
		}
		return r.encodeItem()

	case kindList:
		l, ok := v.(List)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %s field", ErrInvalidValue, v, t)
		}
		items := make([]*rlp.Item, len(l))
		for i, el := range l {
			it, err := fieldToItem(el, *t.elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = it
		}
		return rlp.List(items...), nil

	default:
		return nil, fmt.Errorf("%w: invalid type tag", ErrInvalidSchema)
	}
}

// rawToItem passes a raw value through: a byte string stays a byte
// string, a list of raw values stays a list.
func rawToItem(v Value) (*rlp.Item, error) {
	switch r := v.(type) {
	case Raw:
		return rlp.Bytes(bytes.Clone(r)), nil
	case List:
		items := make([]*rlp.Item, len(r))
		for i, el := range r {
			it, err := rawToItem(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = it
		}
		return rlp.List(items...), nil
	default:
		return nil, fmt.Errorf("%w: %T for raw field", ErrInvalidValue, v)
	}
}

// itemToField is the exact inverse of fieldToItem per type tag.
func itemToField(it *rlp.Item, t Type) (Value, error) {
	switch t.kind {
	case kindRaw:
		return itemToRaw(it)

	case kindUint:
		u, err := it.Uint()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return Uint(u), nil

	case kindBool:
		if it.IsList() {
			return nil, fmt.Errorf("%w: list for bool field", ErrInvalidValue)
		}
		b := it.Bytes()
		switch {
		case len(b) == 0:
			return Bool(false), nil
		case len(b) == 1 && b[0] == 0x01:
			return Bool(true), nil
		default:
			return nil, fmt.Errorf("%w: %x is not a bool encoding", ErrInvalidValue, b)
		}

	case kindRecord:
		return t.rec.decodeItem(it)

	case kindList:
		if !it.IsList() {
			return nil, fmt.Errorf("%w: string for %s field", ErrInvalidValue, t)
		}
		children := it.Items()
		out := make(List, len(children))
		for i, child := range children {
			v, err := itemToField(child, *t.elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: invalid type tag", ErrInvalidSchema)
	}
}

func itemToRaw(it *rlp.Item) (Value, error) {
	if !it.IsList() {
		return Raw(bytes.Clone(it.Bytes())), nil
	}
	children := it.Items()
	out := make(List, len(children))
	for i, child := range children {
		v, err := itemToRaw(child)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
