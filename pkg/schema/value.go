package schema

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Value is a concrete message instance conforming to a Message schema.
// Get reports the raw value of a field and whether the field is
// structurally present. Implementations must be safe for concurrent reads.
type Value interface {
	Type() *Message
	Get(name string) (any, bool)
}

// EnumNumber is the canonical representation of an enum value.
type EnumNumber int32

// MapEntry is one key/value pair of a map field.
type MapEntry struct {
	Key   any
	Value any
}

// Map is the canonical representation of a map field: entries ordered by key.
type Map []MapEntry

// Record is a dynamic Value backed by a map of field values.
type Record struct {
	typ    *Message
	fields map[string]any
}

// NewRecord returns an empty record of the given type.
func NewRecord(typ *Message) *Record {
	return &Record{typ: typ, fields: make(map[string]any)}
}

// Set assigns a raw field value and returns the record for chaining.
// Values are normalized lazily by Normalize when they are read for validation.
func (r *Record) Set(name string, value any) *Record {
	r.fields[name] = value
	return r
}

// Unset removes a field, making it structurally absent.
func (r *Record) Unset(name string) *Record {
	delete(r.fields, name)
	return r
}

func (r *Record) Type() *Message {
	return r.typ
}

func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy of the record.
func (r *Record) Clone() *Record {
	return &Record{typ: r.typ, fields: maps.Clone(r.fields)}
}

// Default returns the zero value of a single element of the field:
// 0, "", empty bytes, false, enum number 0 or an empty record.
func Default(f *Field) any {
	return defaultOf(f.Kind, f.Message)
}

func defaultOf(k Kind, msg *Message) any {
	switch {
	case k.IsSigned():
		return int64(0)
	case k.IsUnsigned():
		return uint64(0)
	case k.IsFloat():
		return float64(0)
	}
	switch k {
	case KindString:
		return ""
	case KindBytes:
		return []byte{}
	case KindBool:
		return false
	case KindEnum:
		return EnumNumber(0)
	case KindMessage:
		return NewRecord(msg)
	}
	return nil
}

// IsDefault reports whether a canonical element equals the type default.
// Messages are default when none of their fields holds a non-default value.
func IsDefault(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	case string:
		return t == ""
	case []byte:
		return len(t) == 0
	case bool:
		return !t
	case EnumNumber:
		return t == 0
	case []any:
		return len(t) == 0
	case Map:
		return len(t) == 0
	case Value:
		return isDefaultMessage(t)
	}
	return false
}

func isDefaultMessage(v Value) bool {
	typ := v.Type()
	if typ == nil {
		return true
	}
	for _, f := range typ.Fields {
		raw, ok := v.Get(f.Name)
		if !ok {
			continue
		}
		n, err := Normalize(f, raw)
		if err != nil {
			return false
		}
		if !IsDefault(n) {
			return false
		}
	}
	return true
}

// Equal compares two canonical values structurally.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Map:
		y, ok := b.(Map)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i].Key, y[i].Key) || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	case Value:
		y, ok := b.(Value)
		return ok && equalMessages(x, y)
	case nil:
		return b == nil
	}
	if _, ok := b.(Value); ok {
		return false
	}
	return a == b
}

func equalMessages(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	if a.Type() == nil {
		return true
	}
	for _, f := range a.Type().Fields {
		x, err := fieldOrDefault(f, a)
		if err != nil {
			return false
		}
		y, err := fieldOrDefault(f, b)
		if err != nil {
			return false
		}
		if IsDefault(x) && IsDefault(y) {
			continue
		}
		if !Equal(x, y) {
			return false
		}
	}
	return true
}

func fieldOrDefault(f *Field, v Value) (any, error) {
	raw, ok := v.Get(f.Name)
	if !ok {
		switch f.Cardinality {
		case Repeated:
			return []any(nil), nil
		case Mapped:
			return Map(nil), nil
		}
		return Default(f), nil
	}
	return Normalize(f, raw)
}

// Format renders a canonical element for diagnostics.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return fmt.Sprintf("%x", t)
	case Value:
		if t.Type() != nil {
			return t.Type().Name
		}
		return "message"
	}
	return fmt.Sprint(v)
}

func compareKeys(a, b any) int {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case uint64:
		if y, ok := b.(uint64); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func sortEntries(m Map) {
	slices.SortStableFunc(m, func(a, b MapEntry) int {
		return compareKeys(a.Key, b.Key)
	})
}
