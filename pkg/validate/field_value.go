package validate

import (
	"fmt"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Element is one value of a field together with the path it is reported under.
// Elements of repeated and map fields share the field path; indexes and keys
// are not part of it.
type Element struct {
	Value any
	Path  FieldPath
}

// FieldValue adapts one occurrence of a field for constraint evaluation.
// It is created per validation call and never shared.
type FieldValue struct {
	decl     *schema.Field
	elements []any
	entries  schema.Map
	present  bool
	path     FieldPath
	strict   bool
	parent   schema.Value
	previous *FieldValue
}

// NewFieldValue reads the named field of parent and wraps it. context is
// the path of parent; the field's own path is context.Child(name).
func NewFieldValue(parent schema.Value, name string, context FieldPath, strict bool) (*FieldValue, error) {
	if parent == nil || parent.Type() == nil {
		return nil, ErrNilValue
	}
	decl, ok := parent.Type().Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", schema.ErrUnknownField, parent.Type().Name, name)
	}
	return newFieldValue(parent, decl, context, strict)
}

func newFieldValue(parent schema.Value, decl *schema.Field, context FieldPath, strict bool) (*FieldValue, error) {
	fv := &FieldValue{
		decl:   decl,
		path:   context.Child(decl.Name),
		strict: strict,
		parent: parent,
	}

	raw, ok := parent.Get(decl.Name)
	var canonical any
	if ok {
		n, err := schema.Normalize(decl, raw)
		if err != nil {
			return nil, err
		}
		canonical = n
	}

	switch decl.Cardinality {
	case schema.Repeated:
		list, _ := canonical.([]any)
		fv.elements = list
		fv.present = len(list) > 0
	case schema.Mapped:
		m, _ := canonical.(schema.Map)
		fv.entries = m
		fv.elements = make([]any, 0, len(m))
		for _, e := range m {
			fv.elements = append(fv.elements, e.Value)
		}
		fv.present = len(m) > 0
	default:
		fv.present = ok
		switch {
		case ok:
			fv.elements = []any{canonical}
		case decl.ValueKind() != schema.ValueMessage:
			// absent scalars still carry their default value
			fv.elements = []any{schema.Default(decl)}
		}
	}
	return fv, nil
}

// Declaration returns the schema declaration of the field.
func (fv *FieldValue) Declaration() *schema.Field {
	return fv.decl
}

// Options returns the constraint configuration declared on the field.
func (fv *FieldValue) Options() schema.FieldOptions {
	return fv.decl.Options
}

// Name returns the declared field name.
func (fv *FieldValue) Name() string {
	return fv.decl.Name
}

// Kind returns the declared scalar, enum or message kind.
func (fv *FieldValue) Kind() schema.Kind {
	return fv.decl.Kind
}

// ValueKind groups Kind into the categories options dispatch on.
func (fv *FieldValue) ValueKind() schema.ValueKind {
	return fv.decl.ValueKind()
}

// IsRepeated reports whether the field is a list.
func (fv *FieldValue) IsRepeated() bool {
	return fv.decl.IsRepeated()
}

// IsMap reports whether the field is a map.
func (fv *FieldValue) IsMap() bool {
	return fv.decl.IsMap()
}

// IsPresent reports structural presence: the field is set, or a repeated or
// map field has at least one element.
func (fv *FieldValue) IsPresent() bool {
	return fv.present
}

// Strict reports whether structurally defaulted values count as present.
func (fv *FieldValue) Strict() bool {
	return fv.strict
}

// Path is the path of the field itself.
func (fv *FieldValue) Path() FieldPath {
	return fv.path
}

// Values returns the canonical elements: one for singular scalars, zero or
// one for singular messages, all items for repeated fields and the values
// of map fields in key order.
func (fv *FieldValue) Values() []any {
	return fv.elements
}

// Elements pairs every value with the path it is reported under.
func (fv *FieldValue) Elements() []Element {
	out := make([]Element, 0, len(fv.elements))
	for _, v := range fv.elements {
		out = append(out, Element{Value: v, Path: fv.path})
	}
	return out
}

// Entries returns the key/value pairs of a map field.
func (fv *FieldValue) Entries() schema.Map {
	return fv.entries
}

// Canonical returns the whole field value: the element for singular fields,
// []any for repeated fields and schema.Map for maps.
func (fv *FieldValue) Canonical() any {
	switch fv.decl.Cardinality {
	case schema.Repeated:
		return fv.elements
	case schema.Mapped:
		return fv.entries
	}
	if len(fv.elements) == 0 {
		return nil
	}
	return fv.elements[0]
}

// IsDefault reports whether the field counts as unset. In strict mode only
// structural absence counts; otherwise a value equal to the type default
// counts as well, as do repeated fields whose items are all defaults.
func (fv *FieldValue) IsDefault() bool {
	if !fv.present {
		return true
	}
	if fv.strict {
		return false
	}
	for _, v := range fv.elements {
		if !schema.IsDefault(v) {
			return false
		}
	}
	return true
}

// Parent returns the message value the field belongs to.
func (fv *FieldValue) Parent() schema.Value {
	return fv.parent
}

// Sibling wraps another field of the same message.
func (fv *FieldValue) Sibling(name string) (*FieldValue, error) {
	decl, ok := fv.parent.Type().Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	context, _ := fv.path.Parent()
	return newFieldValue(fv.parent, decl, context, fv.strict)
}

// Previous returns the value the field held before a change. It is only
// available during ValidateChange.
func (fv *FieldValue) Previous() (*FieldValue, bool) {
	return fv.previous, fv.previous != nil
}

// Configurable is implemented by options that read a typed configuration
// from the field declaration.
type Configurable[C any] interface {
	ConfigurationOf(fv *FieldValue) (C, bool)
}

// ValueOf returns the configuration the schema declares on the field for the
// given option, reporting false when the option is not configured.
func ValueOf[C any](fv *FieldValue, option Configurable[C]) (C, bool) {
	return option.ConfigurationOf(fv)
}
