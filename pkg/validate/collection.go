package validate

import (
	"fmt"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Distinct reports repeated fields holding the same element twice. Map
// fields are checked on their values. One violation is reported per field,
// carrying the first duplicate found.
type Distinct struct {
	formats MessageFormats
}

func (Distinct) Name() string { return OptionDistinct }

func (Distinct) ConfigurationOf(fv *FieldValue) (bool, bool) {
	d := fv.Options().Distinct
	return d, d
}

func (o Distinct) declared(fv *FieldValue) bool { return fv.Options().Distinct }

func (o Distinct) IsUnset(fv *FieldValue) bool { return !o.declared(fv) }

func (o Distinct) Constraint(fv *FieldValue) (Constraint, error) {
	if !fv.IsRepeated() && !fv.IsMap() {
		return nil, fmt.Errorf("%w: distinct requires a repeated or map field", ErrOptionNotApplicable)
	}
	format := o.formats.Format(OptionDistinct)
	return ConstraintFunc(func(fv *FieldValue) []ConstraintViolation {
		dup, found := firstDuplicate(fv.Values())
		if !found {
			return nil
		}
		return []ConstraintViolation{{
			Constraint: OptionDistinct,
			MsgFormat:  format,
			FieldPath:  fv.Path(),
			FieldValue: dup,
		}}
	}), nil
}

func firstDuplicate(values []any) (any, bool) {
	seen := make(map[any]struct{}, len(values))
	for i, v := range values {
		switch v.(type) {
		case []byte, schema.Value:
			// not hashable, compare structurally with earlier elements
			for _, prev := range values[:i] {
				if schema.Equal(prev, v) {
					return v, true
				}
			}
			continue
		}
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return nil, false
}

// ValidEnum reports enum numbers that are not declared by the enum type.
type ValidEnum struct {
	formats MessageFormats
}

func (ValidEnum) Name() string { return OptionValidEnum }

func (ValidEnum) ConfigurationOf(fv *FieldValue) (bool, bool) {
	v := fv.Options().ValidEnum
	return v, v
}

func (o ValidEnum) declared(fv *FieldValue) bool { return fv.Options().ValidEnum }

func (o ValidEnum) IsUnset(fv *FieldValue) bool { return !o.declared(fv) }

func (o ValidEnum) Constraint(fv *FieldValue) (Constraint, error) {
	enum := fv.Declaration().Enum
	if enum == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, fv.Declaration().TypeName)
	}
	format := o.formats.Format(OptionValidEnum)
	params := []string{enum.Name}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		n, _ := v.(schema.EnumNumber)
		return ConstraintViolation{Constraint: OptionValidEnum, MsgFormat: format, Params: params}, !enum.Contains(n)
	}), nil
}
