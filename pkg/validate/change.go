package validate

import (
	"fmt"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// SetOnce forbids changing a field once it holds a non-default value. It is
// only active while validating a change, when the previous value is known.
// Assigning a field whose previous value was the default is always allowed.
type SetOnce struct {
	formats MessageFormats
}

func (SetOnce) Name() string { return OptionSetOnce }

func (SetOnce) ConfigurationOf(fv *FieldValue) (bool, bool) {
	s := fv.Options().SetOnce
	return s, s
}

func (o SetOnce) declared(fv *FieldValue) bool { return fv.Options().SetOnce }

func (o SetOnce) IsUnset(fv *FieldValue) bool {
	_, hasPrevious := fv.Previous()
	return !o.declared(fv) || !hasPrevious
}

func (o SetOnce) Constraint(fv *FieldValue) (Constraint, error) {
	format := o.formats.Format(OptionSetOnce)
	params := []string{fv.Name()}
	return ConstraintFunc(func(fv *FieldValue) []ConstraintViolation {
		prev, ok := fv.Previous()
		if !ok || prev.holdsDefault() {
			return nil
		}
		if schema.Equal(prev.Canonical(), fv.Canonical()) {
			return nil
		}
		return []ConstraintViolation{{
			Constraint: OptionSetOnce,
			MsgFormat:  format,
			Params:     params,
			FieldPath:  fv.Path(),
			FieldValue: fv.Canonical(),
		}}
	}), nil
}

// holdsDefault ignores strictness: an explicitly set default value has not
// been "set" for the purpose of SetOnce.
func (fv *FieldValue) holdsDefault() bool {
	if !fv.present {
		return true
	}
	for _, v := range fv.elements {
		if !schema.IsDefault(v) {
			return false
		}
	}
	return true
}

// Goes allows a field to be set only when a companion field of the same
// message is set as well.
type Goes struct {
	formats MessageFormats
}

func (Goes) Name() string { return OptionGoes }

func (Goes) ConfigurationOf(fv *FieldValue) (schema.GoesOption, bool) {
	if opt := fv.Options().Goes; opt != nil && opt.With != "" {
		return *opt, true
	}
	return schema.GoesOption{}, false
}

func (o Goes) declared(fv *FieldValue) bool { return fv.Options().Goes != nil }

func (o Goes) IsUnset(fv *FieldValue) bool {
	_, ok := ValueOf(fv, o)
	return !ok
}

func (o Goes) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	if cfg.With == fv.Name() {
		return nil, fmt.Errorf("%w: field %q cannot go with itself", ErrUnknownField, cfg.With)
	}
	if _, err := fv.Sibling(cfg.With); err != nil {
		return nil, err
	}

	format := msgFormat(cfg.MsgFormat, o.formats, OptionGoes)
	params := []string{fv.Name(), cfg.With}
	return ConstraintFunc(func(fv *FieldValue) []ConstraintViolation {
		if fv.IsDefault() {
			return nil
		}
		companion, err := fv.Sibling(cfg.With)
		if err != nil || !companion.IsDefault() {
			return nil
		}
		return []ConstraintViolation{{
			Constraint: OptionGoes,
			MsgFormat:  format,
			Params:     params,
			FieldPath:  fv.Path(),
			FieldValue: fv.Canonical(),
		}}
	}), nil
}
