package validate

import (
	"fmt"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// builtins holds one instance of every built-in option bound to the
// validator's message formats.
type builtins struct {
	required  Required
	min       Min
	max       Max
	rng       Range
	digits    Digits
	pattern   Pattern
	distinct  Distinct
	validEnum ValidEnum
	setOnce   SetOnce
	goes      Goes
}

func newBuiltins(formats MessageFormats, cache *patternCache) builtins {
	return builtins{
		required:  Required{formats: formats},
		min:       Min{formats: formats},
		max:       Max{formats: formats},
		rng:       Range{formats: formats},
		digits:    Digits{formats: formats},
		pattern:   Pattern{formats: formats, cache: cache},
		distinct:  Distinct{formats: formats},
		validEnum: ValidEnum{formats: formats},
		setOnce:   SetOnce{formats: formats},
		goes:      Goes{formats: formats},
	}
}

func (b builtins) all() []builtin {
	return []builtin{
		b.required, b.min, b.max, b.rng, b.digits, b.pattern,
		b.distinct, b.validEnum, b.setOnce, b.goes,
	}
}

// forKind returns the ordered built-in options that apply to a field.
// Kind-specific options come first, then the ones every field accepts.
func (b builtins) forKind(fv *FieldValue) ([]builtin, error) {
	opts := []builtin{b.required}
	switch fv.ValueKind() {
	case schema.ValueNumeric:
		opts = append(opts, b.min, b.max, b.rng, b.digits)
	case schema.ValueText:
		opts = append(opts, b.pattern)
	case schema.ValueEnum:
		opts = append(opts, b.validEnum)
	case schema.ValueBinary, schema.ValueBoolean, schema.ValueMessage:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, fv.Kind())
	}
	if fv.IsRepeated() || fv.IsMap() {
		opts = append(opts, b.distinct)
	}
	return append(opts, b.goes, b.setOnce), nil
}

// optionsFor dispatches on the field kind. Declaring a built-in option the
// kind does not accept is a configuration error.
func (v *Validator) optionsFor(fv *FieldValue) ([]ValidatingOption, error) {
	applicable, err := v.builtins.forKind(fv)
	if err != nil {
		return nil, configError(fv.Path(), "field", err)
	}

	for _, o := range v.builtins.all() {
		if !o.declared(fv) || contains(applicable, o) {
			continue
		}
		return nil, configError(fv.Path(), o.Name(), fmt.Errorf("%w: %s on %s %s field",
			ErrOptionNotApplicable, o.Name(), fv.Declaration().Cardinality, fv.Kind()))
	}

	out := make([]ValidatingOption, 0, len(applicable)+len(v.custom))
	for _, o := range applicable {
		out = append(out, o)
	}
	return append(out, v.custom...), nil
}

func contains(opts []builtin, o builtin) bool {
	for _, x := range opts {
		if x.Name() == o.Name() {
			return true
		}
	}
	return false
}
