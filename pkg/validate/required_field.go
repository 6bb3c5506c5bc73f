package validate

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// ParseRequiredField splits a required_field expression into alternatives.
// "|" separates alternatives and "&" joins fields that must be set together:
// "email | phone & country" yields [[email] [phone country]].
func ParseRequiredField(expr string) ([][]string, error) {
	var alternatives [][]string
	for alt := range strings.SplitSeq(expr, "|") {
		var group []string
		for name := range strings.SplitSeq(alt, "&") {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("%w: malformed expression %q", ErrUnknownField, expr)
			}
			group = append(group, name)
		}
		alternatives = append(alternatives, group)
	}
	return alternatives, nil
}

// checkRequiredField evaluates the message-level required_field option of
// value. path is the path of the message itself.
func (v *Validator) checkRequiredField(value schema.Value, path FieldPath, strict bool) ([]ConstraintViolation, error) {
	expr := strings.TrimSpace(value.Type().Options.RequiredField)
	if expr == "" {
		return nil, nil
	}
	alternatives, err := ParseRequiredField(expr)
	if err != nil {
		return nil, configError(path, OptionRequiredField, err)
	}

	for _, group := range alternatives {
		for _, name := range group {
			if _, ok := value.Type().Field(name); !ok {
				return nil, configError(path, OptionRequiredField, fmt.Errorf("%w: %q", ErrUnknownField, name))
			}
		}
	}

	for _, group := range alternatives {
		satisfied := true
		for _, name := range group {
			fv, err := NewFieldValue(value, name, path, strict)
			if err != nil {
				return nil, err
			}
			if fv.IsDefault() {
				satisfied = false
				break
			}
		}
		if satisfied {
			return nil, nil
		}
	}

	return []ConstraintViolation{{
		Constraint: OptionRequiredField,
		MsgFormat:  v.formats.Format(OptionRequiredField),
		Params:     []string{expr},
		FieldPath:  path,
	}}, nil
}
