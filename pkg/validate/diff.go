package validate

import (
	"fmt"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Diff returns the names of the top-level fields whose values differ
// between previous and current, in declaration order. Absent fields compare
// equal to their defaults.
func Diff(previous, current schema.Value) ([]string, error) {
	if previous == nil || current == nil || previous.Type() == nil {
		return nil, ErrNilValue
	}
	if previous.Type() != current.Type() {
		return nil, fmt.Errorf("%w: %s compared to %s", schema.ErrTypeMismatch, previous.Type().Name, current.Type().Name)
	}

	var changed []string
	for _, decl := range current.Type().Fields {
		a, err := newFieldValue(previous, decl, Root(), false)
		if err != nil {
			return nil, err
		}
		b, err := newFieldValue(current, decl, Root(), false)
		if err != nil {
			return nil, err
		}
		if a.holdsDefault() && b.holdsDefault() {
			continue
		}
		if !schema.Equal(a.Canonical(), b.Canonical()) {
			changed = append(changed, decl.Name)
		}
	}
	return changed, nil
}
