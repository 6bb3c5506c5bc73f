package validate

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// ConstraintViolation describes one failed constraint. MsgFormat with Params
// applied positionally yields the human-readable message. FieldValue holds
// the offending value, or nil when there is none (e.g. a missing field).
type ConstraintViolation struct {
	Constraint string    `json:"constraint"`
	MsgFormat  string    `json:"msg_format"`
	Params     []string  `json:"params,omitempty"`
	FieldPath  FieldPath `json:"field_path"`
	FieldValue any       `json:"field_value,omitempty"`
}

// Message substitutes Params into MsgFormat. Both sequential "%s" and
// indexed "%1$s" placeholders are supported; "%%" renders a percent sign.
func (v ConstraintViolation) Message() string {
	return formatMessage(v.MsgFormat, v.Params)
}

// MarshalJSON renders FieldValue in a JSON-safe form: messages by type name,
// map entries as key/value objects and non-finite floats as strings.
func (v ConstraintViolation) MarshalJSON() ([]byte, error) {
	type plain ConstraintViolation
	out := plain(v)
	out.FieldValue = jsonValue(v.FieldValue)
	return json.Marshal(out)
}

func jsonValue(v any) any {
	switch t := v.(type) {
	case schema.Value:
		return schema.Format(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return schema.Format(t)
		}
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = jsonValue(el)
		}
		return out
	case schema.Map:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = map[string]any{"key": jsonValue(e.Key), "value": jsonValue(e.Value)}
		}
		return out
	}
	return v
}

func (v ConstraintViolation) String() string {
	if v.FieldPath.IsRoot() {
		return v.Message()
	}
	return v.FieldPath.String() + ": " + v.Message()
}

func formatMessage(format string, params []string) string {
	var b strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}

		switch format[i+1] {
		case '%':
			b.WriteByte('%')
			i++
			continue
		case 's':
			if next < len(params) {
				b.WriteString(params[next])
			}
			next++
			i++
			continue
		}

		// indexed placeholder: %N$s
		j := i + 1
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			j++
		}
		if j > i+1 && j+1 < len(format) && format[j] == '$' && format[j+1] == 's' {
			n, err := strconv.Atoi(format[i+1 : j])
			if err == nil && n >= 1 && n <= len(params) {
				b.WriteString(params[n-1])
			}
			i = j + 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Violations is the ordered result of one validation call.
type Violations []ConstraintViolation

// Error lists every violation with its path.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns the violations as an error, or nil when there are none.
func (vs Violations) Err() error {
	if vs.IsEmpty() {
		return nil
	}
	return vs
}

// Add appends a violation.
func (vs *Violations) Add(v ConstraintViolation) {
	*vs = append(*vs, v)
}

// IsEmpty reports whether no constraint was violated.
func (vs Violations) IsEmpty() bool {
	return len(vs) == 0
}

// Has reports whether any violation was reported for the dotted field path.
func (vs Violations) Has(path string) bool {
	for _, v := range vs {
		if v.FieldPath.String() == path {
			return true
		}
	}
	return false
}

// Get returns the formatted messages reported for the dotted field path.
func (vs Violations) Get(path string) []string {
	var messages []string
	for _, v := range vs {
		if v.FieldPath.String() == path {
			messages = append(messages, v.Message())
		}
	}
	return messages
}

// ByConstraint returns the violations produced by the named constraint kind.
func (vs Violations) ByConstraint(name string) Violations {
	var out Violations
	for _, v := range vs {
		if v.Constraint == name {
			out = append(out, v)
		}
	}
	return out
}

// Fields returns the distinct dotted paths in first-seen order.
func (vs Violations) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, v := range vs {
		p := v.FieldPath.String()
		if !seen[p] {
			fields = append(fields, p)
			seen[p] = true
		}
	}
	return fields
}

// ExtractViolations unwraps Violations from an error chain.
func ExtractViolations(err error) Violations {
	if err == nil {
		return nil
	}

	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}
	return nil
}

// IsViolations reports whether err wraps a Violations list.
func IsViolations(err error) bool {
	if err == nil {
		return false
	}

	var vs Violations
	return errors.As(err, &vs)
}
