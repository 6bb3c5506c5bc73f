package validate

import (
	"encoding/json"
	"slices"
	"strings"
)

// FieldPath is an immutable sequence of field names locating a field inside
// a message tree. The zero value is the root path.
type FieldPath struct {
	names []string
}

// Root returns the empty path denoting the validated message itself.
func Root() FieldPath {
	return FieldPath{}
}

// NewFieldPath builds a path from field names.
func NewFieldPath(names ...string) FieldPath {
	if len(names) == 0 {
		return FieldPath{}
	}
	return FieldPath{names: slices.Clone(names)}
}

// Child returns a new path with name appended. p is left untouched.
func (p FieldPath) Child(name string) FieldPath {
	names := make([]string, len(p.names), len(p.names)+1)
	copy(names, p.names)
	return FieldPath{names: append(names, name)}
}

// Parent returns the path without its last segment. It reports false for root.
func (p FieldPath) Parent() (FieldPath, bool) {
	switch len(p.names) {
	case 0:
		return FieldPath{}, false
	case 1:
		return FieldPath{}, true
	}
	return FieldPath{names: slices.Clone(p.names[:len(p.names)-1])}, true
}

// Names returns a copy of the path segments.
func (p FieldPath) Names() []string {
	return slices.Clone(p.names)
}

// Len returns the number of segments.
func (p FieldPath) Len() int {
	return len(p.names)
}

// IsRoot reports whether the path addresses the validated message itself.
func (p FieldPath) IsRoot() bool {
	return len(p.names) == 0
}

// Equal compares paths segment by segment.
func (p FieldPath) Equal(other FieldPath) bool {
	return slices.Equal(p.names, other.names)
}

// String joins the segments with dots. Used for diagnostics only.
func (p FieldPath) String() string {
	return strings.Join(p.names, ".")
}

// MarshalJSON encodes the path as an array of field names; the root is [].
func (p FieldPath) MarshalJSON() ([]byte, error) {
	if p.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.names)
}
