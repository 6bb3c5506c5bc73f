package schema

import (
	"fmt"
	"sort"
)

// Registry is an explicitly constructed, read-only table of enum and message
// types. Construction resolves every type reference; after NewRegistry returns
// the registry and the schemas it holds are never mutated and may be shared
// between goroutines.
type Registry struct {
	messages map[string]*Message
	enums    map[string]*Enum
}

// NewRegistry builds a registry from the given definitions. Field kinds left
// as KindInvalid are resolved from TypeName, which may name a scalar type, an
// enum or a message.
func NewRegistry(enums []*Enum, messages []*Message) (*Registry, error) {
	r := &Registry{
		messages: make(map[string]*Message, len(messages)),
		enums:    make(map[string]*Enum, len(enums)),
	}

	for _, e := range enums {
		if e == nil || e.Name == "" {
			return nil, fmt.Errorf("%w: enum without a name", ErrInvalidDefinition)
		}
		if _, exists := r.enums[e.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, e.Name)
		}
		r.enums[e.Name] = e
	}
	for _, m := range messages {
		if m == nil || m.Name == "" {
			return nil, fmt.Errorf("%w: message without a name", ErrInvalidDefinition)
		}
		if _, exists := r.messages[m.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, m.Name)
		}
		if _, exists := r.enums[m.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, m.Name)
		}
		r.messages[m.Name] = m
	}

	for _, m := range messages {
		if err := r.resolve(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) resolve(m *Message) error {
	seen := make(map[string]struct{}, len(m.Fields))
	for _, f := range m.Fields {
		if f == nil || f.Name == "" {
			return fmt.Errorf("%w: %s has a field without a name", ErrInvalidDefinition, m.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, m.Name, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.Kind == KindInvalid {
			if k, ok := ParseScalarKind(f.TypeName); ok {
				f.Kind = k
			} else if _, ok := r.enums[f.TypeName]; ok {
				f.Kind = KindEnum
			} else if _, ok := r.messages[f.TypeName]; ok {
				f.Kind = KindMessage
			} else {
				return fmt.Errorf("%w: %s.%s references %q", ErrUnknownType, m.Name, f.Name, f.TypeName)
			}
		}

		switch f.Kind {
		case KindEnum:
			if f.Enum == nil {
				e, ok := r.enums[f.TypeName]
				if !ok {
					return fmt.Errorf("%w: %s.%s references enum %q", ErrUnknownType, m.Name, f.Name, f.TypeName)
				}
				f.Enum = e
			}
		case KindMessage:
			if f.Message == nil {
				msg, ok := r.messages[f.TypeName]
				if !ok {
					return fmt.Errorf("%w: %s.%s references message %q", ErrUnknownType, m.Name, f.Name, f.TypeName)
				}
				f.Message = msg
			}
		}

		if f.Cardinality == Mapped && !validMapKey(f.MapKey) {
			return fmt.Errorf("%w: %s.%s has map key kind %s", ErrInvalidDefinition, m.Name, f.Name, f.MapKey)
		}
	}
	return nil
}

func validMapKey(k Kind) bool {
	return k.IsSigned() || k.IsUnsigned() || k == KindString || k == KindBool
}

// Message looks up a message type by name.
func (r *Registry) Message(name string) (*Message, bool) {
	m, ok := r.messages[name]
	return m, ok
}

// Enum looks up an enum type by name.
func (r *Registry) Enum(name string) (*Enum, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// MessageNames returns the registered message names in sorted order.
func (r *Registry) MessageNames() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
