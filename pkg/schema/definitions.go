package schema

import (
	"fmt"
	"strings"
)

// Definitions is the serialized form of a schema file.
//
//	enums:
//	  - name: Status
//	    values: [{name: UNKNOWN, number: 0}, {name: ACTIVE, number: 1}]
//	messages:
//	  - name: Person
//	    fields:
//	      - name: name
//	        type: string
//	        options: {required: true}
//	      - name: tags
//	        type: string
//	        label: repeated
//	      - name: scores
//	        type: int64
//	        label: map
//	        key: string
type Definitions struct {
	Enums    []*Enum             `yaml:"enums" json:"enums"`
	Messages []MessageDefinition `yaml:"messages" json:"messages"`
}

// MessageDefinition is the serialized form of a Message.
type MessageDefinition struct {
	Name    string            `yaml:"name" json:"name"`
	Options MessageOptions    `yaml:"options,omitempty" json:"options,omitempty"`
	Fields  []FieldDefinition `yaml:"fields" json:"fields"`
}

// FieldDefinition is the serialized form of a Field.
type FieldDefinition struct {
	Name    string       `yaml:"name" json:"name"`
	Type    string       `yaml:"type" json:"type"`
	Label   string       `yaml:"label,omitempty" json:"label,omitempty"`
	Key     string       `yaml:"key,omitempty" json:"key,omitempty"`
	Options FieldOptions `yaml:"options,omitempty" json:"options,omitempty"`
}

// Registry converts the definitions into a resolved Registry.
func (d *Definitions) Registry() (*Registry, error) {
	messages := make([]*Message, 0, len(d.Messages))
	for _, md := range d.Messages {
		msg := &Message{Name: md.Name, Options: md.Options}
		for _, fd := range md.Fields {
			f, err := fd.field()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", md.Name, err)
			}
			msg.Fields = append(msg.Fields, f)
		}
		messages = append(messages, msg)
	}
	return NewRegistry(d.Enums, messages)
}

func (fd FieldDefinition) field() (*Field, error) {
	if strings.TrimSpace(fd.Type) == "" {
		return nil, fmt.Errorf("%w: field %q has no type", ErrInvalidDefinition, fd.Name)
	}
	f := &Field{
		Name:     fd.Name,
		TypeName: fd.Type,
		Options:  fd.Options,
	}
	switch strings.ToLower(fd.Label) {
	case "", "singular", "optional":
		f.Cardinality = Singular
	case "repeated":
		f.Cardinality = Repeated
	case "map":
		f.Cardinality = Mapped
		key, ok := ParseScalarKind(fd.Key)
		if !ok {
			return nil, fmt.Errorf("%w: map field %q has key type %q", ErrInvalidDefinition, fd.Name, fd.Key)
		}
		f.MapKey = key
	default:
		return nil, fmt.Errorf("%w: field %q has label %q", ErrInvalidDefinition, fd.Name, fd.Label)
	}
	return f, nil
}
