package protoschema

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Rules attaches constraint options to protobuf messages without touching
// their .proto sources. Messages are keyed by full name:
//
//	messages:
//	  shop.v1.Order:
//	    required_field: "email | phone"
//	    fields:
//	      id: {required: true, set_once: true}
//	      total: {min: {value: "0"}}
type Rules struct {
	Messages map[string]MessageRules `yaml:"messages"`
}

// MessageRules holds the options of one message.
type MessageRules struct {
	RequiredField string                         `yaml:"required_field,omitempty"`
	Fields        map[string]schema.FieldOptions `yaml:"fields,omitempty"`
}

// ParseRules decodes a YAML rule set.
func ParseRules(content []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(content, &r); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return &r, nil
}

// LoadRules reads and decodes a YAML rule set file.
func LoadRules(path string) (*Rules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return ParseRules(content)
}

func (r *Rules) message(name string) (MessageRules, bool) {
	if r == nil {
		return MessageRules{}, false
	}
	m, ok := r.Messages[name]
	return m, ok
}
