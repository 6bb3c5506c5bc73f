package schema

// Message declares the shape of a record: its ordered fields and the
// message-level constraint options.
type Message struct {
	Name    string
	Fields  []*Field
	Options MessageOptions
}

// Field returns the declaration with the given name.
func (m *Message) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Field declares one field of a message.
type Field struct {
	Name        string
	Kind        Kind
	Cardinality Cardinality
	// TypeName references an Enum or Message by name for those kinds.
	TypeName string
	// MapKey is the key kind of map fields.
	MapKey  Kind
	Options FieldOptions

	// Enum and Message are resolved by the Registry for enum and message kinds.
	Enum    *Enum
	Message *Message
}

// ValueKind is a shorthand for f.Kind.ValueKind().
func (f *Field) ValueKind() ValueKind {
	return f.Kind.ValueKind()
}

func (f *Field) IsRepeated() bool { return f.Cardinality == Repeated }
func (f *Field) IsMap() bool      { return f.Cardinality == Mapped }

// Enum declares an enumeration type.
type Enum struct {
	Name   string      `yaml:"name" json:"name"`
	Values []EnumValue `yaml:"values" json:"values"`
}

// EnumValue is one declared enumerant.
type EnumValue struct {
	Name   string `yaml:"name" json:"name"`
	Number int32  `yaml:"number" json:"number"`
}

// Contains reports whether n is a declared enumerant number.
func (e *Enum) Contains(n EnumNumber) bool {
	for _, v := range e.Values {
		if EnumNumber(v.Number) == n {
			return true
		}
	}
	return false
}

// ByName resolves an enumerant by its name.
func (e *Enum) ByName(name string) (EnumNumber, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return EnumNumber(v.Number), true
		}
	}
	return 0, false
}

// MessageOptions holds constraints declared on a message as a whole.
type MessageOptions struct {
	// RequiredField lists alternative field combinations of which at least
	// one must be fully set, e.g. "email | phone & country_code".
	RequiredField string `yaml:"required_field,omitempty" json:"required_field,omitempty"`
}

// FieldOptions holds the constraint configuration declared on a field.
// A nil pointer or zero value means the option is not declared.
type FieldOptions struct {
	Required  bool             `yaml:"required,omitempty" json:"required,omitempty"`
	IfMissing *IfMissingOption `yaml:"if_missing,omitempty" json:"if_missing,omitempty"`
	Min       *BoundOption     `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *BoundOption     `yaml:"max,omitempty" json:"max,omitempty"`
	Range     string           `yaml:"range,omitempty" json:"range,omitempty"`
	Digits    *DigitsOption    `yaml:"digits,omitempty" json:"digits,omitempty"`
	Pattern   *PatternOption   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Distinct  bool             `yaml:"distinct,omitempty" json:"distinct,omitempty"`
	ValidEnum bool             `yaml:"valid_enum,omitempty" json:"valid_enum,omitempty"`
	SetOnce   bool             `yaml:"set_once,omitempty" json:"set_once,omitempty"`
	Goes      *GoesOption      `yaml:"goes,omitempty" json:"goes,omitempty"`

	// Custom carries configuration for user-defined constraint kinds keyed
	// by the option name.
	Custom map[string]any `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// IfMissingOption overrides the message reported by Required.
type IfMissingOption struct {
	MsgFormat string `yaml:"msg_format" json:"msg_format"`
}

// BoundOption configures Min and Max. Value is kept as written so it can be
// parsed with the precision of the field it applies to.
type BoundOption struct {
	Value     string `yaml:"value" json:"value"`
	Exclusive bool   `yaml:"exclusive,omitempty" json:"exclusive,omitempty"`
	MsgFormat string `yaml:"msg_format,omitempty" json:"msg_format,omitempty"`
}

// DigitsOption limits the number of integer and fraction digits.
type DigitsOption struct {
	IntegerMax  int    `yaml:"integer_max" json:"integer_max"`
	FractionMax int    `yaml:"fraction_max" json:"fraction_max"`
	MsgFormat   string `yaml:"msg_format,omitempty" json:"msg_format,omitempty"`
}

// PatternOption requires text values to match a regular expression.
type PatternOption struct {
	Regex           string `yaml:"regex" json:"regex"`
	PartialMatch    bool   `yaml:"partial_match,omitempty" json:"partial_match,omitempty"`
	CaseInsensitive bool   `yaml:"case_insensitive,omitempty" json:"case_insensitive,omitempty"`
	Multiline       bool   `yaml:"multiline,omitempty" json:"multiline,omitempty"`
	DotAll          bool   `yaml:"dot_all,omitempty" json:"dot_all,omitempty"`
	MsgFormat       string `yaml:"msg_format,omitempty" json:"msg_format,omitempty"`
}

// GoesOption allows a field to be set only together with another field of
// the same message.
type GoesOption struct {
	With      string `yaml:"with" json:"with"`
	MsgFormat string `yaml:"msg_format,omitempty" json:"msg_format,omitempty"`
}
