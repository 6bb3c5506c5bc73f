package validate

// MessageFormats supplies the default message format of a constraint kind.
// A format declared on the field itself always takes precedence.
type MessageFormats interface {
	Format(option string) string
}

// FormatMap is a MessageFormats backed by a map. Missing entries fall back
// to DefaultMessageFormats.
type FormatMap map[string]string

func (m FormatMap) Format(option string) string {
	if f, ok := m[option]; ok && f != "" {
		return f
	}
	return DefaultMessageFormats[option]
}

// DefaultMessageFormats are the English formats used when neither the field
// nor the validator configures one.
var DefaultMessageFormats = map[string]string{
	OptionRequired:      "A value must be set.",
	OptionMin:           "Number must be greater than %s%s.",
	OptionMax:           "Number must be less than %s%s.",
	OptionRange:         "Number must be in range %s.",
	OptionDigits:        "Number value is out of bounds, expected: <%s max digits>.<%s max digits>.",
	OptionPattern:       "String must match the regular expression '%s'.",
	OptionDistinct:      "Must not contain duplicates.",
	OptionValidEnum:     "Value must be one of the values declared in the enum `%s`.",
	OptionSetOnce:       "Attempted to change the value of the field `%s` which has `(set_once) = true` and already has a non-default value.",
	OptionGoes:          "The field `%s` can only be set when the field `%s` is defined.",
	OptionRequiredField: "None of the fields match the `required_field` definition: %s",
}

// IsDefaultFormat reports whether format is the built-in English format of
// the option. Localization only replaces such formats.
func IsDefaultFormat(option, format string) bool {
	f, ok := DefaultMessageFormats[option]
	return ok && f == format
}
