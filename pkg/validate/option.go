package validate

// Names of the built-in constraint kinds. They are reported in
// ConstraintViolation.Constraint and key the message format catalogs.
const (
	OptionRequired      = "required"
	OptionMin           = "min"
	OptionMax           = "max"
	OptionRange         = "range"
	OptionDigits        = "digits"
	OptionPattern       = "pattern"
	OptionDistinct      = "distinct"
	OptionValidEnum     = "valid_enum"
	OptionSetOnce       = "set_once"
	OptionGoes          = "goes"
	OptionRequiredField = "required_field"
)

// ValidatingOption is one kind of constraint. It reads its configuration
// from the field declaration and produces a Constraint for a field value.
//
// IsUnset must report true when the option is absent or configured to a
// no-op value, in which case Constraint is never called. Constraint returns
// an error only for invalid configuration.
type ValidatingOption interface {
	Name() string
	IsUnset(fv *FieldValue) bool
	Constraint(fv *FieldValue) (Constraint, error)
}

// Constraint evaluates an option against a field value and returns every
// violation it finds.
type Constraint interface {
	Check(fv *FieldValue) []ConstraintViolation
}

// ConstraintFunc adapts a function to the Constraint interface.
type ConstraintFunc func(fv *FieldValue) []ConstraintViolation

func (f ConstraintFunc) Check(fv *FieldValue) []ConstraintViolation {
	return f(fv)
}

// ElementConstraint checks each element of a field independently and
// reports violations at the element path.
func ElementConstraint(check func(value any) (ConstraintViolation, bool)) Constraint {
	return ConstraintFunc(func(fv *FieldValue) []ConstraintViolation {
		var out []ConstraintViolation
		for _, el := range fv.Elements() {
			v, violated := check(el.Value)
			if !violated {
				continue
			}
			v.FieldPath = el.Path
			v.FieldValue = el.Value
			out = append(out, v)
		}
		return out
	})
}

// builtin is implemented by the options shipped with the package. declared
// reports whether the schema mentions the option at all, which is what the
// applicability check needs; IsUnset additionally filters no-op settings.
type builtin interface {
	ValidatingOption
	declared(fv *FieldValue) bool
}

func msgFormat(custom string, formats MessageFormats, option string) string {
	if custom != "" {
		return custom
	}
	return formats.Format(option)
}
