// Package validate evaluates the field constraints declared by a schema
// against message values and reports every violation with the path of the
// offending field.
//
// A Validator walks a schema.Value in field declaration order. For each
// field it wraps the raw value in a FieldValue, selects the options that
// apply to the field kind and asks each declared option for a Constraint.
// Constraints never stop the walk: all violations of the whole tree are
// collected, including those of nested messages.
//
//	v := validate.New(validate.WithLogger(log))
//	violations, err := v.Validate(order)
//	if err != nil {
//	    // the schema is misconfigured or the value has the wrong shape
//	}
//	for _, cv := range violations {
//	    fmt.Println(cv.FieldPath, cv.Message())
//	}
//
// # Options
//
// Built-in options cover presence (required), numeric bounds (min, max,
// range, digits), text (pattern), collections (distinct), enums
// (valid_enum) and cross-field rules (goes, set_once and the message-level
// required_field). Additional kinds implement ValidatingOption and are
// registered with WithOptions.
//
// # Presence
//
// By default a field holding its type's default value counts as missing.
// The Strict call option treats only structurally absent fields as missing.
//
// # Errors
//
// Invalid configuration such as contradictory bounds or a malformed regular
// expression is returned as a *ConfigurationError, never as a violation.
package validate
