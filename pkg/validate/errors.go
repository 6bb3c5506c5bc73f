package validate

import (
	"errors"
	"fmt"
)

// Configuration errors report schema authoring mistakes. They are returned
// from Validate instead of being collected as violations.
var (
	ErrContradictoryBounds = errors.New("min and max bounds contradict each other")
	ErrInvalidThreshold    = errors.New("invalid numeric threshold")
	ErrInvalidRange        = errors.New("invalid range notation")
	ErrInvalidDigits       = errors.New("invalid digits thresholds")
	ErrInvalidPattern      = errors.New("invalid regular expression")
	ErrOptionNotApplicable = errors.New("option is not applicable to the field")
	ErrUnknownField        = errors.New("option references an unknown field")
	ErrUnknownEnum         = errors.New("enum field has no resolved enum type")
	ErrUnsupportedKind     = errors.New("field kind is not supported for validation")
)

// ErrNilValue is returned when Validate is called without a value or with a
// value that has no message type.
var ErrNilValue = errors.New("nil value or value without message type")

// ConfigurationError binds a configuration failure to the option and the
// field it was declared on.
type ConfigurationError struct {
	Path   FieldPath
	Option string
	Err    error
}

func (e *ConfigurationError) Error() string {
	where := e.Path.String()
	if where == "" {
		where = "<message>"
	}
	return fmt.Sprintf("invalid %s configuration on %s: %v", e.Option, where, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func configError(path FieldPath, option string, err error) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return err
	}
	return &ConfigurationError{Path: path, Option: option, Err: err}
}
