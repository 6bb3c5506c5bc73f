package schema

import "errors"

var (
	// ErrTypeMismatch is returned when a value cannot represent the declared field type.
	ErrTypeMismatch = errors.New("value does not match declared field type")

	// ErrUnknownField is returned when a document or definition references an undeclared field.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownType is returned when a field references an undeclared enum or message.
	ErrUnknownType = errors.New("unknown type")

	// ErrDuplicateType is returned when two definitions share a name.
	ErrDuplicateType = errors.New("duplicate type definition")

	// ErrDuplicateField is returned when a message declares the same field twice.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrInvalidDefinition is returned for malformed schema definitions.
	ErrInvalidDefinition = errors.New("invalid schema definition")

	// ErrNilMessage is returned when a nil message type is supplied.
	ErrNilMessage = errors.New("nil message type")

	// Loading operations
	ErrLoadingCancelled = errors.New("schema loading cancelled")
	ErrFailedToParse    = errors.New("failed to parse schema definitions")
	ErrFailedToReadFile = errors.New("failed to read schema file")
)
