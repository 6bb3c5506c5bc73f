package protoschema

import "errors"

var (
	ErrNilMessage           = errors.New("nil protobuf message")
	ErrUnsupportedKind      = errors.New("unsupported protobuf field kind")
	ErrUnknownRuleField     = errors.New("rule references a field the message does not declare")
	ErrFailedToParse        = errors.New("failed to parse constraint rules")
	ErrFailedToReadFile     = errors.New("failed to read constraint rules file")
	ErrInvalidDescriptorSet = errors.New("invalid descriptor set")
	ErrUnknownMessage       = errors.New("unknown protobuf message")
	ErrFailedToDecode       = errors.New("failed to decode protobuf JSON")
)
