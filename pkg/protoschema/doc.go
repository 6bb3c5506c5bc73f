// Package protoschema validates protobuf messages with the constraint engine.
//
// A Converter maps message descriptors onto schema.Message declarations and
// wraps concrete messages as schema.Value. Constraint options are not read
// from .proto custom options; they come from a YAML rule set keyed by the
// full message name, so existing generated types can be validated as is.
//
//	rules, _ := protoschema.LoadRules("rules.yaml")
//	conv := protoschema.NewConverter(rules)
//	value, err := conv.Value(order)
//	violations, err := validate.Validate(value)
package protoschema
