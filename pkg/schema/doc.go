// Package schema describes the shape of validated data: message types with
// ordered field declarations, the constraint options attached to each field,
// and the values that conform to them.
//
// Types are grouped in an explicitly constructed Registry. NewRegistry
// resolves type references once and the result is read-only afterwards, so
// a single registry can back any number of concurrent validations.
// Registries are usually built from a YAML or JSON definitions file:
//
//	reg, err := schema.LoadFile(ctx, "schema.yaml")
//	person, _ := reg.Message("Person")
//	rec, err := schema.Decode(person, doc)
//
// Values are read through the Value interface. Record is the dynamic
// implementation used for decoded documents; other packages adapt their own
// representations, for example protobuf messages.
//
// Normalize converts loosely typed Go values into the canonical element
// representation the validator works with: int64, uint64, float64, string,
// []byte, bool, EnumNumber and Value, with []any for repeated fields and a
// key-ordered Map for map fields.
package schema
