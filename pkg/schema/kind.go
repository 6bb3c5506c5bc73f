package schema

import "strings"

// Kind is the declared scalar type of a field. It mirrors the protobuf
// scalar type set so descriptors map onto it one to one.
type Kind int

const (
	KindInvalid Kind = iota
	KindDouble
	KindFloat
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindBool
	KindString
	KindBytes
	KindEnum
	KindMessage
)

var kindNames = map[Kind]string{
	KindDouble:   "double",
	KindFloat:    "float",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindSint32:   "sint32",
	KindSint64:   "sint64",
	KindFixed32:  "fixed32",
	KindFixed64:  "fixed64",
	KindSfixed32: "sfixed32",
	KindSfixed64: "sfixed64",
	KindBool:     "bool",
	KindString:   "string",
	KindBytes:    "bytes",
	KindEnum:     "enum",
	KindMessage:  "message",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ParseScalarKind resolves a scalar type name such as "int64" or "string".
// Enum and message kinds are never returned: those are referenced by type name.
func ParseScalarKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if k == KindEnum || k == KindMessage {
			continue
		}
		if n == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// ValueKind is the closed set of value shapes constraint evaluation
// dispatches on.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueNumeric
	ValueText
	ValueBinary
	ValueBoolean
	ValueEnum
	ValueMessage
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumeric:
		return "numeric"
	case ValueText:
		return "text"
	case ValueBinary:
		return "binary"
	case ValueBoolean:
		return "boolean"
	case ValueEnum:
		return "enum"
	case ValueMessage:
		return "message"
	default:
		return "invalid"
	}
}

// ValueKind collapses the declared kind into its value shape.
func (k Kind) ValueKind() ValueKind {
	switch k {
	case KindDouble, KindFloat,
		KindInt32, KindInt64, KindUint32, KindUint64,
		KindSint32, KindSint64, KindFixed32, KindFixed64,
		KindSfixed32, KindSfixed64:
		return ValueNumeric
	case KindString:
		return ValueText
	case KindBytes:
		return ValueBinary
	case KindBool:
		return ValueBoolean
	case KindEnum:
		return ValueEnum
	case KindMessage:
		return ValueMessage
	default:
		return ValueInvalid
	}
}

// IsSigned reports whether the kind stores signed integers.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt32, KindInt64, KindSint32, KindSint64, KindSfixed32, KindSfixed64:
		return true
	}
	return false
}

// IsUnsigned reports whether the kind stores unsigned integers.
func (k Kind) IsUnsigned() bool {
	switch k {
	case KindUint32, KindUint64, KindFixed32, KindFixed64:
		return true
	}
	return false
}

// IsFloat reports whether the kind stores floating point numbers.
func (k Kind) IsFloat() bool {
	return k == KindFloat || k == KindDouble
}

// Is32Bit reports whether the kind is limited to 32 bits.
func (k Kind) Is32Bit() bool {
	switch k {
	case KindInt32, KindUint32, KindSint32, KindFixed32, KindSfixed32, KindFloat:
		return true
	}
	return false
}

// Cardinality describes how many values a field holds.
type Cardinality int

const (
	Singular Cardinality = iota
	Repeated
	Mapped
)

func (c Cardinality) String() string {
	switch c {
	case Repeated:
		return "repeated"
	case Mapped:
		return "map"
	default:
		return "singular"
	}
}
