package protoschema

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Converter turns protobuf descriptors into schema messages. Each message
// and enum is converted once and memoized by full name, so the schema
// pointers handed out for one descriptor are stable. A Converter is safe
// for concurrent use.
type Converter struct {
	rules *Rules

	mu       sync.Mutex
	messages map[protoreflect.FullName]*schema.Message
	enums    map[protoreflect.FullName]*schema.Enum
}

// NewConverter creates a Converter. rules may be nil.
func NewConverter(rules *Rules) *Converter {
	return &Converter{
		rules:    rules,
		messages: make(map[protoreflect.FullName]*schema.Message),
		enums:    make(map[protoreflect.FullName]*schema.Enum),
	}
}

// Message converts a message descriptor.
func (c *Converter) Message(md protoreflect.MessageDescriptor) (*schema.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message(md)
}

func (c *Converter) message(md protoreflect.MessageDescriptor) (*schema.Message, error) {
	if msg, ok := c.messages[md.FullName()]; ok {
		return msg, nil
	}

	msg := &schema.Message{Name: string(md.FullName())}
	// registered before the fields so recursive messages resolve to it
	c.messages[md.FullName()] = msg

	rules, _ := c.rules.message(msg.Name)
	msg.Options.RequiredField = rules.RequiredField

	fields := md.Fields()
	for i := range fields.Len() {
		f, err := c.field(fields.Get(i))
		if err != nil {
			delete(c.messages, md.FullName())
			return nil, fmt.Errorf("%s: %w", msg.Name, err)
		}
		f.Options = rules.Fields[f.Name]
		msg.Fields = append(msg.Fields, f)
	}

	for name := range rules.Fields {
		if fields.ByName(protoreflect.Name(name)) == nil {
			delete(c.messages, md.FullName())
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownRuleField, msg.Name, name)
		}
	}
	return msg, nil
}

func (c *Converter) field(fd protoreflect.FieldDescriptor) (*schema.Field, error) {
	f := &schema.Field{Name: string(fd.Name())}

	elem := fd
	switch {
	case fd.IsMap():
		f.Cardinality = schema.Mapped
		key, err := kindOf(fd.MapKey().Kind())
		if err != nil {
			return nil, fmt.Errorf("%s key: %w", fd.Name(), err)
		}
		f.MapKey = key
		elem = fd.MapValue()
	case fd.IsList():
		f.Cardinality = schema.Repeated
	}

	kind, err := kindOf(elem.Kind())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fd.Name(), err)
	}
	f.Kind = kind

	switch kind {
	case schema.KindEnum:
		f.Enum = c.enum(elem.Enum())
		f.TypeName = f.Enum.Name
	case schema.KindMessage:
		nested, err := c.message(elem.Message())
		if err != nil {
			return nil, err
		}
		f.Message = nested
		f.TypeName = nested.Name
	}
	return f, nil
}

func (c *Converter) enum(ed protoreflect.EnumDescriptor) *schema.Enum {
	if e, ok := c.enums[ed.FullName()]; ok {
		return e
	}
	e := &schema.Enum{Name: string(ed.FullName())}
	values := ed.Values()
	for i := range values.Len() {
		v := values.Get(i)
		e.Values = append(e.Values, schema.EnumValue{Name: string(v.Name()), Number: int32(v.Number())})
	}
	c.enums[ed.FullName()] = e
	return e
}

func kindOf(k protoreflect.Kind) (schema.Kind, error) {
	switch k {
	case protoreflect.DoubleKind:
		return schema.KindDouble, nil
	case protoreflect.FloatKind:
		return schema.KindFloat, nil
	case protoreflect.Int32Kind:
		return schema.KindInt32, nil
	case protoreflect.Int64Kind:
		return schema.KindInt64, nil
	case protoreflect.Uint32Kind:
		return schema.KindUint32, nil
	case protoreflect.Uint64Kind:
		return schema.KindUint64, nil
	case protoreflect.Sint32Kind:
		return schema.KindSint32, nil
	case protoreflect.Sint64Kind:
		return schema.KindSint64, nil
	case protoreflect.Fixed32Kind:
		return schema.KindFixed32, nil
	case protoreflect.Fixed64Kind:
		return schema.KindFixed64, nil
	case protoreflect.Sfixed32Kind:
		return schema.KindSfixed32, nil
	case protoreflect.Sfixed64Kind:
		return schema.KindSfixed64, nil
	case protoreflect.BoolKind:
		return schema.KindBool, nil
	case protoreflect.StringKind:
		return schema.KindString, nil
	case protoreflect.BytesKind:
		return schema.KindBytes, nil
	case protoreflect.EnumKind:
		return schema.KindEnum, nil
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return schema.KindMessage, nil
	}
	return schema.KindInvalid, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
}

// Value wraps a protobuf message as a schema.Value.
func (c *Converter) Value(m proto.Message) (schema.Value, error) {
	if m == nil {
		return nil, ErrNilMessage
	}
	pm := m.ProtoReflect()
	if !pm.IsValid() {
		return nil, ErrNilMessage
	}
	typ, err := c.Message(pm.Descriptor())
	if err != nil {
		return nil, err
	}
	return &value{msg: pm, typ: typ}, nil
}

// Registry collects every message and enum converted so far.
func (c *Converter) Registry() (*schema.Registry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]*schema.Message, 0, len(c.messages))
	for _, m := range c.messages {
		messages = append(messages, m)
	}
	enums := make([]*schema.Enum, 0, len(c.enums))
	for _, e := range c.enums {
		enums = append(enums, e)
	}
	return schema.NewRegistry(enums, messages)
}
