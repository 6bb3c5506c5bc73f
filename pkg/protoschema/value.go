package protoschema

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// value adapts a protoreflect.Message to schema.Value.
//
// Fields with explicit presence report absence through Has. Proto3 scalars
// without presence cannot distinguish "unset" from "zero", so they are
// always reported present with their current value. Empty lists and maps
// are absent.
type value struct {
	msg protoreflect.Message
	typ *schema.Message
}

func (v *value) Type() *schema.Message {
	return v.typ
}

func (v *value) Get(name string) (any, bool) {
	fd := v.msg.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil, false
	}
	field, ok := v.typ.Field(name)
	if !ok {
		return nil, false
	}

	switch {
	case fd.IsList():
		list := v.msg.Get(fd).List()
		if list.Len() == 0 {
			return nil, false
		}
		out := make([]any, 0, list.Len())
		for i := range list.Len() {
			out = append(out, v.element(field.Message, list.Get(i)))
		}
		return out, true
	case fd.IsMap():
		m := v.msg.Get(fd).Map()
		if m.Len() == 0 {
			return nil, false
		}
		out := make(schema.Map, 0, m.Len())
		m.Range(func(k protoreflect.MapKey, val protoreflect.Value) bool {
			out = append(out, schema.MapEntry{Key: k.Interface(), Value: v.element(field.Message, val)})
			return true
		})
		return out, true
	}

	if fd.HasPresence() && !v.msg.Has(fd) {
		return nil, false
	}
	return v.element(field.Message, v.msg.Get(fd)), true
}

func (v *value) element(typ *schema.Message, pv protoreflect.Value) any {
	switch x := pv.Interface().(type) {
	case protoreflect.EnumNumber:
		return schema.EnumNumber(x)
	case protoreflect.Message:
		return &value{msg: x, typ: typ}
	default:
		return x
	}
}
