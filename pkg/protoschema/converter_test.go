package protoschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/dmitrymomot/constraints/pkg/protoschema"
	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

const shopRules = `
messages:
  shop.Order:
    required_field: "id"
    fields:
      id:
        required: true
        pattern: {regex: "ord-[0-9]+"}
      items: {distinct: true}
      status: {valid_enum: true}
      labels: {min: {value: "1"}}
  shop.Item:
    fields:
      qty: {min: {value: "1"}, max: {value: "99"}}
`

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, label descriptorpb.FieldDescriptorProto_Label, typeName string) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  label.Enum(),
	}
	if typeName != "" {
		fd.TypeName = proto.String(typeName)
	}
	return fd
}

func shopFile(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()

	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("shop.proto"),
		Package: proto.String("shop"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Status"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("STATUS_UNKNOWN"), Number: proto.Int32(0)},
				{Name: proto.String("ACTIVE"), Number: proto.Int32(1)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Item"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("sku", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					field("qty", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, optional, ""),
				},
			},
			{
				Name: proto.String("Order"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
					field("items", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".shop.Item"),
					field("status", 3, descriptorpb.FieldDescriptorProto_TYPE_ENUM, optional, ".shop.Status"),
					field("labels", 4, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, repeated, ".shop.Order.LabelsEntry"),
					field("gift", 5, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, optional, ".shop.Item"),
				},
				NestedType: []*descriptorpb.DescriptorProto{{
					Name: proto.String("LabelsEntry"),
					Field: []*descriptorpb.FieldDescriptorProto{
						field("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional, ""),
						field("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64, optional, ""),
					},
					Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
				}},
			},
		},
	}

	fd, err := protodesc.NewFile(fdp, nil)
	require.NoError(t, err)
	return fd
}

type shop struct {
	order protoreflect.MessageDescriptor
	item  protoreflect.MessageDescriptor
	conv  *protoschema.Converter
}

func newShop(t *testing.T) shop {
	t.Helper()
	fd := shopFile(t)
	rules, err := protoschema.ParseRules([]byte(shopRules))
	require.NoError(t, err)
	return shop{
		order: fd.Messages().ByName("Order"),
		item:  fd.Messages().ByName("Item"),
		conv:  protoschema.NewConverter(rules),
	}
}

func (s shop) newItem(sku string, qty int32) *dynamicpb.Message {
	m := dynamicpb.NewMessage(s.item)
	fields := s.item.Fields()
	m.Set(fields.ByName("sku"), protoreflect.ValueOfString(sku))
	m.Set(fields.ByName("qty"), protoreflect.ValueOfInt32(qty))
	return m
}

func (s shop) newOrder(id string, items ...*dynamicpb.Message) *dynamicpb.Message {
	m := dynamicpb.NewMessage(s.order)
	fields := s.order.Fields()
	m.Set(fields.ByName("id"), protoreflect.ValueOfString(id))
	m.Set(fields.ByName("status"), protoreflect.ValueOfEnum(1))
	list := m.Mutable(fields.ByName("items")).List()
	for _, it := range items {
		list.Append(protoreflect.ValueOfMessage(it))
	}
	labels := m.Mutable(fields.ByName("labels")).Map()
	labels.Set(protoreflect.ValueOfString("priority").MapKey(), protoreflect.ValueOfInt64(2))
	return m
}

func TestConverter_Message(t *testing.T) {
	t.Parallel()
	s := newShop(t)

	order, err := s.conv.Message(s.order)
	require.NoError(t, err)
	assert.Equal(t, "shop.Order", order.Name)
	assert.Equal(t, "id", order.Options.RequiredField)
	require.Len(t, order.Fields, 5)

	id, _ := order.Field("id")
	assert.Equal(t, schema.KindString, id.Kind)
	assert.True(t, id.Options.Required)

	items, _ := order.Field("items")
	assert.True(t, items.IsRepeated())
	assert.Equal(t, schema.KindMessage, items.Kind)
	assert.Equal(t, "shop.Item", items.Message.Name)

	status, _ := order.Field("status")
	require.NotNil(t, status.Enum)
	assert.Equal(t, "shop.Status", status.Enum.Name)
	assert.True(t, status.Enum.Contains(1))

	labels, _ := order.Field("labels")
	assert.True(t, labels.IsMap())
	assert.Equal(t, schema.KindString, labels.MapKey)
	assert.Equal(t, schema.KindInt64, labels.Kind)

	gift, _ := order.Field("gift")
	assert.Same(t, items.Message, gift.Message, "messages are memoized")

	again, err := s.conv.Message(s.order)
	require.NoError(t, err)
	assert.Same(t, order, again)

	reg, err := s.conv.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{"shop.Item", "shop.Order"}, reg.MessageNames())
}

func TestConverter_UnknownRuleField(t *testing.T) {
	t.Parallel()
	fd := shopFile(t)

	rules, err := protoschema.ParseRules([]byte(`
messages:
  shop.Item:
    fields:
      weight: {required: true}
`))
	require.NoError(t, err)

	_, err = protoschema.NewConverter(rules).Message(fd.Messages().ByName("Item"))
	assert.ErrorIs(t, err, protoschema.ErrUnknownRuleField)
}

func TestValidateProtoMessages(t *testing.T) {
	t.Parallel()
	s := newShop(t)

	t.Run("valid order", func(t *testing.T) {
		value, err := s.conv.Value(s.newOrder("ord-1", s.newItem("a", 1), s.newItem("b", 2)))
		require.NoError(t, err)

		violations, err := validate.Validate(value)
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("violations in nested and repeated fields", func(t *testing.T) {
		order := s.newOrder("bad", s.newItem("a", 0), s.newItem("a", 0))
		order.Set(s.order.Fields().ByName("status"), protoreflect.ValueOfEnum(9))
		order.Mutable(s.order.Fields().ByName("labels")).Map().
			Set(protoreflect.ValueOfString("zero").MapKey(), protoreflect.ValueOfInt64(0))

		value, err := s.conv.Value(order)
		require.NoError(t, err)
		violations, err := validate.Validate(value)
		require.NoError(t, err)

		var got []string
		for _, v := range violations {
			got = append(got, v.FieldPath.String()+":"+v.Constraint)
		}
		assert.Equal(t, []string{
			"id:pattern",
			"items:distinct",
			"items.qty:min",
			"items.qty:min",
			"status:valid_enum",
			"labels:min",
		}, got)
	})

	t.Run("proto3 scalars without presence read as defaults", func(t *testing.T) {
		value, err := s.conv.Value(dynamicpb.NewMessage(s.order))
		require.NoError(t, err)

		violations, err := validate.Validate(value)
		require.NoError(t, err)
		assert.True(t, violations.Has("id"))
		assert.Len(t, violations.ByConstraint(validate.OptionRequiredField), 1)

		strict, err := validate.ValidateStrict(value)
		require.NoError(t, err)
		assert.False(t, strict.Has("id"), "scalars without presence always count as set")
		assert.True(t, strict.Has("gift.qty"), "absent message is walked in strict mode")
	})

	t.Run("nil message", func(t *testing.T) {
		_, err := s.conv.Value(nil)
		assert.ErrorIs(t, err, protoschema.ErrNilMessage)
	})
}
