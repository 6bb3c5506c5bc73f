package protoschema

import (
	"errors"
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// LoadDescriptorSet reads a binary FileDescriptorSet, as written by
// protoc --descriptor_set_out with --include_imports.
func LoadDescriptorSet(path string) (*protoregistry.Files, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidDescriptorSet, err)
	}
	return ParseDescriptorSet(content)
}

// ParseDescriptorSet builds a file registry from a serialized FileDescriptorSet.
func ParseDescriptorSet(content []byte) (*protoregistry.Files, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(content, &set); err != nil {
		return nil, errors.Join(ErrInvalidDescriptorSet, err)
	}
	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, errors.Join(ErrInvalidDescriptorSet, err)
	}
	return files, nil
}

// FindMessage looks up a message descriptor by full name, e.g. "shop.Order".
func FindMessage(files *protoregistry.Files, name string) (protoreflect.MessageDescriptor, error) {
	d, err := files.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a message", ErrUnknownMessage, name)
	}
	return md, nil
}

// DecodeJSON parses protobuf JSON into a dynamic message of type md.
func DecodeJSON(md protoreflect.MessageDescriptor, content []byte) (proto.Message, error) {
	m := dynamicpb.NewMessage(md)
	if err := protojson.Unmarshal(content, m); err != nil {
		return nil, errors.Join(ErrFailedToDecode, err)
	}
	return m, nil
}
