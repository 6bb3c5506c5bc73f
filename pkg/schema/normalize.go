package schema

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Normalize converts a raw field value into its canonical representation:
// an element for singular fields, []any for repeated fields and Map for map
// fields. Values that cannot represent the declared type yield ErrTypeMismatch.
func Normalize(f *Field, raw any) (any, error) {
	switch f.Cardinality {
	case Repeated:
		return normalizeList(f, raw)
	case Mapped:
		return normalizeMap(f, raw)
	default:
		return normalizeElement(f.Kind, f.Enum, f.Message, raw, f.Name)
	}
}

func normalizeList(f *Field, raw any) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	if list, ok := raw.([]any); ok {
		out := make([]any, 0, len(list))
		for _, item := range list {
			n, err := normalizeElement(f.Kind, f.Enum, f.Message, item, f.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, mismatch(f.Name, "list", raw)
	}
	out := make([]any, 0, rv.Len())
	for i := range rv.Len() {
		n, err := normalizeElement(f.Kind, f.Enum, f.Message, rv.Index(i).Interface(), f.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func normalizeMap(f *Field, raw any) (Map, error) {
	if raw == nil {
		return nil, nil
	}
	if m, ok := raw.(Map); ok {
		out := make(Map, 0, len(m))
		for _, e := range m {
			entry, err := normalizeEntry(f, e.Key, e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		sortEntries(out)
		return out, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, mismatch(f.Name, "map", raw)
	}
	out := make(Map, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entry, err := normalizeEntry(f, iter.Key().Interface(), iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	sortEntries(out)
	return out, nil
}

func normalizeEntry(f *Field, key, value any) (MapEntry, error) {
	k, err := normalizeKey(f, key)
	if err != nil {
		return MapEntry{}, err
	}
	v, err := normalizeElement(f.Kind, f.Enum, f.Message, value, f.Name)
	if err != nil {
		return MapEntry{}, err
	}
	return MapEntry{Key: k, Value: v}, nil
}

// normalizeKey also accepts string keys for numeric and bool key kinds,
// since decoded documents always carry map keys as strings.
func normalizeKey(f *Field, key any) (any, error) {
	if s, ok := key.(string); ok && f.MapKey != KindString {
		switch {
		case f.MapKey.IsSigned():
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, mismatch(f.Name, f.MapKey.String()+" key", key)
			}
			key = n
		case f.MapKey.IsUnsigned():
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, mismatch(f.Name, f.MapKey.String()+" key", key)
			}
			key = n
		case f.MapKey == KindBool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, mismatch(f.Name, "bool key", key)
			}
			key = b
		}
	}
	return normalizeElement(f.MapKey, nil, nil, key, f.Name)
}

func normalizeElement(k Kind, enum *Enum, msg *Message, raw any, field string) (any, error) {
	switch {
	case k.IsSigned():
		n, ok := toInt64(raw)
		if !ok {
			return nil, mismatch(field, k.String(), raw)
		}
		if k.Is32Bit() && (n < math.MinInt32 || n > math.MaxInt32) {
			return nil, mismatch(field, k.String(), raw)
		}
		return n, nil
	case k.IsUnsigned():
		n, ok := toUint64(raw)
		if !ok {
			return nil, mismatch(field, k.String(), raw)
		}
		if k.Is32Bit() && n > math.MaxUint32 {
			return nil, mismatch(field, k.String(), raw)
		}
		return n, nil
	case k.IsFloat():
		n, ok := toFloat64(raw)
		if !ok {
			return nil, mismatch(field, k.String(), raw)
		}
		if k == KindFloat {
			n = float64(float32(n))
		}
		return n, nil
	}

	switch k {
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case KindBytes:
		switch t := raw.(type) {
		case []byte:
			return t, nil
		case string:
			b, err := base64.StdEncoding.DecodeString(t)
			if err != nil {
				return nil, mismatch(field, "base64 bytes", raw)
			}
			return b, nil
		}
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case KindEnum:
		return normalizeEnum(enum, raw, field)
	case KindMessage:
		switch t := raw.(type) {
		case Value:
			if msg != nil && t.Type() != msg {
				return nil, mismatch(field, msg.Name, raw)
			}
			return t, nil
		case map[string]any:
			if msg == nil {
				return nil, mismatch(field, "message", raw)
			}
			return Decode(msg, t)
		}
	}
	return nil, mismatch(field, k.String(), raw)
}

func normalizeEnum(enum *Enum, raw any, field string) (any, error) {
	switch t := raw.(type) {
	case EnumNumber:
		return t, nil
	case string:
		if enum == nil {
			return nil, mismatch(field, "enum", raw)
		}
		n, ok := enum.ByName(t)
		if !ok {
			return nil, fmt.Errorf("%w: field %q: unknown enumerant %q of %s", ErrTypeMismatch, field, t, enum.Name)
		}
		return n, nil
	}
	n, ok := toInt64(raw)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return nil, mismatch(field, "enum", raw)
	}
	return EnumNumber(n), nil
}

func toInt64(raw any) (int64, bool) {
	switch t := raw.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), t <= math.MaxInt64
	case float32:
		return floatToInt64(float64(t))
	case float64:
		return floatToInt64(t)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toUint64(raw any) (uint64, bool) {
	switch t := raw.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	case float32, float64:
		f, _ := toFloat64(t)
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
	n, ok := toInt64(raw)
	if !ok || n < 0 {
		return 0, false
	}
	return uint64(n), true
}

func toFloat64(raw any) (float64, bool) {
	switch t := raw.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case uint64:
		return float64(t), true
	}
	n, ok := toInt64(raw)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

func mismatch(field, want string, got any) error {
	return fmt.Errorf("%w: field %q: expected %s, got %T", ErrTypeMismatch, field, want, got)
}
