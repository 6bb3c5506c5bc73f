package schema

import (
	"fmt"
	"sort"
)

// Decode builds a Record of type msg from a generic document such as the
// output of yaml.Unmarshal or json.Unmarshal into map[string]any. Every value
// is normalized up front so type errors surface before validation. Keys that
// do not name a declared field are rejected.
func Decode(msg *Message, doc map[string]any) (*Record, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	rec := NewRecord(msg)

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		f, ok := msg.Field(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, msg.Name, key)
		}
		raw := doc[key]
		if raw == nil {
			continue
		}
		v, err := Normalize(f, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", msg.Name, err)
		}
		rec.Set(key, v)
	}
	return rec, nil
}
