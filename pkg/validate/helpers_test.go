package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

const fixtureSchema = `
enums:
  - name: Status
    values:
      - {name: STATUS_UNKNOWN, number: 0}
      - {name: ACTIVE, number: 1}
      - {name: SUSPENDED, number: 2}
messages:
  - name: Person
    fields:
      - name: name
        type: string
        options: {required: true}
  - name: Order
    fields:
      - name: items
        type: int64
        label: repeated
        options: {distinct: true}
  - name: Inner
    fields:
      - name: x
        type: int32
        options:
          min: {value: "10"}
  - name: Outer
    fields:
      - name: inner
        type: Inner
  - name: Deep
    fields:
      - name: outer
        type: Outer
  - name: Account
    options:
      required_field: "email | phone & country"
    fields:
      - name: id
        type: string
        options:
          required: true
          set_once: true
          pattern: {regex: "[a-z]{3}-[0-9]+"}
      - name: email
        type: string
        options:
          pattern: {regex: "[^@]+@[^@]+", msg_format: "Email must match %s."}
      - name: phone
        type: string
      - name: country
        type: string
        options:
          goes: {with: phone}
      - name: status
        type: Status
        options: {valid_enum: true}
      - name: balance
        type: double
        options:
          min: {value: "0"}
          max: {value: "1000", exclusive: true}
          digits: {integer_max: 3, fraction_max: 1}
      - name: age
        type: uint32
        options:
          range: "[18..120)"
      - name: tags
        type: string
        label: repeated
        options:
          distinct: true
          pattern: {regex: "[a-z]+"}
      - name: limits
        type: int64
        label: map
        key: string
        options:
          min: {value: "1"}
      - name: address
        type: Address
  - name: Address
    fields:
      - name: city
        type: string
        options:
          required: true
          if_missing: {msg_format: "City is mandatory."}
      - name: zip
        type: string
        options:
          set_once: true
`

func fixtureRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	return loadRegistry(t, fixtureSchema)
}

func loadRegistry(t *testing.T, content string) *schema.Registry {
	t.Helper()
	reg, err := schema.LoadYAML(context.Background(), []byte(content))
	require.NoError(t, err)
	return reg
}

func decode(t *testing.T, reg *schema.Registry, name string, doc map[string]any) *schema.Record {
	t.Helper()
	msg, ok := reg.Message(name)
	require.True(t, ok, "message %s", name)
	rec, err := schema.Decode(msg, doc)
	require.NoError(t, err)
	return rec
}

// validAccount satisfies every constraint of the Account fixture.
func validAccount() map[string]any {
	return map[string]any{
		"id":      "acc-42",
		"email":   "jane@example.com",
		"status":  "ACTIVE",
		"balance": 120.5,
		"age":     30,
		"tags":    []any{"gold", "early"},
		"limits":  map[string]any{"daily": 10, "monthly": 100},
		"address": map[string]any{"city": "Berlin", "zip": "10115"},
	}
}
