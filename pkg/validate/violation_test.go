package validate_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

func TestConstraintViolation_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		params []string
		want   string
	}{
		{"sequential", "Number must be greater than %s%s.", []string{"or equal to ", "16.5"}, "Number must be greater than or equal to 16.5."},
		{"indexed", "%2$s before %1$s", []string{"a", "b"}, "b before a"},
		{"escaped percent", "100%% of %s", []string{"fields"}, "100% of fields"},
		{"missing params", "value %s and %s", []string{"x"}, "value x and "},
		{"no placeholders", "A value must be set.", nil, "A value must be set."},
		{"trailing percent", "50%", nil, "50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.ConstraintViolation{MsgFormat: tt.format, Params: tt.params}
			assert.Equal(t, tt.want, v.Message())
		})
	}
}

func TestViolations(t *testing.T) {
	t.Parallel()

	var vs validate.Violations
	assert.True(t, vs.IsEmpty())
	assert.NoError(t, vs.Err())

	vs.Add(validate.ConstraintViolation{
		Constraint: validate.OptionRequired,
		MsgFormat:  "A value must be set.",
		FieldPath:  validate.NewFieldPath("customer", "email"),
	})
	vs.Add(validate.ConstraintViolation{
		Constraint: validate.OptionMin,
		MsgFormat:  "Number must be greater than %s%s.",
		Params:     []string{"", "0"},
		FieldPath:  validate.NewFieldPath("total"),
		FieldValue: int64(-3),
	})
	vs.Add(validate.ConstraintViolation{
		Constraint: validate.OptionRequiredField,
		MsgFormat:  "None of the fields match the `required_field` definition: %s",
		Params:     []string{"a | b"},
	})

	assert.False(t, vs.IsEmpty())
	assert.True(t, vs.Has("customer.email"))
	assert.False(t, vs.Has("customer"))
	assert.Equal(t, []string{"Number must be greater than 0."}, vs.Get("total"))
	assert.Equal(t, []string{"customer.email", "total", ""}, vs.Fields())
	assert.Len(t, vs.ByConstraint(validate.OptionMin), 1)

	assert.Equal(t, "validation failed: customer.email: A value must be set.; total: Number must be greater than 0.; "+
		"None of the fields match the `required_field` definition: a | b", vs.Error())

	t.Run("wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("saving order: %w", vs.Err())
		assert.True(t, validate.IsViolations(err))
		assert.Equal(t, vs, validate.ExtractViolations(err))

		assert.False(t, validate.IsViolations(errors.New("other")))
		assert.Nil(t, validate.ExtractViolations(nil))
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(vs[1])
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"constraint": "min",
			"msg_format": "Number must be greater than %s%s.",
			"params": ["", "0"],
			"field_path": ["total"],
			"field_value": -3
		}`, string(data))
	})
}

func TestConstraintViolation_MarshalJSON(t *testing.T) {
	t.Parallel()
	reg := fixtureRegistry(t)
	person := decode(t, reg, "Person", map[string]any{"name": "x"})

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"message renders its type name", person, `"Person"`},
		{"list of messages", []any{person, person}, `["Person", "Person"]`},
		{"NaN", math.NaN(), `"NaN"`},
		{"infinity", math.Inf(-1), `"-Inf"`},
		{"map entries", schema.Map{{Key: "a", Value: int64(1)}}, `[{"key": "a", "value": 1}]`},
		{"scalar", int64(7), `7`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(validate.ConstraintViolation{
				Constraint: validate.OptionDistinct,
				MsgFormat:  "Must not contain duplicates.",
				FieldPath:  validate.Root().Child("items"),
				FieldValue: tt.value,
			})
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"constraint": "distinct",
				"msg_format": "Must not contain duplicates.",
				"field_path": ["items"],
				"field_value": `+tt.want+`
			}`, string(data))
		})
	}
}
