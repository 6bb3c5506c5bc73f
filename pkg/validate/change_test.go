package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

func TestValidateChange_SetOnce(t *testing.T) {
	t.Parallel()
	reg := fixtureRegistry(t)
	v := validate.New()

	t.Run("unchanged value passes", func(t *testing.T) {
		prev := decode(t, reg, "Account", validAccount())
		next := decode(t, reg, "Account", validAccount())

		violations, err := v.ValidateChange(prev, next)
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("first assignment is allowed", func(t *testing.T) {
		doc := validAccount()
		doc["id"] = ""
		prev := decode(t, reg, "Account", doc)
		next := decode(t, reg, "Account", validAccount())

		violations, err := v.ValidateChange(prev, next)
		require.NoError(t, err)
		assert.Empty(t, violations)

		violations, err = v.ValidateChange(prev, next, validate.Strict())
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("changing a set value is reported", func(t *testing.T) {
		prev := decode(t, reg, "Account", validAccount())
		doc := validAccount()
		doc["id"] = "acc-43"
		next := decode(t, reg, "Account", doc)

		violations, err := v.ValidateChange(prev, next)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, validate.OptionSetOnce, violations[0].Constraint)
		assert.Equal(t, "id", violations[0].FieldPath.String())
		assert.Equal(t, "acc-43", violations[0].FieldValue)
		assert.Equal(t, "Attempted to change the value of the field `id` which has `(set_once) = true` and already has a non-default value.",
			violations[0].Message())
	})

	t.Run("nested fields are compared pairwise", func(t *testing.T) {
		prev := decode(t, reg, "Account", validAccount())
		doc := validAccount()
		doc["address"] = map[string]any{"city": "Berlin", "zip": "10117"}
		next := decode(t, reg, "Account", doc)

		violations, err := v.ValidateChange(prev, next)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, []string{"address", "zip"}, violations[0].FieldPath.Names())
	})

	t.Run("clearing a set value is reported", func(t *testing.T) {
		prev := decode(t, reg, "Account", validAccount())
		doc := validAccount()
		delete(doc, "id")
		next := decode(t, reg, "Account", doc)

		violations, err := v.ValidateChange(prev, next)
		require.NoError(t, err)
		assert.Equal(t, []string{validate.OptionRequired, validate.OptionSetOnce},
			[]string{violations[0].Constraint, violations[1].Constraint})
	})

	t.Run("plain validation ignores set_once", func(t *testing.T) {
		doc := validAccount()
		doc["id"] = "acc-43"
		violations, err := v.Validate(decode(t, reg, "Account", doc))
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("type change is rejected", func(t *testing.T) {
		prev := decode(t, reg, "Person", map[string]any{"name": "a"})
		next := decode(t, reg, "Order", map[string]any{})

		_, err := v.ValidateChange(prev, next)
		assert.ErrorIs(t, err, schema.ErrTypeMismatch)
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()
	reg := fixtureRegistry(t)

	prev := decode(t, reg, "Account", validAccount())
	doc := validAccount()
	doc["email"] = "john@example.com"
	doc["tags"] = []any{"gold"}
	doc["phone"] = ""
	doc["address"] = map[string]any{"city": "Berlin", "zip": "10117"}
	next := decode(t, reg, "Account", doc)

	changed, err := validate.Diff(prev, next)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "tags", "address"}, changed)

	same, err := validate.Diff(prev, prev.Clone())
	require.NoError(t, err)
	assert.Empty(t, same)

	_, err = validate.Diff(nil, next)
	assert.ErrorIs(t, err, validate.ErrNilValue)
}
