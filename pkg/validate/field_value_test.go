package validate_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

func TestFieldValue(t *testing.T) {
	t.Parallel()
	reg := fixtureRegistry(t)
	account := decode(t, reg, "Account", validAccount())
	ctx := validate.NewFieldPath("wrapper")

	t.Run("singular scalar", func(t *testing.T) {
		fv, err := validate.NewFieldValue(account, "balance", ctx, false)
		require.NoError(t, err)
		assert.Equal(t, schema.KindDouble, fv.Kind())
		assert.True(t, fv.IsPresent())
		assert.False(t, fv.IsDefault())
		assert.Equal(t, []any{120.5}, fv.Values())
		assert.Equal(t, []string{"wrapper", "balance"}, fv.Path().Names())
		for _, el := range fv.Elements() {
			assert.Equal(t, fv.Path(), el.Path)
		}
	})

	t.Run("absent scalar yields default element", func(t *testing.T) {
		fv, err := validate.NewFieldValue(account, "phone", ctx, false)
		require.NoError(t, err)
		assert.False(t, fv.IsPresent())
		assert.True(t, fv.IsDefault())
		assert.Equal(t, []any{""}, fv.Values())
	})

	t.Run("map entries are ordered by key", func(t *testing.T) {
		fv, err := validate.NewFieldValue(account, "limits", ctx, false)
		require.NoError(t, err)
		assert.True(t, fv.IsMap())
		assert.Equal(t, schema.Map{{Key: "daily", Value: int64(10)}, {Key: "monthly", Value: int64(100)}}, fv.Entries())
		assert.Equal(t, []any{int64(10), int64(100)}, fv.Values())
	})

	t.Run("repeated of defaults", func(t *testing.T) {
		doc := validAccount()
		doc["tags"] = []string{"", ""}
		rec := decode(t, reg, "Account", doc)

		fv, err := validate.NewFieldValue(rec, "tags", ctx, false)
		require.NoError(t, err)
		assert.True(t, fv.IsRepeated())
		assert.True(t, fv.IsDefault())

		strict, err := validate.NewFieldValue(rec, "tags", ctx, true)
		require.NoError(t, err)
		assert.False(t, strict.IsDefault())
	})

	t.Run("sibling and unknown field", func(t *testing.T) {
		fv, err := validate.NewFieldValue(account, "country", ctx, false)
		require.NoError(t, err)
		phone, err := fv.Sibling("phone")
		require.NoError(t, err)
		assert.Equal(t, []string{"wrapper", "phone"}, phone.Path().Names())

		_, err = fv.Sibling("nope")
		assert.ErrorIs(t, err, validate.ErrUnknownField)

		_, err = validate.NewFieldValue(account, "nope", ctx, false)
		assert.ErrorIs(t, err, schema.ErrUnknownField)
	})

	t.Run("typed configuration", func(t *testing.T) {
		fv, err := validate.NewFieldValue(account, "balance", ctx, false)
		require.NoError(t, err)

		maxCfg, ok := validate.ValueOf(fv, validate.Max{})
		require.True(t, ok)
		assert.Equal(t, "1000", maxCfg.Value)
		assert.True(t, maxCfg.Exclusive)

		_, ok = validate.ValueOf(fv, validate.Pattern{})
		assert.False(t, ok)
	})
}

// maxLength is a user-defined option configured through FieldOptions.Custom.
type maxLength struct{}

func (maxLength) Name() string { return "max_length" }

func (maxLength) ConfigurationOf(fv *validate.FieldValue) (int, bool) {
	n, ok := fv.Options().Custom["max_length"].(int)
	return n, ok
}

func (o maxLength) IsUnset(fv *validate.FieldValue) bool {
	_, ok := validate.ValueOf(fv, o)
	return !ok || fv.ValueKind() != schema.ValueText
}

func (o maxLength) Constraint(fv *validate.FieldValue) (validate.Constraint, error) {
	limit, _ := validate.ValueOf(fv, o)
	if limit < 1 {
		return nil, fmt.Errorf("max_length must be positive, got %d", limit)
	}
	return validate.ElementConstraint(func(v any) (validate.ConstraintViolation, bool) {
		s, _ := v.(string)
		return validate.ConstraintViolation{
			Constraint: "max_length",
			MsgFormat:  "Text must be at most %s characters long.",
			Params:     []string{fmt.Sprint(limit)},
		}, len(s) > limit
	}), nil
}

func TestCustomOption(t *testing.T) {
	t.Parallel()

	reg := loadRegistry(t, `
messages:
  - name: Note
    fields:
      - name: title
        type: string
        options:
          required: true
          custom: {max_length: 5}
      - name: broken
        type: string
        options:
          custom: {max_length: 0}
`)
	v := validate.New(validate.WithOptions(maxLength{}))

	t.Run("runs after built-ins", func(t *testing.T) {
		violations, err := v.Validate(decode(t, reg, "Note", map[string]any{"title": strings.Repeat("a", 6), "broken": ""}))
		require.Error(t, err)
		assert.Nil(t, violations)
		assert.True(t, validate.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "invalid max_length configuration on broken")
	})

	t.Run("violations", func(t *testing.T) {
		msg, _ := reg.Message("Note")
		fixed := &schema.Message{Name: msg.Name, Fields: msg.Fields[:1]}
		violations, err := v.Validate(schema.NewRecord(fixed).Set("title", "toolong"))
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Text must be at most 5 characters long.", violations[0].Message())
		assert.Equal(t, "toolong", violations[0].FieldValue)
	})
}
