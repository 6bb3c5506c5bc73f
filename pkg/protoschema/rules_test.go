package protoschema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/protoschema"
)

func TestLoadRules(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopRules), 0o600))

	rules, err := protoschema.LoadRules(path)
	require.NoError(t, err)
	require.Contains(t, rules.Messages, "shop.Order")
	order := rules.Messages["shop.Order"]
	assert.Equal(t, "id", order.RequiredField)
	assert.True(t, order.Fields["id"].Required)
	assert.Equal(t, "ord-[0-9]+", order.Fields["id"].Pattern.Regex)
	assert.Equal(t, "99", rules.Messages["shop.Item"].Fields["qty"].Max.Value)

	_, err = protoschema.LoadRules(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, protoschema.ErrFailedToReadFile)

	_, err = protoschema.ParseRules([]byte("messages: [1, 2"))
	assert.ErrorIs(t, err, protoschema.ErrFailedToParse)
}
