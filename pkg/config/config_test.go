package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/constraints/pkg/config"
)

func TestConfig_Defaults(t *testing.T) {
	unsetEnv(t,
		"CONSTRAINTS_SCHEMA_FILE", "CONSTRAINTS_MESSAGE_TYPE", "CONSTRAINTS_RULES_FILE",
		"CONSTRAINTS_CATALOG_FILES", "CONSTRAINTS_LOCALE", "CONSTRAINTS_STRICT",
		"CONSTRAINTS_CONCURRENCY", "CONSTRAINTS_OUTPUT", "CONSTRAINTS_LOG_LEVEL",
		"CONSTRAINTS_LOG_FORMAT", "CONSTRAINTS_METRICS_FILE",
	)
	config.ResetCache()

	var cfg config.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.Strict)
	assert.Zero(t, cfg.Concurrency)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.CatalogFiles)
	assert.Empty(t, cfg.MetricsFile)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("CONSTRAINTS_SCHEMA_FILE", "schema.yaml")
	t.Setenv("CONSTRAINTS_MESSAGE_TYPE", "Account")
	t.Setenv("CONSTRAINTS_CATALOG_FILES", "a.yaml,b.json")
	t.Setenv("CONSTRAINTS_LOCALE", "de-CH, en;q=0.5")
	t.Setenv("CONSTRAINTS_STRICT", "true")
	t.Setenv("CONSTRAINTS_CONCURRENCY", "4")
	t.Setenv("CONSTRAINTS_OUTPUT", "json")

	var cfg config.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "schema.yaml", cfg.SchemaFile)
	assert.Equal(t, "Account", cfg.MessageType)
	assert.Equal(t, []string{"a.yaml", "b.json"}, cfg.CatalogFiles)
	assert.Equal(t, "de-CH, en;q=0.5", cfg.Locale)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, config.OutputJSON, cfg.Output)
}

func TestConfig_Validate(t *testing.T) {
	valid := config.Config{Output: "text", LogLevel: "info", LogFormat: "json"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
		{"concurrency", func(c *config.Config) { c.Concurrency = -1 }},
		{"output", func(c *config.Config) { c.Output = "yaml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := config.Config{Output: "yaml", LogLevel: "loud", LogFormat: "xml", Concurrency: -2}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loud")
		assert.Contains(t, err.Error(), "xml")
		assert.Contains(t, err.Error(), "yaml")
		assert.Contains(t, err.Error(), "-2")
	})
}

func TestConfig_LoggerOptions(t *testing.T) {
	opts, err := config.Config{LogLevel: "debug", LogFormat: "json"}.LoggerOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = config.Config{LogLevel: "nope"}.LoggerOptions()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
