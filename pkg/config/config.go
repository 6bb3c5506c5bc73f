package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/constraints/pkg/logger"
)

// Output formats for reported violations.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the runtime settings of the constraints tool.
// Command line flags take precedence over these values.
type Config struct {
	SchemaFile   string   `env:"CONSTRAINTS_SCHEMA_FILE"`
	MessageType  string   `env:"CONSTRAINTS_MESSAGE_TYPE"`
	RulesFile    string   `env:"CONSTRAINTS_RULES_FILE"`
	CatalogFiles []string `env:"CONSTRAINTS_CATALOG_FILES" envSeparator:","`
	Locale       string   `env:"CONSTRAINTS_LOCALE" envDefault:"en"`
	Strict       bool     `env:"CONSTRAINTS_STRICT" envDefault:"false"`
	Concurrency  int      `env:"CONSTRAINTS_CONCURRENCY" envDefault:"0"`
	Output       string   `env:"CONSTRAINTS_OUTPUT" envDefault:"text"`
	LogLevel     string   `env:"CONSTRAINTS_LOG_LEVEL" envDefault:"warn"`
	LogFormat    string   `env:"CONSTRAINTS_LOG_FORMAT" envDefault:"text"`
	MetricsFile  string   `env:"CONSTRAINTS_METRICS_FILE"`
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	switch strings.ToLower(c.Output) {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid output %q: must be %q or %q", c.Output, OutputText, OutputJSON))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LoggerOptions translates the logging settings into logger options.
func (c Config) LoggerOptions() ([]logger.Option, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	format, err := logger.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}, nil
}
