// Package config loads settings from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// .env files are merged into the process environment, then parsed into
// structs via field tags. Each configuration type is parsed once and cached
// for the lifetime of the process.
//
// The Config type describes the constraints tool itself:
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// Recognised variables:
//
//	CONSTRAINTS_SCHEMA_FILE    schema definitions (.yaml, .yml or .json)
//	CONSTRAINTS_MESSAGE_TYPE   message type documents are decoded as
//	CONSTRAINTS_RULES_FILE     constraint rules for protobuf descriptors
//	CONSTRAINTS_CATALOG_FILES  comma separated message catalogs
//	CONSTRAINTS_LOCALE         preferred locale, Accept-Language syntax allowed
//	CONSTRAINTS_STRICT         treat default values as present
//	CONSTRAINTS_CONCURRENCY    batch workers, 0 means GOMAXPROCS
//	CONSTRAINTS_OUTPUT         text or json
//	CONSTRAINTS_LOG_LEVEL      debug, info, warn or error
//	CONSTRAINTS_LOG_FORMAT     text or json
//	CONSTRAINTS_METRICS_FILE   Prometheus textfile written after each run
//
// Use ResetCache or ForceReload in tests after changing the environment.
package config
