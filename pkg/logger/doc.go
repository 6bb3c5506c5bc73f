// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by Option functions. The concrete
// handler is slog.NewTextHandler or slog.NewJSONHandler depending on the
// Format, wrapped by a handler that appends attributes stored with
// ContextWith and those produced by registered ContextExtractor callbacks.
//
// Helper constructors such as FieldPath, Constraint and Violations live in
// attr.go and keep attribute naming consistent between the validator and
// the command line tool.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("constraints"),
//	    logger.WithContextValue("document", docKey),
//	)
//	log.DebugContext(ctx, "constraint violated",
//	    logger.FieldPath(path),
//	    logger.Constraint("min"),
//	)
//
// ParseLevel and ParseFormat convert configuration strings, and Discard
// returns a logger that drops everything, which is what library code uses
// when no logger is supplied.
package logger
