package logger

import (
	"fmt"
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FieldPath records a dotted field path under the key "field_path".
// The root path is logged as "<message>".
func FieldPath(path fmt.Stringer) slog.Attr {
	s := path.String()
	if s == "" {
		s = "<message>"
	}
	return slog.String("field_path", s)
}

// MessageType records the schema message name under the key "message_type".
func MessageType(name string) slog.Attr {
	return slog.String("message_type", name)
}

// Constraint records the constraint kind under the key "constraint".
func Constraint(name string) slog.Attr {
	return slog.String("constraint", name)
}

// Violations records a violation count under the key "violations".
func Violations(n int) slog.Attr {
	return slog.Int("violations", n)
}

// Strict records whether strict presence semantics were applied.
func Strict(strict bool) slog.Attr {
	return slog.Bool("strict", strict)
}

// Source records an input document or schema file under the key "source".
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// Locale records a language tag under the key "locale".
func Locale(tag string) slog.Attr {
	return slog.String("locale", tag)
}

// Duration records elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
