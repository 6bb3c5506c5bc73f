package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/constraints/pkg/logger"
	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Validator walks message values and evaluates the constraints declared on
// their fields. A Validator is safe for concurrent use.
type Validator struct {
	logger      *slog.Logger
	formats     MessageFormats
	custom      []ValidatingOption
	builtins    builtins
	patterns    *patternCache
	concurrency int
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMessageFormats replaces the default message formats. Formats declared
// on individual fields still take precedence.
func WithMessageFormats(f MessageFormats) Option {
	return func(v *Validator) {
		if f != nil {
			v.formats = f
		}
	}
}

// WithOptions registers user-defined constraint kinds. They run for every
// field after the built-in options, in registration order.
func WithOptions(opts ...ValidatingOption) Option {
	return func(v *Validator) {
		for _, o := range opts {
			if o != nil {
				v.custom = append(v.custom, o)
			}
		}
	}
}

// WithConcurrency bounds the number of values ValidateAll checks at once.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:      logger.Discard(),
		formats:     FormatMap(DefaultMessageFormats),
		patterns:    &patternCache{},
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.builtins = newBuiltins(v.formats, v.patterns)
	return v
}

// CallOption configures a single validation call.
type CallOption func(*call)

type call struct {
	strict bool
}

// Strict switches to strict presence semantics: only structurally absent
// fields count as missing, and absent singular message fields are
// validated as default instances.
func Strict() CallOption {
	return func(c *call) { c.strict = true }
}

// walk is the per-call state of one validation.
type walk struct {
	ctx        context.Context
	strict     bool
	violations Violations
	// defaults holds the message types currently entered through a
	// synthesized default instance, breaking recursive schemas.
	defaults map[*schema.Message]bool
}

// Validate checks value and returns every violation found. The error is
// non-nil only when the schema is misconfigured or the value does not
// conform to its declared types; violations are never reported as errors.
func (v *Validator) Validate(value schema.Value, opts ...CallOption) (Violations, error) {
	return v.validate(context.Background(), nil, value, opts)
}

// ValidateChange validates current like Validate and additionally checks
// set_once fields against previous, recursing into singular message fields
// present in both values.
func (v *Validator) ValidateChange(previous, current schema.Value, opts ...CallOption) (Violations, error) {
	if previous == nil || previous.Type() == nil {
		return nil, ErrNilValue
	}
	if current != nil && current.Type() != previous.Type() {
		return nil, fmt.Errorf("%w: %s changed to %s", schema.ErrTypeMismatch, previous.Type().Name, current.Type().Name)
	}
	return v.validate(context.Background(), previous, current, opts)
}

func (v *Validator) validate(ctx context.Context, previous, value schema.Value, opts []CallOption) (Violations, error) {
	if value == nil || value.Type() == nil {
		return nil, ErrNilValue
	}
	c := call{}
	for _, opt := range opts {
		opt(&c)
	}

	w := &walk{ctx: ctx, strict: c.strict, defaults: make(map[*schema.Message]bool)}
	if err := v.validateMessage(w, value, previous, Root()); err != nil {
		v.logger.DebugContext(ctx, "validation aborted",
			logger.MessageType(value.Type().Name),
			logger.Error(err),
		)
		return nil, err
	}

	v.logger.DebugContext(ctx, "message validated",
		logger.MessageType(value.Type().Name),
		logger.Strict(c.strict),
		logger.Violations(len(w.violations)),
	)
	if len(w.violations) == 0 {
		return Violations{}, nil
	}
	return w.violations, nil
}

// validateMessage checks every field of value in declaration order, then the
// message-level options. path is the path of value itself.
func (v *Validator) validateMessage(w *walk, value, previous schema.Value, path FieldPath) error {
	for _, decl := range value.Type().Fields {
		fv, err := newFieldValue(value, decl, path, w.strict)
		if err != nil {
			return fmt.Errorf("%s: %w", path.Child(decl.Name), err)
		}
		if previous != nil {
			prev, err := newFieldValue(previous, decl, path, w.strict)
			if err != nil {
				return fmt.Errorf("previous %s: %w", path.Child(decl.Name), err)
			}
			fv.previous = prev
		}
		if err := v.validateField(w, fv); err != nil {
			return err
		}
	}

	found, err := v.checkRequiredField(value, path, w.strict)
	if err != nil {
		return err
	}
	v.report(w, found)
	return nil
}

// validateField evaluates the options applicable to fv and recurses into
// message elements.
func (v *Validator) validateField(w *walk, fv *FieldValue) error {
	opts, err := v.optionsFor(fv)
	if err != nil {
		return err
	}

	for _, o := range opts {
		if o.IsUnset(fv) {
			continue
		}
		c, err := o.Constraint(fv)
		if err != nil {
			return configError(fv.Path(), o.Name(), err)
		}
		v.report(w, c.Check(fv))
	}

	if fv.ValueKind() != schema.ValueMessage {
		return nil
	}
	return v.descend(w, fv)
}

func (v *Validator) descend(w *walk, fv *FieldValue) error {
	var previous schema.Value
	if prev, ok := fv.Previous(); ok && !fv.IsRepeated() && !fv.IsMap() {
		if values := prev.Values(); len(values) > 0 {
			previous, _ = values[0].(schema.Value)
		}
	}

	values := fv.Values()
	if len(values) == 0 && w.strict && !fv.IsRepeated() && !fv.IsMap() {
		typ := fv.Declaration().Message
		if typ == nil || w.defaults[typ] {
			return nil
		}
		w.defaults[typ] = true
		defer delete(w.defaults, typ)
		return v.validateMessage(w, schema.NewRecord(typ), nil, fv.Path())
	}

	for _, el := range values {
		nested, ok := el.(schema.Value)
		if !ok {
			return fmt.Errorf("%s: %w: expected message", fv.Path(), schema.ErrTypeMismatch)
		}
		if err := v.validateMessage(w, nested, previous, fv.Path()); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) report(w *walk, found []ConstraintViolation) {
	for _, cv := range found {
		v.logger.DebugContext(w.ctx, "constraint violated",
			logger.FieldPath(cv.FieldPath),
			logger.Constraint(cv.Constraint),
		)
	}
	w.violations = append(w.violations, found...)
}

var defaultValidator = New()

// Validate checks value with a default Validator.
func Validate(value schema.Value) (Violations, error) {
	return defaultValidator.Validate(value)
}

// ValidateStrict checks value with a default Validator in strict mode.
func ValidateStrict(value schema.Value) (Violations, error) {
	return defaultValidator.Validate(value, Strict())
}

// Check validates value and folds violations into the returned error, for
// callers that only need a pass/fail answer. Violations can be recovered
// with ExtractViolations.
func (v *Validator) Check(value schema.Value, opts ...CallOption) error {
	found, err := v.Validate(value, opts...)
	if err != nil {
		return err
	}
	return found.Err()
}

// IsInvalidValue reports whether err was caused by a value that does not
// conform to its schema types rather than by a violated constraint.
func IsInvalidValue(err error) bool {
	return errors.Is(err, schema.ErrTypeMismatch) || errors.Is(err, ErrNilValue)
}
