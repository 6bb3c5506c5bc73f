package validate

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// patternCache memoizes compiled expressions by their final source.
type patternCache struct {
	compiled sync.Map
}

func (c *patternCache) compile(expr string) (*regexp.Regexp, error) {
	if re, ok := c.compiled.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	actual, _ := c.compiled.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}

// PatternSource builds the expression actually compiled for a pattern
// option: modifiers become inline flags and, unless partial matching is
// requested, the expression is anchored to the whole input.
func PatternSource(opt schema.PatternOption) string {
	var flags strings.Builder
	if opt.CaseInsensitive {
		flags.WriteByte('i')
	}
	if opt.Multiline {
		flags.WriteByte('m')
	}
	if opt.DotAll {
		flags.WriteByte('s')
	}

	expr := opt.Regex
	if !opt.PartialMatch {
		expr = `\A(?:` + expr + `)\z`
	}
	if flags.Len() > 0 {
		expr = "(?" + flags.String() + ")" + expr
	}
	return expr
}

// Pattern reports non-empty strings that do not match a regular expression.
// Empty strings are left to Required.
type Pattern struct {
	formats MessageFormats
	cache   *patternCache
}

func (Pattern) Name() string { return OptionPattern }

func (Pattern) ConfigurationOf(fv *FieldValue) (schema.PatternOption, bool) {
	if opt := fv.Options().Pattern; opt != nil && opt.Regex != "" {
		return *opt, true
	}
	return schema.PatternOption{}, false
}

func (o Pattern) declared(fv *FieldValue) bool { return fv.Options().Pattern != nil }

func (o Pattern) IsUnset(fv *FieldValue) bool {
	_, ok := ValueOf(fv, o)
	return !ok
}

func (o Pattern) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	re, err := o.cache.compile(PatternSource(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	format := msgFormat(cfg.MsgFormat, o.formats, OptionPattern)
	params := []string{cfg.Regex}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		s, _ := v.(string)
		violated := s != "" && !re.MatchString(s)
		return ConstraintViolation{Constraint: OptionPattern, MsgFormat: format, Params: params}, violated
	}), nil
}
