package validate

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// threshold is a numeric bound parsed with the precision of the field.
// Float fields compare as float64, integer fields exactly as rationals.
type threshold struct {
	text  string
	float bool
	f     float64
	r     *big.Rat
}

func parseThreshold(kind schema.Kind, text string) (threshold, error) {
	t := threshold{text: strings.TrimSpace(text)}
	if t.text == "" {
		return t, fmt.Errorf("%w: empty value", ErrInvalidThreshold)
	}
	if kind.IsFloat() {
		bits := 64
		if kind == schema.KindFloat {
			bits = 32
		}
		f, err := strconv.ParseFloat(t.text, bits)
		if err != nil || math.IsNaN(f) {
			return t, fmt.Errorf("%w: %q is not a %s", ErrInvalidThreshold, text, kind)
		}
		t.float, t.f = true, f
		return t, nil
	}
	r, ok := new(big.Rat).SetString(t.text)
	if !ok {
		return t, fmt.Errorf("%w: %q is not a number", ErrInvalidThreshold, text)
	}
	t.r = r
	return t, nil
}

// compare returns the sign of v - t.
func (t threshold) compare(v any) int {
	switch n := v.(type) {
	case float64:
		if t.float {
			return cmp.Compare(n, t.f)
		}
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return cmp.Compare(n, 0)
		}
		return new(big.Rat).SetFloat64(n).Cmp(t.r)
	case int64:
		if t.float {
			return cmp.Compare(float64(n), t.f)
		}
		return new(big.Rat).SetInt64(n).Cmp(t.r)
	case uint64:
		if t.float {
			return cmp.Compare(float64(n), t.f)
		}
		return new(big.Rat).SetUint64(n).Cmp(t.r)
	}
	return 0
}

func (t threshold) cmp(other threshold) int {
	if t.float {
		return cmp.Compare(t.f, other.f)
	}
	return t.r.Cmp(other.r)
}

// bound is one side of an interval.
type bound struct {
	threshold
	exclusive bool
}

// isNaN reports whether v is a float NaN. NaN is ordered against no number,
// so it violates every bound.
func isNaN(v any) bool {
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

// belowMin reports whether v violates a lower bound.
func (b bound) belowMin(v any) bool {
	if isNaN(v) {
		return true
	}
	c := b.compare(v)
	return c < 0 || (b.exclusive && c == 0)
}

// aboveMax reports whether v violates an upper bound.
func (b bound) aboveMax(v any) bool {
	if isNaN(v) {
		return true
	}
	c := b.compare(v)
	return c > 0 || (b.exclusive && c == 0)
}

func contradicts(lo, hi bound) bool {
	c := lo.cmp(hi.threshold)
	return c > 0 || (c == 0 && (lo.exclusive || hi.exclusive))
}

func parseBound(kind schema.Kind, opt *schema.BoundOption) (bound, error) {
	t, err := parseThreshold(kind, opt.Value)
	if err != nil {
		return bound{}, err
	}
	return bound{threshold: t, exclusive: opt.Exclusive}, nil
}

// checkBounds rejects a min/max pair that no value can satisfy.
func checkBounds(fv *FieldValue) error {
	opts := fv.Options()
	if opts.Min == nil || opts.Max == nil {
		return nil
	}
	lo, err := parseBound(fv.Kind(), opts.Min)
	if err != nil {
		return err
	}
	hi, err := parseBound(fv.Kind(), opts.Max)
	if err != nil {
		return err
	}
	if contradicts(lo, hi) {
		return fmt.Errorf("%w: min %s, max %s", ErrContradictoryBounds, lo.text, hi.text)
	}
	return nil
}

func inclusiveQualifier(exclusive bool) string {
	if exclusive {
		return ""
	}
	return "or equal to "
}

// Min reports numbers below the declared lower bound.
type Min struct {
	formats MessageFormats
}

func (Min) Name() string { return OptionMin }

func (Min) ConfigurationOf(fv *FieldValue) (schema.BoundOption, bool) {
	if opt := fv.Options().Min; opt != nil {
		return *opt, true
	}
	return schema.BoundOption{}, false
}

func (o Min) declared(fv *FieldValue) bool { return fv.Options().Min != nil }

func (o Min) IsUnset(fv *FieldValue) bool { return !o.declared(fv) }

func (o Min) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	b, err := parseBound(fv.Kind(), &cfg)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(fv); err != nil {
		return nil, err
	}
	format := msgFormat(cfg.MsgFormat, o.formats, OptionMin)
	params := []string{inclusiveQualifier(cfg.Exclusive), b.text}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		return ConstraintViolation{Constraint: OptionMin, MsgFormat: format, Params: params}, b.belowMin(v)
	}), nil
}

// Max reports numbers above the declared upper bound.
type Max struct {
	formats MessageFormats
}

func (Max) Name() string { return OptionMax }

func (Max) ConfigurationOf(fv *FieldValue) (schema.BoundOption, bool) {
	if opt := fv.Options().Max; opt != nil {
		return *opt, true
	}
	return schema.BoundOption{}, false
}

func (o Max) declared(fv *FieldValue) bool { return fv.Options().Max != nil }

func (o Max) IsUnset(fv *FieldValue) bool { return !o.declared(fv) }

func (o Max) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	b, err := parseBound(fv.Kind(), &cfg)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(fv); err != nil {
		return nil, err
	}
	format := msgFormat(cfg.MsgFormat, o.formats, OptionMax)
	params := []string{inclusiveQualifier(cfg.Exclusive), b.text}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		return ConstraintViolation{Constraint: OptionMax, MsgFormat: format, Params: params}, b.aboveMax(v)
	}), nil
}

var rangeNotation = regexp.MustCompile(`^\s*([\[(])\s*([^.\s]+(?:\.[^.\s]+)?)\s*\.\.\s*([^.\s\])]+(?:\.[^.\s\])]+)?)\s*([\])])\s*$`)

// RangeConfig is the parsed form of a range declaration such as "[0..100)".
type RangeConfig struct {
	Notation string
	Low      string
	High     string
	LowOpen  bool
	HighOpen bool
}

// ParseRange parses interval notation: square brackets include the bound,
// parentheses exclude it.
func ParseRange(notation string) (RangeConfig, error) {
	m := rangeNotation.FindStringSubmatch(notation)
	if m == nil {
		return RangeConfig{}, fmt.Errorf("%w: %q", ErrInvalidRange, notation)
	}
	return RangeConfig{
		Notation: strings.TrimSpace(notation),
		Low:      m[2],
		High:     m[3],
		LowOpen:  m[1] == "(",
		HighOpen: m[4] == ")",
	}, nil
}

// Range reports numbers outside an interval declared in range notation.
type Range struct {
	formats MessageFormats
}

func (Range) Name() string { return OptionRange }

func (Range) ConfigurationOf(fv *FieldValue) (string, bool) {
	r := strings.TrimSpace(fv.Options().Range)
	return r, r != ""
}

func (o Range) declared(fv *FieldValue) bool {
	_, ok := o.ConfigurationOf(fv)
	return ok
}

func (o Range) IsUnset(fv *FieldValue) bool { return !o.declared(fv) }

func (o Range) Constraint(fv *FieldValue) (Constraint, error) {
	notation, _ := ValueOf(fv, o)
	rc, err := ParseRange(notation)
	if err != nil {
		return nil, err
	}
	lo, err := parseThreshold(fv.Kind(), rc.Low)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	hi, err := parseThreshold(fv.Kind(), rc.High)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	low := bound{threshold: lo, exclusive: rc.LowOpen}
	high := bound{threshold: hi, exclusive: rc.HighOpen}
	if contradicts(low, high) {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidRange, notation)
	}

	format := o.formats.Format(OptionRange)
	params := []string{rc.Notation}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		violated := low.belowMin(v) || high.aboveMax(v)
		return ConstraintViolation{Constraint: OptionRange, MsgFormat: format, Params: params}, violated
	}), nil
}
