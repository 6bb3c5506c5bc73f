package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Digits limits how many digits a number carries before and after the
// decimal point. Digits are counted on the shortest decimal representation
// of the value, so 123.5 has three integer digits and one fraction digit.
type Digits struct {
	formats MessageFormats
}

func (Digits) Name() string { return OptionDigits }

func (Digits) ConfigurationOf(fv *FieldValue) (schema.DigitsOption, bool) {
	if opt := fv.Options().Digits; opt != nil {
		return *opt, true
	}
	return schema.DigitsOption{}, false
}

func (o Digits) declared(fv *FieldValue) bool { return fv.Options().Digits != nil }

// IsUnset treats a threshold of zero as "no limit". Negative thresholds are
// kept so that Constraint can reject them.
func (o Digits) IsUnset(fv *FieldValue) bool {
	cfg, ok := ValueOf(fv, o)
	if !ok {
		return true
	}
	if cfg.IntegerMax < 0 || cfg.FractionMax < 0 {
		return false
	}
	return cfg.IntegerMax < 1 || cfg.FractionMax < 1
}

func (o Digits) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	if cfg.IntegerMax < 0 || cfg.FractionMax < 0 {
		return nil, fmt.Errorf("%w: integer_max %d, fraction_max %d", ErrInvalidDigits, cfg.IntegerMax, cfg.FractionMax)
	}

	bits := 64
	if fv.Kind() == schema.KindFloat {
		bits = 32
	}
	format := msgFormat(cfg.MsgFormat, o.formats, OptionDigits)
	params := []string{strconv.Itoa(cfg.IntegerMax), strconv.Itoa(cfg.FractionMax)}
	return ElementConstraint(func(v any) (ConstraintViolation, bool) {
		intDigits, fracDigits, finite := countDigits(v, bits)
		violated := !finite || intDigits > cfg.IntegerMax || fracDigits > cfg.FractionMax
		return ConstraintViolation{Constraint: OptionDigits, MsgFormat: format, Params: params}, violated
	}), nil
}

// countDigits splits the decimal form of v into integer and fraction digits.
// Leading zeros of the integer part are not significant. NaN and the
// infinities have no decimal form and report finite as false.
func countDigits(v any, bits int) (intDigits, fracDigits int, finite bool) {
	var s string
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, 0, false
		}
		s = strconv.FormatFloat(n, 'f', -1, bits)
	case int64:
		s = strconv.FormatInt(n, 10)
	case uint64:
		s = strconv.FormatUint(n, 10)
	default:
		return 0, 0, true
	}
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	return len(intPart), len(fracPart), true
}
