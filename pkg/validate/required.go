package validate

// RequiredConfig is the effective configuration of the required option.
type RequiredConfig struct {
	MsgFormat string
}

// Required reports a field that carries no value. Outside strict mode a
// value equal to its type default counts as missing, as does a repeated
// field whose items are all defaults.
type Required struct {
	formats MessageFormats
}

func (Required) Name() string { return OptionRequired }

func (Required) ConfigurationOf(fv *FieldValue) (RequiredConfig, bool) {
	opts := fv.Options()
	if !opts.Required {
		return RequiredConfig{}, false
	}
	cfg := RequiredConfig{}
	if opts.IfMissing != nil {
		cfg.MsgFormat = opts.IfMissing.MsgFormat
	}
	return cfg, true
}

func (o Required) declared(fv *FieldValue) bool {
	_, ok := o.ConfigurationOf(fv)
	return ok
}

func (o Required) IsUnset(fv *FieldValue) bool {
	return !o.declared(fv)
}

func (o Required) Constraint(fv *FieldValue) (Constraint, error) {
	cfg, _ := ValueOf(fv, o)
	format := msgFormat(cfg.MsgFormat, o.formats, OptionRequired)
	return ConstraintFunc(func(fv *FieldValue) []ConstraintViolation {
		if !fv.IsDefault() {
			return nil
		}
		return []ConstraintViolation{{
			Constraint: OptionRequired,
			MsgFormat:  format,
			FieldPath:  fv.Path(),
		}}
	}), nil
}
