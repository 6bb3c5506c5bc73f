package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/constraints/pkg/config"
	"github.com/dmitrymomot/constraints/pkg/logger"
	"github.com/dmitrymomot/constraints/pkg/messages"
	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

// subject is a document ready for validation, or the error that kept it
// from being decoded.
type subject struct {
	doc   document
	value schema.Value
	err   error
}

// check validates every subject, localizes and prints the violations.
// A non-nil previous value switches to change validation.
func (st *state) check(ctx context.Context, cmd *cli.Command, cfg config.Config, subjects []subject, previous schema.Value) error {
	catalog, err := st.catalog(ctx, cfg)
	if err != nil {
		return err
	}

	v := validate.New(
		validate.WithLogger(st.log),
		validate.WithConcurrency(cfg.Concurrency),
	)
	var opts []validate.CallOption
	if cfg.Strict {
		opts = append(opts, validate.Strict())
	}

	start := time.Now()
	found := make([]validate.Violations, len(subjects))
	errs := make([]error, len(subjects))

	if previous != nil {
		for i, s := range subjects {
			if s.err != nil {
				errs[i] = s.err
				continue
			}
			found[i], errs[i] = v.ValidateChange(previous, s.value, opts...)
		}
	} else {
		var (
			values  []schema.Value
			indexes []int
		)
		for i, s := range subjects {
			if s.err != nil {
				errs[i] = s.err
				continue
			}
			values = append(values, s.value)
			indexes = append(indexes, i)
		}
		for _, res := range v.ValidateAll(ctx, values, opts...) {
			i := indexes[res.Index]
			found[i], errs[i] = res.Violations, res.Err
		}
	}

	reports := make([]documentReport, 0, len(subjects))
	invalid, total := 0, 0
	for i, s := range subjects {
		vs := catalog.LocalizeAll(cfg.Locale, found[i])
		r := newReport(s.doc, vs, errs[i])
		if !r.Valid {
			invalid++
		}
		total += len(vs)
		if errs[i] != nil {
			st.log.WarnContext(ctx, "document not validated",
				logger.Source(s.doc.String()),
				logger.Error(errs[i]),
			)
		}
		reports = append(reports, r)
	}

	elapsed := time.Since(start)
	if cfg.MetricsFile != "" {
		m := newRunMetrics(cmd.Name)
		m.observe(reports, elapsed)
		if err := m.write(cfg.MetricsFile); err != nil {
			return err
		}
	}

	st.log.InfoContext(ctx, "validation finished",
		slog.Int("documents", len(subjects)),
		slog.Int("invalid", invalid),
		logger.Violations(total),
		logger.Strict(cfg.Strict),
		logger.Locale(catalog.Match(cfg.Locale).String()),
		logger.Duration(elapsed),
	)

	if err := writeReports(cmd.Root().Writer, cfg.Output, reports); err != nil {
		return err
	}
	return exitFor(reports)
}

func (st *state) catalog(ctx context.Context, cfg config.Config) (*messages.Catalog, error) {
	opts := []messages.Option{messages.WithLogger(st.log)}
	for _, file := range cfg.CatalogFiles {
		opts = append(opts, messages.WithFile(file))
	}
	return messages.New(ctx, opts...)
}
