package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/constraints/pkg/config"
	"github.com/dmitrymomot/constraints/pkg/logger"
)

// state is shared by all subcommands and built once in the root Before hook.
type state struct {
	cfg config.Config
	log *slog.Logger
}

type stateKey struct{}

func stateFrom(ctx context.Context) *state {
	if st, ok := ctx.Value(stateKey{}).(*state); ok {
		return st
	}
	return &state{log: logger.Discard()}
}

// New builds the root command. Documents named "-" are read from stdin,
// results are written to stdout, logs and errors to stderr. Exit statuses
// are returned from Run rather than terminating the process; see IsExit.
func New(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:           "constraints",
		Usage:          "Validate structured documents against schema-declared field constraints",
		Reader:         stdin,
		Writer:         stdout,
		ErrWriter:      stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Load settings from the given .env files before reading the environment",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set the log level. One of: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set the log format. One of: text, json",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := config.LoadEnv(cmd.StringSlice("env-file")...); err != nil {
				return ctx, err
			}

			var cfg config.Config
			if err := config.Load(&cfg); err != nil {
				return ctx, err
			}
			cfg.LogLevel = stringOr(cmd, "log-level", cfg.LogLevel)
			cfg.LogFormat = stringOr(cmd, "log-format", cfg.LogFormat)

			opts, err := cfg.LoggerOptions()
			if err != nil {
				return ctx, err
			}
			opts = append(opts,
				logger.WithOutput(stderr),
				logger.WithAttr(logger.Component("constraints")),
			)

			st := &state{cfg: cfg, log: logger.New(opts...)}
			ctx = logger.ContextWith(ctx, slog.String("run", uuid.NewString()))
			return context.WithValue(ctx, stateKey{}, st), nil
		},
		Commands: []*cli.Command{
			validateCommand(),
			protoCommand(),
			typesCommand(),
		},
	}
}

// resolve applies command line overrides to the loaded configuration and
// checks the result.
func (st *state) resolve(cmd *cli.Command) (config.Config, error) {
	cfg := st.cfg
	cfg.SchemaFile = stringOr(cmd, "schema", cfg.SchemaFile)
	cfg.MessageType = stringOr(cmd, "type", cfg.MessageType)
	cfg.RulesFile = stringOr(cmd, "rules", cfg.RulesFile)
	cfg.Locale = stringOr(cmd, "locale", cfg.Locale)
	cfg.Output = strings.ToLower(stringOr(cmd, "output", cfg.Output))
	cfg.MetricsFile = stringOr(cmd, "metrics-file", cfg.MetricsFile)
	if cmd.IsSet("catalog") {
		cfg.CatalogFiles = cmd.StringSlice("catalog")
	}
	if cmd.IsSet("strict") {
		cfg.Strict = cmd.Bool("strict")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = cmd.Int("concurrency")
	}
	if cfg.Output == "" {
		cfg.Output = config.OutputText
	}
	return cfg, cfg.Validate()
}

func stringOr(cmd *cli.Command, name, fallback string) string {
	if cmd.IsSet(name) {
		return cmd.String(name)
	}
	return fallback
}

// checkFlags are shared by the commands that validate documents.
func checkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Treat fields holding their default value as present",
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "Preferred language of violation messages, Accept-Language lists allowed",
		},
		&cli.StringSliceFlag{
			Name:  "catalog",
			Usage: "Additional message catalog files (.yaml, .yml or .json)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format. One of: text, json",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Number of documents validated at once, 0 means one per CPU",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics of the run to this file (textfile collector format)",
		},
	}
}

// exitFor turns a finished run into the process exit status.
func exitFor(reports []documentReport) error {
	code := 0
	for _, r := range reports {
		switch {
		case r.Error != "":
			code = ExitErrors
		case !r.Valid && code == 0:
			code = ExitViolations
		}
	}
	if code == 0 {
		return nil
	}
	return cli.Exit("", code)
}

// IsExit reports whether err carries an exit status and returns it.
func IsExit(err error) (int, bool) {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode(), true
	}
	return 0, false
}
