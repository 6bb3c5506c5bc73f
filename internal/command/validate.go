package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/constraints/pkg/config"
	"github.com/dmitrymomot/constraints/pkg/logger"
	"github.com/dmitrymomot/constraints/pkg/schema"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate YAML or JSON documents against a schema",
		ArgsUsage: "[file ...]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "Schema definitions file (.yaml, .yml or .json)",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Message type of the documents, optional when the schema declares one message",
			},
			&cli.StringFlag{
				Name:  "previous",
				Usage: "Validate the documents as changes of the single document in this file",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Validate again whenever the schema or a document file changes",
			},
		}, checkFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := stateFrom(ctx)
			cfg, err := st.resolve(cmd)
			if err != nil {
				return err
			}
			args := cmd.Args().Slice()
			previous := cmd.String("previous")

			run := func(ctx context.Context) error {
				return st.validateDocuments(ctx, cmd, cfg, args, previous)
			}
			if !cmd.Bool("watch") {
				return run(ctx)
			}

			if len(args) == 0 || slices.Contains(args, stdinName) {
				return ErrWatchStdin
			}
			files := append([]string{cfg.SchemaFile}, args...)
			if previous != "" {
				files = append(files, previous)
			}
			if err := run(ctx); err != nil {
				if _, isExit := IsExit(err); !isExit {
					return err
				}
			}
			return watch(ctx, st.log, files, run)
		},
	}
}

func (st *state) validateDocuments(ctx context.Context, cmd *cli.Command, cfg config.Config, args []string, previousFile string) error {
	msg, err := loadMessage(ctx, cfg.SchemaFile, cfg.MessageType)
	if err != nil {
		return err
	}
	st.log.DebugContext(ctx, "schema loaded",
		logger.Source(cfg.SchemaFile),
		logger.MessageType(msg.Name),
	)

	docs, err := readDocuments(cmd.Root().Reader, args...)
	if err != nil {
		return err
	}
	subjects := make([]subject, 0, len(docs))
	for _, doc := range docs {
		rec, err := schema.Decode(msg, doc.Data)
		s := subject{doc: doc, err: err}
		if err == nil {
			s.value = rec
		}
		subjects = append(subjects, s)
	}

	var previous schema.Value
	if previousFile != "" {
		doc, err := readPrevious(previousFile)
		if err != nil {
			return err
		}
		rec, err := schema.Decode(msg, doc.Data)
		if err != nil {
			return fmt.Errorf("%s: %w", doc, err)
		}
		previous = rec
	}

	return st.check(ctx, cmd, cfg, subjects, previous)
}

// loadMessage loads the schema file and picks the message type. The type
// may be omitted when the schema declares exactly one message.
func loadMessage(ctx context.Context, file, name string) (*schema.Message, error) {
	if file == "" {
		return nil, ErrMissingSchema
	}
	reg, err := schema.LoadFile(ctx, file)
	if err != nil {
		return nil, err
	}

	if name == "" {
		names := reg.MessageNames()
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: choose one of %v", ErrMissingType, names)
		}
		name = names[0]
	}
	msg, ok := reg.Message(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return msg, nil
}
