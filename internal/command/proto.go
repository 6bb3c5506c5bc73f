package command

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/constraints/pkg/logger"
	"github.com/dmitrymomot/constraints/pkg/protoschema"
)

func protoCommand() *cli.Command {
	return &cli.Command{
		Name:      "proto",
		Aliases:   []string{"p"},
		Usage:     "Validate protobuf JSON documents using a descriptor set and constraint rules",
		ArgsUsage: "[file ...]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "descriptors",
				Aliases: []string{"d"},
				Usage:   "Binary FileDescriptorSet (protoc --descriptor_set_out --include_imports)",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Full name of the message, e.g. shop.Order",
			},
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Constraint rules file (.yaml)",
			},
		}, checkFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := stateFrom(ctx)
			cfg, err := st.resolve(cmd)
			if err != nil {
				return err
			}

			file := cmd.String("descriptors")
			if file == "" {
				return ErrMissingDescriptors
			}
			if cfg.MessageType == "" {
				return ErrMissingType
			}
			files, err := protoschema.LoadDescriptorSet(file)
			if err != nil {
				return err
			}
			md, err := protoschema.FindMessage(files, cfg.MessageType)
			if err != nil {
				return err
			}

			var rules *protoschema.Rules
			if cfg.RulesFile != "" {
				if rules, err = protoschema.LoadRules(cfg.RulesFile); err != nil {
					return err
				}
			}
			conv := protoschema.NewConverter(rules)
			st.log.DebugContext(ctx, "descriptor set loaded",
				logger.Source(file),
				logger.MessageType(cfg.MessageType),
			)

			docs, err := readDocuments(cmd.Root().Reader, cmd.Args().Slice()...)
			if err != nil {
				return err
			}
			subjects := make([]subject, 0, len(docs))
			for _, doc := range docs {
				s := subject{doc: doc}
				content, err := json.Marshal(doc.Data)
				if err != nil {
					s.err = errors.Join(ErrInvalidDocument, err)
					subjects = append(subjects, s)
					continue
				}
				m, err := protoschema.DecodeJSON(md, content)
				if err == nil {
					s.value, err = conv.Value(m)
				}
				s.err = err
				subjects = append(subjects, s)
			}

			return st.check(ctx, cmd, cfg, subjects, nil)
		},
	}
}
