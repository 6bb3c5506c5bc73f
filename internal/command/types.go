package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the message types of a schema and their fields",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "Schema definitions file (.yaml, .yml or .json)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := stateFrom(ctx)
			file := stringOr(cmd, "schema", st.cfg.SchemaFile)
			if file == "" {
				return ErrMissingSchema
			}
			reg, err := schema.LoadFile(ctx, file)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, name := range reg.MessageNames() {
				msg, _ := reg.Message(name)
				fmt.Fprintln(w, name)
				for _, f := range msg.Fields {
					fmt.Fprintf(w, "  %s %s\n", f.Name, describeField(f))
				}
			}
			return nil
		},
	}
}

func describeField(f *schema.Field) string {
	typ := f.Kind.String()
	if f.Kind == schema.KindEnum || f.Kind == schema.KindMessage {
		typ = f.TypeName
	}
	switch {
	case f.IsRepeated():
		return "repeated " + typ
	case f.IsMap():
		return fmt.Sprintf("map<%s, %s>", f.MapKey, typ)
	}
	return typ
}
