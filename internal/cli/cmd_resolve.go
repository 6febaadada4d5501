package cli

import (
	"context"
	"strings"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	flag "github.com/spf13/pflag"
)

// ResolveCmd returns the resolve command.
func ResolveCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("resolve", flag.ContinueOnError),
		Usage: "resolve <prompt...>",
		Short: "Resolve a prompt to a mode and ritual context",
		Long:  "Resolve a free-form prompt to a covenant mode and print the derived\nritual context (suggested mantras, seal, notes) as JSON.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPromptRequired
			}

			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			prompt := strings.Join(args, " ")
			_, payload := m.RitualContext(prompt)

			return printJSON(o, payload)
		},
	}
}
