package cli

import (
	"context"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	flag "github.com/spf13/pflag"
)

// ValidateCmd returns the validate command.
func ValidateCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("validate", flag.ContinueOnError),
		Usage: "validate",
		Short: "Check that the manuscript loads",
		Long:  "Load the manuscript and report ok with section and protocol counts.\nParse and schema failures exit non-zero with the offending detail.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			o.Println("ok:", cfg.ManuscriptAbs)
			o.Printf("sections:  %d\n", len(manuscript.SectionNames()))
			o.Printf("days:      %d\n", len(m.OuterCycle()))
			o.Printf("steps:     %d\n", len(m.InnerSpiral()))
			o.Printf("protocols: %d\n", len(m.ProtocolIDs()))

			return nil
		},
	}
}
