package cli

import (
	"context"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	flag "github.com/spf13/pflag"
)

// ProtocolsCmd returns the protocols command.
func ProtocolsCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("protocols", flag.ContinueOnError),
		Usage: "protocols",
		Short: "List all protocol ids",
		Long:  "List every indexed protocol with its mode and title: cycle days,\nspiral steps, living-temple practices, appendix blocks, and the covenant.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			for _, id := range m.ProtocolIDs() {
				p, err := m.Protocol(id)
				if err != nil {
					return err
				}

				o.Printf("%-36s %-22s %s\n", p.ID, p.Mode, p.Title)
			}

			return nil
		},
	}
}
