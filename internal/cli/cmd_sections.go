package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	flag "github.com/spf13/pflag"
)

// SectionsCmd returns the sections command.
func SectionsCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("sections", flag.ContinueOnError),
		Usage: "sections",
		Short: "List the manuscript sections",
		Long:  "List the six section names of the manuscript in canonical order.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			// Sections are a fixed set, but listing them without a loadable
			// manuscript would be misleading.
			_, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			for _, name := range manuscript.SectionNames() {
				o.Println(name)
			}

			return nil
		},
	}
}

// ShowCmd returns the show command.
func ShowCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <section>",
		Short: "Print one section as JSON",
		Long:  "Print a single manuscript section (meta, outer_cycle, inner_spiral,\nliving_temple, appendices, or covenant) as indented JSON.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errSectionRequired
			}

			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			section, err := m.Section(args[0])
			if err != nil {
				return err
			}

			return printJSON(o, section)
		},
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(o *IO, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot format output: %w", err)
	}

	o.Println(string(data))

	return nil
}
