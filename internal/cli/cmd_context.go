package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

// ContextCmd returns the context command.
func ContextCmd(cfg *manuscript.Config) *Command {
	flags := flag.NewFlagSet("context", flag.ContinueOnError)
	outPath := flags.StringP("out", "o", "", "Write the block to this file instead of stdout")

	return &Command{
		Flags: flags,
		Usage: "context <id> [flags]",
		Short: "Render the system-context block for a protocol",
		Long:  "Render the text block (title, mode, mantra, seal, directive) for one\nprotocol, for pasting into an AI system prompt.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errProtocolIDRequired
			}

			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			block, err := m.SystemContext(args[0])
			if err != nil {
				return err
			}

			if *outPath == "" {
				o.Printf("%s", block)

				return nil
			}

			// Atomic write: the output file is either the old version or
			// the complete new block, never a truncated mix.
			err = atomic.WriteFile(*outPath, bytes.NewReader([]byte(block)))
			if err != nil {
				return fmt.Errorf("cannot write %s: %w", *outPath, err)
			}

			o.Println("wrote", *outPath)

			return nil
		},
	}
}
