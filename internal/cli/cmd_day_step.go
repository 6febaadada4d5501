package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	flag "github.com/spf13/pflag"
)

// DayCmd returns the day command.
func DayCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("day", flag.ContinueOnError),
		Usage: "day <n>",
		Short: "Print one outer-cycle day (1-7)",
		Exec: func(_ context.Context, o *IO, args []string) error {
			n, err := parseIndex(args)
			if err != nil {
				return err
			}

			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			day, err := m.CycleDay(n)
			if err != nil {
				return err
			}

			return printJSON(o, day)
		},
	}
}

// StepCmd returns the step command.
func StepCmd(cfg *manuscript.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("step", flag.ContinueOnError),
		Usage: "step <n>",
		Short: "Print one inner-spiral step (1-13)",
		Exec: func(_ context.Context, o *IO, args []string) error {
			n, err := parseIndex(args)
			if err != nil {
				return err
			}

			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			step, err := m.SpiralStep(n)
			if err != nil {
				return err
			}

			return printJSON(o, step)
		},
	}
}

func parseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errIndexRequired
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errIndexNotNumeric, args[0])
	}

	return n, nil
}
