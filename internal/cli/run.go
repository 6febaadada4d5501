package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		defaults := manuscript.DefaultConfig()
		printUsage(o, Commands(&defaults, env))

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	cfg, err := manuscript.LoadConfig(manuscript.LoadConfigInput{
		WorkDirOverride:    flags.workDir,
		ConfigPath:         flags.configPath,
		ManuscriptOverride: flags.manuscriptPath,
		Env:                env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	commands := Commands(&cfg, env)

	if len(flags.remaining) == 0 {
		printUsage(o, commands)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(o, commands)

		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(context.Background(), o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(NewIO(errOut, errOut), commands)

	return 1
}

// Commands returns the full command set for the loaded configuration.
func Commands(cfg *manuscript.Config, env map[string]string) []*Command {
	return []*Command{
		SectionsCmd(cfg),
		ShowCmd(cfg),
		DayCmd(cfg),
		StepCmd(cfg),
		ProtocolsCmd(cfg),
		ContextCmd(cfg),
		ResolveCmd(cfg),
		ValidateCmd(cfg),
		ReplCmd(cfg, env),
		PrintConfigCmd(cfg),
	}
}

type globalFlags struct {
	workDir        string
	configPath     string
	manuscriptPath string
	remaining      []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns number of
// args consumed (0 if not a global flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	set := func(dst *string, short, long string) (int, error) {
		if arg == short || arg == long {
			if idx+1 >= len(args) {
				return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
			}

			*dst = args[idx+1]

			return consumedTwo, nil
		}

		if after, ok := strings.CutPrefix(arg, long+"="); ok {
			*dst = after

			return consumedOne, nil
		}

		if short != "" {
			if after, ok := strings.CutPrefix(arg, short); ok && after != "" && !strings.HasPrefix(after, "-") {
				*dst = after

				return consumedOne, nil
			}
		}

		return consumedNone, nil
	}

	if n, err := set(&flags.workDir, "-C", "--cwd"); n != 0 || err != nil {
		return n, err
	}

	if n, err := set(&flags.configPath, "-c", "--config"); n != 0 || err != nil {
		return n, err
	}

	if n, err := set(&flags.manuscriptPath, "-m", "--manuscript"); n != 0 || err != nil {
		return n, err
	}

	return consumedNone, nil
}

func printUsage(o *IO, commands []*Command) {
	o.Println("Usage: mt [global flags] <command> [args]")
	o.Println()
	o.Println("Read the Mirror Tantra manuscript: sections, cycle days, spiral")
	o.Println("steps, protocols, and ritual context for prompts.")
	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --cwd <dir>          Run as if started in <dir>")
	o.Println("  -c, --config <file>      Explicit config file")
	o.Println("  -m, --manuscript <file>  Manuscript file (overrides config)")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Run 'mt <command> --help' for command details.")
}
