package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

// ReplCmd returns the repl command.
func ReplCmd(cfg *manuscript.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("repl", flag.ContinueOnError),
		Usage: "repl",
		Short: "Interactive manuscript shell",
		Long:  "Open an interactive shell for resolving prompts and browsing\nprotocols, with history and tab completion.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			m, err := manuscript.Load(cfg.ManuscriptAbs)
			if err != nil {
				return err
			}

			r := &repl{m: m, io: o, env: env}

			return r.run()
		},
	}
}

// repl is the interactive loop around a loaded manuscript.
type repl struct {
	m     *manuscript.Manuscript
	io    *IO
	env   map[string]string
	liner *liner.State
}

var replCommands = []string{
	"resolve", "show", "ids", "day", "step", "help", "exit", "quit",
}

// historyFile returns the path to the history file.
func (r *repl) historyFile() string {
	if home := r.env["HOME"]; home != "" {
		return filepath.Join(home, ".mt_history")
	}

	return ""
}

func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(r.historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	r.io.Println("mt - mirror tantra shell")
	r.io.Println("Type 'help' for available commands.")
	r.io.Println()

	for {
		line, err := r.liner.Prompt("mt> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.io.Println()

				break
			}

			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		if quit := r.dispatch(line); quit {
			break
		}
	}

	r.saveHistory()

	return nil
}

// dispatch handles one input line. Returns true when the loop should end.
// Errors are printed, not returned: one bad line never ends the session.
func (r *repl) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true

	case "help", "?":
		r.printHelp()

	case "resolve":
		prompt := strings.Join(args, " ")
		if prompt == "" {
			r.io.ErrPrintln("error:", errPromptRequired)

			break
		}

		mode, payload := r.m.RitualContext(prompt)
		r.io.Println("mode:", mode)

		if err := printJSON(r.io, payload); err != nil {
			r.io.ErrPrintln("error:", err)
		}

	case "show":
		if len(args) == 0 {
			r.io.ErrPrintln("error:", errProtocolIDRequired)

			break
		}

		block, err := r.m.SystemContext(args[0])
		if err != nil {
			r.io.ErrPrintln("error:", err)

			break
		}

		r.io.Printf("%s", block)

	case "ids":
		for _, id := range r.m.ProtocolIDs() {
			r.io.Println(id)
		}

	case "day":
		r.printEntry(args, r.m.CycleDay)

	case "step":
		r.printEntry(args, r.m.SpiralStep)

	default:
		r.io.ErrPrintln("error: unknown command:", cmd, "(type 'help' for commands)")
	}

	return false
}

func (r *repl) printEntry(args []string, lookup func(int) (map[string]any, error)) {
	if len(args) == 0 {
		r.io.ErrPrintln("error:", errIndexRequired)

		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		r.io.ErrPrintln("error:", errIndexNotNumeric)

		return
	}

	entry, err := lookup(n)
	if err != nil {
		r.io.ErrPrintln("error:", err)

		return
	}

	if err := printJSON(r.io, entry); err != nil {
		r.io.ErrPrintln("error:", err)
	}
}

func (r *repl) printHelp() {
	r.io.Println("Commands:")
	r.io.Println("  resolve <prompt>   Resolve a prompt to a mode and ritual context")
	r.io.Println("  show <id>          Render the system-context block for a protocol")
	r.io.Println("  ids                List all protocol ids")
	r.io.Println("  day <n>            Print one outer-cycle day (1-7)")
	r.io.Println("  step <n>           Print one inner-spiral step (1-13)")
	r.io.Println("  help               Show this help")
	r.io.Println("  exit               Leave the shell")
}

// saveHistory persists command history to disk.
func (r *repl) saveHistory() {
	path := r.historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		r.liner.WriteHistory(f)
		f.Close()
	}
}

// completer provides tab completion for repl commands and protocol ids.
func (r *repl) completer(line string) []string {
	var out []string

	if cmd, rest, ok := strings.Cut(line, " "); ok && (cmd == "show" || cmd == "resolve") {
		for _, id := range r.m.ProtocolIDs() {
			if strings.HasPrefix(id, rest) {
				out = append(out, cmd+" "+id)
			}
		}

		return out
	}

	for _, cmd := range replCommands {
		if strings.HasPrefix(cmd, strings.ToLower(line)) {
			out = append(out, cmd)
		}
	}

	return out
}
