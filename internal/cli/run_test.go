package cli

import (
	"strings"
	"testing"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	r := NewCLI(t)

	stdout, _, code := r.Run()
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	if !strings.Contains(stdout, "Usage: mt") {
		t.Errorf("usage missing from output:\n%s", stdout)
	}
}

func TestRunHelpListsCommands(t *testing.T) {
	r := NewCLI(t)

	stdout, _, code := r.Run("--help")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	for _, name := range []string{"sections", "show", "day", "step", "protocols", "context", "resolve", "validate", "repl", "print-config"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("help does not list %q:\n%s", name, stdout)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	r := NewCLI(t)

	stderr := r.MustFail("transcend")
	if !strings.Contains(stderr, "unknown command: transcend") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunFlagRequiresArg(t *testing.T) {
	r := NewCLI(t)

	_, stderr, code := r.Run("-c")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr, "flag requires an argument") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunManuscriptFlagOverride(t *testing.T) {
	r := NewCLI(t)
	path := writeManuscript(t, r.Dir)

	// Point at the manuscript explicitly instead of relying on the
	// default name in the working directory.
	out := r.MustRun("-m", path, "validate")
	if !strings.Contains(out, "ok:") {
		t.Errorf("validate output = %q", out)
	}
}

func TestRunCommandHelp(t *testing.T) {
	r := NewCLI(t)
	writeManuscript(t, r.Dir)

	stdout, _, code := r.Run("show", "--help")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	if !strings.Contains(stdout, "Usage: mt show <section>") {
		t.Errorf("command help missing:\n%s", stdout)
	}
}
