// Package main provides mt, a reader for the Mirror Tantra manuscript.
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/mirror-tantra/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
