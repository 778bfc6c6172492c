/*
Csvfix is a stream editor for CSV files: a family of subcommands, each
reading records from an ordered list of input sources (or standard
input) and writing records, or derived text, to standard output or a
named file.

Usage:

	csvfix COMMAND [FLAGS] [FILE...]
	csvfix help
	csvfix help COMMAND

With no arguments, csvfix prints its build banner and exits. COMMAND
may be any unambiguous prefix of a registered command name. A local
./.csvfix or $HOME/.csvfix configuration file, if present, may supply
command aliases or a default-options body spliced into every
invocation; see internal/config.
*/
package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/nbutterworth/csvfix/internal/commands"
	"github.com/nbutterworth/csvfix/internal/config"
	"github.com/nbutterworth/csvfix/internal/registry"
)

const version = "1.0"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		return registry.Info(stdout, version)
	}

	switch argv[1] {
	case "help", "usage":
		if len(argv) == 2 {
			return registry.Usage(stdout)
		}

		return registry.HelpFor(stdout, argv[2])
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	argv, err = cfg.RewriteArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	cmd, err := registry.Resolve(argv[1])
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	return cmd.Run(argv[2:], stdout, stderr)
}
