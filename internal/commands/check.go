package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csvcore"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("check", func() registry.Command { return &checkCommand{} })
}

// checkCommand validates its inputs as syntactic CSV using the
// checker (C3) rather than the lax stream parser the other commands
// use, reporting every malformed record to stderr and exiting
// non-zero if any were found. With -q, it stops and exits at the
// first error instead of continuing to find more.
type checkCommand struct{}

func (c *checkCommand) Name() string { return "check" }

func (c *checkCommand) Help() string {
	return cmdutil.ExpandHelp("validate CSV syntax, reporting malformed records")
}

func (c *checkCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("check")

	var quiet, allowEmbeddedNewline bool

	fs.Set.BoolVar(&quiet, "q", false, "stop and exit at the first error, without further output")
	fs.Set.BoolVar(&allowEmbeddedNewline, "nl", true, "allow embedded newlines inside quoted fields")

	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}

	sep, _, err := fs.EffectiveSeparator()
	if err != nil {
		return fail(stderr, err)
	}

	files := fs.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	hadError := false

	for _, name := range files {
		var r io.Reader

		if name == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(name)
			if err != nil {
				fmt.Fprintln(stderr, err)
				hadError = true

				if quiet {
					return 1
				}

				continue
			}
			defer f.Close()

			r = f
		}

		checker := csvcore.NewChecker(r, name, csvcore.CheckerOptions{
			Separator:            sep,
			AllowEmbeddedNewline: allowEmbeddedNewline,
		})

		for {
			_, err := checker.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				hadError = true
				fmt.Fprintln(stderr, err)

				if quiet {
					return 1
				}

				continue
			}
		}
	}

	if hadError {
		return 1
	}

	return 0
}
