package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("rmnew", func() registry.Command { return &rmnewCommand{} })
}

// rmnewCommand replaces or excises embedded newlines inside selected
// fields (by default, all fields).
type rmnewCommand struct{}

func (c *rmnewCommand) Name() string { return "rmnew" }

func (c *rmnewCommand) Help() string {
	return cmdutil.ExpandHelp("replace or excise embedded newlines in CSV fields#ALL,SKIP,PASS")
}

func (c *rmnewCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("rmnew")

	var fieldsRaw, replacement string
	var cut bool

	fs.Set.StringVar(&fieldsRaw, "f", "", "fields to process (default: all fields)")
	fs.Set.StringVar(&replacement, "r", " ", "replacement string for each embedded newline")
	fs.Set.BoolVar(&cut, "c", false, "cut the field at the first embedded newline instead of replacing")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	var fields []int
	if fieldsRaw != "" {
		fields, err = cmdutil.ParseFieldList(fieldsRaw)
		if err != nil {
			return fail(stderr, err)
		}
	}

	transform := func(v string) string {
		return removeEmbeddedNewline(v, cut, replacement)
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		out := append([]string{}, rec...)

		if len(fields) == 0 {
			for i, v := range out {
				out[i] = transform(v)
			}

			return out, nil
		}

		for _, idx := range fields {
			if idx >= 0 && idx < len(out) {
				out[idx] = transform(out[idx])
			}
		}

		return out, nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func removeEmbeddedNewline(v string, cut bool, replacement string) string {
	if cut {
		if i := strings.IndexByte(v, '\n'); i >= 0 {
			return v[:i]
		}

		return v
	}

	return strings.ReplaceAll(v, "\n", replacement)
}
