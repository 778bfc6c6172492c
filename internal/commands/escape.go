package commands

import (
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("escape", func() registry.Command { return &escapeCommand{} })
}

// escapeCommand copies input to output, writing every record with the
// I/O manager's suppress_csv_escape quoting mode: a field that needs
// quoting is wrapped in quotes without doubling embedded quotes. This
// exercises the third branch of spec.md §4.4's quoting decision, the
// one no other command reaches.
type escapeCommand struct{}

func (c *escapeCommand) Name() string { return "escape" }

func (c *escapeCommand) Help() string {
	return cmdutil.ExpandHelp("copy CSV input to output, quoting fields without doubling embedded quotes#ALL,SKIP,PASS")
}

func (c *escapeCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("escape")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		skip, err := fs.Skip(rec)
		if err != nil {
			return fail(stderr, err)
		}
		if skip {
			continue
		}

		pass, err := fs.Pass(rec)
		if err != nil {
			return fail(stderr, err)
		}

		if err := m.WriteRecord(rec, !pass); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}
