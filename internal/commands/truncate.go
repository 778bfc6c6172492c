package commands

import (
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("truncate", func() registry.Command { return &truncateCommand{} })
}

// truncateCommand shortens every record to at most N fields, dropping
// any fields beyond that. Records already at or under N fields are
// unchanged.
type truncateCommand struct{}

func (c *truncateCommand) Name() string { return "truncate" }

func (c *truncateCommand) Help() string {
	return cmdutil.ExpandHelp("shorten CSV records to a maximum field count#ALL,SKIP,PASS")
}

func (c *truncateCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("truncate")

	var n int
	fs.Set.IntVar(&n, "n", 0, "maximum number of fields")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if n <= 0 {
		return fail(stderr, csverr.New("-n must be positive"))
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		return truncateRecord(rec, n), nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func truncateRecord(rec []string, n int) []string {
	if len(rec) <= n {
		return rec
	}

	return append([]string{}, rec[:n]...)
}
