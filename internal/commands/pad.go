package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("pad", func() registry.Command { return &padCommand{} })
}

// padCommand extends every record to N fields by appending values
// from a supplied padding vector, reusing the vector's last element
// once it is exhausted. Records already at or over N fields are
// unchanged.
type padCommand struct{}

func (c *padCommand) Name() string { return "pad" }

func (c *padCommand) Help() string {
	return cmdutil.ExpandHelp("extend CSV records to a fixed field count#ALL,SKIP,PASS")
}

func (c *padCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("pad")

	var n int
	var valuesRaw string

	fs.Set.IntVar(&n, "n", 0, "number of fields to extend each record to")
	fs.Set.StringVar(&valuesRaw, "v", "", "comma-separated padding values (last one is reused as needed)")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if n <= 0 {
		return fail(stderr, csverr.New("-n must be positive"))
	}

	values := strings.Split(valuesRaw, ",")
	if valuesRaw == "" {
		values = []string{""}
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		return padRecord(rec, n, values), nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func padRecord(rec []string, n int, values []string) []string {
	if len(rec) >= n {
		return rec
	}

	out := append([]string{}, rec...)

	for i := len(out); i < n; i++ {
		vi := i - len(rec)
		if vi >= len(values) {
			vi = len(values) - 1
		}

		out = append(out, values[vi])
	}

	return out
}
