package commands

import (
	"io"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("squash", func() registry.Command { return &squashCommand{} })
}

// squashCommand groups records by a key built from a subset of
// fields (-f) and sums every other numeric field across each group,
// emitting one output record per distinct key. A non-key field is
// summed over the records of the group in which it parses as a number;
// records where it does not parse are left out of the sum. A field
// that parses in no record of the group keeps the first record's value.
type squashCommand struct{}

func (c *squashCommand) Name() string { return "squash" }

func (c *squashCommand) Help() string {
	return cmdutil.ExpandHelp("group CSV records by key and sum the remaining numeric fields")
}

type squashGroup struct {
	template []string
	sums     []float64
	summable []bool
	seen     []bool
}

func (c *squashCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("squash")

	var keyRaw string
	fs.Set.StringVar(&keyRaw, "f", "", "fields forming the group key")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if keyRaw == "" {
		return fail(stderr, csverr.New("-f is required"))
	}

	keyFields, err := cmdutil.ParseFieldList(keyRaw)
	if err != nil {
		return fail(stderr, err)
	}
	keySet := map[int]bool{}
	for _, f := range keyFields {
		keySet[f] = true
	}

	groups := map[string]*squashGroup{}
	var order []string

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		key := uniqueKey(rec, keyFields)

		g, ok := groups[key]
		if !ok {
			g = &squashGroup{
				template: append([]string{}, rec...),
				sums:     make([]float64, len(rec)),
				summable: make([]bool, len(rec)),
				seen:     make([]bool, len(rec)),
			}
			groups[key] = g
			order = append(order, key)
		}

		accumulateSquashRecord(g, rec, keySet)
	}

	for _, key := range order {
		g := groups[key]

		out := append([]string{}, g.template...)
		for i := range out {
			if keySet[i] {
				continue
			}
			if g.summable[i] {
				out[i] = strconv.FormatFloat(g.sums[i], 'f', -1, 64)
			}
		}

		if err := m.WriteRecord(out, false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

func accumulateSquashRecord(g *squashGroup, rec []string, keySet map[int]bool) {
	for i, v := range rec {
		if i >= len(g.sums) {
			break
		}
		if keySet[i] {
			continue
		}

		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}

		if !g.seen[i] {
			g.summable[i] = true
			g.seen[i] = true
		}

		g.sums[i] += n
	}
}
