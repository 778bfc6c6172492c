package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("order", func() registry.Command { return &orderCommand{} })
}

// orderCommand reorders, duplicates, or drops fields. The field list
// may be given as an inclusion list (-f, output exactly these fields
// in this order, duplicates allowed), a reverse/exclusion list (-fx,
// output every field except these), or a name list (-fn, requires a
// header record read from the first source).
type orderCommand struct{}

func (c *orderCommand) Name() string { return "order" }

func (c *orderCommand) Help() string {
	return cmdutil.ExpandHelp("reorder, duplicate, or drop CSV fields#ALL,SKIP,PASS")
}

func (c *orderCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("order")

	var includeRaw, excludeRaw, namesRaw string
	var omitMissing bool

	fs.Set.StringVar(&includeRaw, "f", "", "fields to keep, in this order (duplicates allowed)")
	fs.Set.StringVar(&excludeRaw, "fx", "", "fields to drop; all others are kept in original order")
	fs.Set.StringVar(&namesRaw, "fn", "", "comma-separated header names identifying the fields to keep, in this order")
	fs.Set.BoolVar(&omitMissing, "nc", false, "omit source indexes missing from the record instead of padding with an empty field")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	given := 0
	if includeRaw != "" {
		given++
	}
	if excludeRaw != "" {
		given++
	}
	if namesRaw != "" {
		given++
	}
	if given != 1 {
		return fail(stderr, csverr.New("specify exactly one of -f, -fx, -fn"))
	}

	var include []int
	var exclude map[int]bool
	var names []string
	var nameOrder []int
	haveNameOrder := false

	switch {
	case includeRaw != "":
		include, err = cmdutil.ParseFieldList(includeRaw)
		if err != nil {
			return fail(stderr, err)
		}
	case excludeRaw != "":
		fields, err := cmdutil.ParseFieldList(excludeRaw)
		if err != nil {
			return fail(stderr, err)
		}
		exclude = map[int]bool{}
		for _, f := range fields {
			exclude[f] = true
		}
	case namesRaw != "":
		for _, n := range strings.Split(namesRaw, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	}

	first := true

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		if first && names != nil {
			nameOrder = resolveNameOrder(rec, names)
			haveNameOrder = true
			first = false

			continue
		}
		first = false

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

		var out []string

		switch {
		case pass:
			out = rec
		case haveNameOrder:
			out = selectFieldsOpt(rec, nameOrder, omitMissing)
		case include != nil:
			out = selectFieldsOpt(rec, include, omitMissing)
		case exclude != nil:
			for i, v := range rec {
				if !exclude[i] {
					out = append(out, v)
				}
			}
		}

		if err := m.WriteRecord(out, false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

func selectFields(rec []string, order []int) []string {
	return selectFieldsOpt(rec, order, false)
}

// selectFieldsOpt builds a record from rec by picking fields at the
// given zero-based indexes, in order. Indexes past the end of rec are
// padded with an empty field, unless omitMissing is set, in which case
// they are dropped entirely.
func selectFieldsOpt(rec []string, order []int, omitMissing bool) []string {
	out := make([]string, 0, len(order))
	for _, idx := range order {
		if idx >= 0 && idx < len(rec) {
			out = append(out, rec[idx])
		} else if !omitMissing {
			out = append(out, "")
		}
	}

	return out
}

func resolveNameOrder(header []string, names []string) []int {
	index := map[string]int{}
	for i, h := range header {
		index[h] = i
	}

	out := make([]int, len(names))
	for i, n := range names {
		if idx, ok := index[n]; ok {
			out[i] = idx
		} else {
			out[i] = -1
		}
	}

	return out
}
