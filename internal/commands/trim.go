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
	registry.Register("trim", func() registry.Command { return &trimCommand{} })
}

// trimCommand strips leading and/or trailing whitespace from fields,
// by default all of them, or a given subset via -f, then optionally
// truncates each field to a per-index width from -w (a comma-separated
// vector; a negative entry means "don't truncate" that field, and a
// field beyond the vector's length is left untruncated).
type trimCommand struct{}

func (c *trimCommand) Name() string { return "trim" }

func (c *trimCommand) Help() string {
	return cmdutil.ExpandHelp("trim leading and/or trailing whitespace from CSV fields#ALL,SKIP,PASS")
}

func (c *trimCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("trim")

	var fieldsRaw, widthsRaw string
	var leadingOnly, trailingOnly bool

	fs.Set.StringVar(&fieldsRaw, "f", "", "fields to trim (default: all fields)")
	fs.Set.BoolVar(&leadingOnly, "l", false, "trim leading whitespace only")
	fs.Set.BoolVar(&trailingOnly, "t", false, "trim trailing whitespace only")
	fs.Set.StringVar(&widthsRaw, "w", "", "comma-separated per-field truncation widths (-1 means don't truncate)")

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

	var widths []int
	if widthsRaw != "" {
		widths, err = parseIntVector(widthsRaw)
		if err != nil {
			return fail(stderr, err)
		}
	}

	trimFn := strings.TrimSpace
	switch {
	case leadingOnly:
		trimFn = func(s string) string { return strings.TrimLeft(s, " \t\r\n") }
	case trailingOnly:
		trimFn = func(s string) string { return strings.TrimRight(s, " \t\r\n") }
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		out := append([]string{}, rec...)

		if len(fields) == 0 {
			for i, v := range out {
				out[i] = trimFn(v)
			}
		} else {
			for _, idx := range fields {
				if idx >= 0 && idx < len(out) {
					out[idx] = trimFn(out[idx])
				}
			}
		}

		if widths != nil {
			for i := range out {
				out[i] = truncateWidth(out[i], widths, i)
			}
		}

		return out, nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func truncateWidth(field string, widths []int, index int) string {
	if index >= len(widths) {
		return field
	}

	w := widths[index]
	if w < 0 {
		return field
	}

	r := []rune(field)
	if len(r) > w {
		return string(r[:w])
	}

	return field
}

func parseIntVector(spec string) ([]int, error) {
	parts := strings.Split(spec, ",")
	out := make([]int, len(parts))

	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, csverr.Newf("invalid integer in vector: %q", p)
		}

		out[i] = n
	}

	return out, nil
}
