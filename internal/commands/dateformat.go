package commands

import (
	"io"
	"time"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/datefmt"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("date_format", func() registry.Command { return &dateFormatCommand{} })
}

// dateFormatCommand reformats an ISO yyyy-mm-dd field using a
// strftime-like format string (C10).
type dateFormatCommand struct{}

func (c *dateFormatCommand) Name() string { return "date_format" }

func (c *dateFormatCommand) Help() string {
	return cmdutil.ExpandHelp("reformat an ISO-dated CSV field#ALL,SKIP,PASS")
}

func (c *dateFormatCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("date_format")

	var fieldRaw, format string

	fs.Set.StringVar(&fieldRaw, "f", "1", "field to reformat (1-based)")
	fs.Set.StringVar(&format, "t", "d/m/y", "output format string")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	fields, err := cmdutil.ParseFieldList(fieldRaw)
	if err != nil {
		return fail(stderr, err)
	}
	if len(fields) != 1 {
		return fail(stderr, csverr.New("-f must name exactly one field"))
	}
	field := fields[0]

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		if field < 0 || field >= len(rec) {
			return rec, nil
		}

		d, err := parseISODate(rec[field])
		if err != nil {
			return rec, nil
		}

		text, err := datefmt.Format(d, format, datefmt.DefaultMonthNames())
		if err != nil {
			return nil, err
		}

		out := append([]string{}, rec...)
		out[field] = text

		return out, nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

// parseISODate parses s as an ISO yyyy-mm-dd date using the standard
// library's date-only layout rather than re-deriving a mask.
func parseISODate(s string) (datefmt.Date, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return datefmt.Date{}, csverr.Newf("not an ISO date: %q", s)
	}

	return datefmt.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}, nil
}
