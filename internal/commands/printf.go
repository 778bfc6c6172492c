package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("printf", func() registry.Command { return &printfCommand{} })
}

// printfCommand renders non-CSV text per record from a format string
// containing %-conversions (dioxXucsfeEgG) consumed against the
// record's fields in order, plus a %@ directive that consumes a field
// without emitting anything. With -q, each conversion's rendered value
// is wrapped in doubled-quote CSV escaping so the output round-trips
// as a quoted CSV value.
type printfCommand struct{}

func (c *printfCommand) Name() string { return "printf" }

func (c *printfCommand) Help() string {
	return cmdutil.ExpandHelp("render CSV records as printf-style formatted text#ALL,SKIP,PASS")
}

func (c *printfCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("printf")

	var format string
	var quote bool

	fs.Set.StringVar(&format, "f", "", "printf-style format string")
	fs.Set.BoolVar(&quote, "q", false, "doubled-quote each conversion's rendered output")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if format == "" {
		return fail(stderr, csverr.New("-f is required"))
	}

	directives, err := parsePrintfFormat(format)
	if err != nil {
		return fail(stderr, err)
	}

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
		if pass {
			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}

			continue
		}

		line, err := renderPrintf(directives, rec, quote)
		if err != nil {
			return fail(stderr, err)
		}

		if _, err := fmt.Fprintln(m.Writer(), line); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

// printfDirective is either a literal text run or a %-conversion
// (conv != 0), in the order they appear in the format string.
type printfDirective struct {
	literal string
	conv    byte // 0 for a literal run
}

const printfConversions = "dioxXucsfeEgG"

func parsePrintfFormat(format string) ([]printfDirective, error) {
	var out []printfDirective
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, printfDirective{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			lit.WriteByte(format[i])

			continue
		}

		if i+1 >= len(format) {
			return nil, csverr.New("trailing %% in printf format")
		}

		next := format[i+1]
		switch {
		case next == '%':
			lit.WriteByte('%')
			i++
		case next == '@':
			flush()
			out = append(out, printfDirective{conv: '@'})
			i++
		case strings.IndexByte(printfConversions, next) >= 0:
			flush()
			out = append(out, printfDirective{conv: next})
			i++
		default:
			return nil, csverr.Newf("unknown printf conversion %%%c", next)
		}
	}

	flush()

	return out, nil
}

func renderPrintf(directives []printfDirective, rec []string, quote bool) (string, error) {
	var b strings.Builder
	fieldIdx := 0

	nextField := func() string {
		if fieldIdx >= len(rec) {
			fieldIdx++

			return ""
		}
		v := rec[fieldIdx]
		fieldIdx++

		return v
	}

	for _, d := range directives {
		if d.conv == 0 {
			b.WriteString(d.literal)

			continue
		}

		if d.conv == '@' {
			nextField()

			continue
		}

		v := nextField()

		rendered, err := convertPrintfValue(d.conv, v)
		if err != nil {
			return "", err
		}

		if quote {
			rendered = `"` + strings.ReplaceAll(rendered, `"`, `""`) + `"`
		}

		b.WriteString(rendered)
	}

	return b.String(), nil
}

func convertPrintfValue(conv byte, v string) (string, error) {
	switch conv {
	case 'd', 'i', 'u':
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return "", csverr.Newf("value %q is not an integer", v)
		}

		return strconv.FormatInt(n, 10), nil
	case 'o':
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return "", csverr.Newf("value %q is not an integer", v)
		}

		return strconv.FormatInt(n, 8), nil
	case 'x':
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return "", csverr.Newf("value %q is not an integer", v)
		}

		return strconv.FormatInt(n, 16), nil
	case 'X':
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return "", csverr.Newf("value %q is not an integer", v)
		}

		return strings.ToUpper(strconv.FormatInt(n, 16)), nil
	case 'c':
		if v == "" {
			return "", nil
		}

		return string([]rune(v)[0]), nil
	case 's':
		return v, nil
	case 'f':
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "", csverr.Newf("value %q is not a number", v)
		}

		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case 'e', 'E', 'g', 'G':
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "", csverr.Newf("value %q is not a number", v)
		}

		return strconv.FormatFloat(f, conv, -1, 64), nil
	default:
		return "", csverr.Newf("unknown printf conversion %%%c", conv)
	}
}
