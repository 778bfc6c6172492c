/*
Package cmdutil implements the generic per-command framework (C7):
universal flag declaration, help-text footer expansion, -skip/-pass
predicate compilation, and field-list parsing.
*/
package cmdutil

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/expr"
)

// FlagSet wraps a flag.FlagSet with the universal flags every command
// accepts (spec.md §4.4, §4.7, §6), plus the -skip/-pass predicate
// filters. Commands embed one and add their own flags to .Set before
// calling Parse.
type FlagSet struct {
	Set *flag.FlagSet

	Output          string
	IgnoreBlank     bool
	SkipHeader      bool
	SmartQuote      bool
	QuoteFieldsRaw  string
	Sep             string
	SepRetain       string
	OutSep          string
	Header          string
	Seed            string
	SkipExpr        string
	PassExpr        string

	Files []string // positional arguments after flag parsing; "-" means stdin

	skip *expr.Expression
	pass *expr.Expression
}

// NewFlagSet returns a FlagSet for command name, with the universal
// flags registered. Command-specific flags should be added to
// .Set before calling Parse.
func NewFlagSet(name string) *FlagSet {
	fs := &FlagSet{Set: flag.NewFlagSet(name, flag.ContinueOnError)}

	fs.Set.StringVar(&fs.Output, "o", "", "write output to FILE instead of standard output")
	fs.Set.BoolVar(&fs.IgnoreBlank, "ibl", false, "ignore blank input lines")
	fs.Set.BoolVar(&fs.SkipHeader, "ifn", false, "skip the first (header) record of each input source")
	fs.Set.BoolVar(&fs.SmartQuote, "smq", false, "quote an output field only when necessary")
	fs.Set.StringVar(&fs.QuoteFieldsRaw, "sqf", "", "comma-separated list of fields to always quote, or 'none'")
	fs.Set.StringVar(&fs.Sep, "sep", "", "input field separator character")
	fs.Set.StringVar(&fs.SepRetain, "rsep", "", "input field separator character, retained for output")
	fs.Set.StringVar(&fs.OutSep, "osep", "", "force the output field separator character")
	fs.Set.StringVar(&fs.Header, "hdr", "", "write this string as the first output line")
	fs.Set.StringVar(&fs.Seed, "seed", "", "seed the expression engine's random number generator")
	fs.Set.StringVar(&fs.SkipExpr, "skip", "", "expression: a record is discarded when it evaluates truthy")
	fs.Set.StringVar(&fs.PassExpr, "pass", "", "expression: a record bypasses the command's transform when it evaluates truthy")

	return fs
}

// Parse parses args against the flag set, compiles -skip/-pass if
// present, and resolves positional file arguments. It returns a
// *csverr.Diagnostic on any error.
func (fs *FlagSet) Parse(args []string) error {
	if err := fs.Set.Parse(args); err != nil {
		return csverr.Newf("invalid flags: %v", err)
	}

	if fs.Sep != "" && fs.SepRetain != "" {
		return csverr.New("cannot specify both -sep and -rsep")
	}

	if fs.SkipExpr != "" {
		e, err := expr.Compile(fs.SkipExpr)
		if err != nil {
			return csverr.Newf("-skip: %v", err)
		}
		fs.skip = e
	}

	if fs.PassExpr != "" {
		e, err := expr.Compile(fs.PassExpr)
		if err != nil {
			return csverr.Newf("-pass: %v", err)
		}
		fs.pass = e
	}

	fs.Files = fs.Set.Args()

	return nil
}

// Skip reports whether record should be discarded, per -skip.
func (fs *FlagSet) Skip(record []string) (bool, error) {
	if fs.skip == nil {
		return false, nil
	}

	return evalTruthy(fs.skip, record)
}

// Pass reports whether record should bypass the command's transform
// unchanged, per -pass. -skip takes priority when both are set and a
// caller should check Skip first.
func (fs *FlagSet) Pass(record []string) (bool, error) {
	if fs.pass == nil {
		return false, nil
	}

	return evalTruthy(fs.pass, record)
}

func evalTruthy(e *expr.Expression, record []string) (bool, error) {
	v, err := e.Eval(record)
	if err != nil {
		return false, err
	}

	return v != "0", nil
}

// EffectiveSeparator returns the byte to use as the input separator
// and whether it should also be retained as the output separator.
func (fs *FlagSet) EffectiveSeparator() (sep byte, retain bool, err error) {
	s := fs.Sep
	retain = fs.SepRetain != ""
	if retain {
		s = fs.SepRetain
	}

	if s == "" {
		return ',', retain, nil
	}

	if len(s) != 1 {
		return 0, false, csverr.New("CSV separator must be a single character")
	}

	return s[0], retain, nil
}

// OutputSeparator returns the forced output separator byte, if -osep
// was given, and whether it was given. "\t" is recognized literally
// as a tab.
func (fs *FlagSet) OutputSeparator() (sep byte, ok bool, err error) {
	if fs.OutSep == "" {
		return 0, false, nil
	}
	if fs.OutSep == `\t` {
		return '\t', true, nil
	}
	if len(fs.OutSep) != 1 {
		return 0, false, csverr.New("invalid output separator (must be a single character)")
	}

	return fs.OutSep[0], true, nil
}

// QuoteFields parses -sqf into a zero-based field-index set. "none" or
// "0" mean quote nothing; empty means unset (fall back to smart
// quoting, or always-quote, per the I/O manager's policy).
func (fs *FlagSet) QuoteFields() (fields []int, set bool, err error) {
	if fs.QuoteFieldsRaw == "" {
		return nil, false, nil
	}

	if fs.QuoteFieldsRaw == "none" || fs.QuoteFieldsRaw == "0" {
		return nil, true, nil
	}

	fields, err = ParseFieldList(fs.QuoteFieldsRaw)

	return fields, true, err
}

// SeedValue returns the parsed -seed value and whether it was given.
func (fs *FlagSet) SeedValue() (int64, bool, error) {
	if fs.Seed == "" {
		return 0, false, nil
	}

	n, err := strconv.ParseInt(fs.Seed, 10, 64)
	if err != nil {
		return 0, false, csverr.Newf("-seed value must be an integer: %v", err)
	}

	return n, true, nil
}

// ParseFieldList parses a user-facing, 1-based field-list spec (a
// comma-separated list of integers or inclusive a:b ranges, either
// direction) into zero-based field indexes, preserving order.
func ParseFieldList(spec string) ([]int, error) {
	var out []int

	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, csverr.Newf("invalid field list: %q", spec)
		}

		if a, b, isRange := strings.Cut(tok, ":"); isRange {
			n1, err1 := strconv.Atoi(a)
			n2, err2 := strconv.Atoi(b)
			if err1 != nil || err2 != nil || n1 < 1 || n2 < 1 {
				return nil, csverr.Newf("invalid range: %q", tok)
			}

			if n1 <= n2 {
				for n := n1; n <= n2; n++ {
					out = append(out, n-1)
				}
			} else {
				for n := n1; n >= n2; n-- {
					out = append(out, n-1)
				}
			}

			continue
		}

		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 {
			return nil, csverr.Newf("invalid field index: %q", tok)
		}

		out = append(out, n-1)
	}

	return out, nil
}

// ExpandHelp expands a help string's trailing "#TAG1,TAG2,..." footer
// into standard paragraphs describing which universal flags the
// command accepts.
func ExpandHelp(help string) string {
	body, tags, found := strings.Cut(help, "#")
	if !found {
		return help
	}

	var b strings.Builder
	b.WriteString(body)

	for _, tag := range strings.Split(tags, ",") {
		if p, ok := helpTags[strings.TrimSpace(tag)]; ok {
			b.WriteString("\n\n")
			b.WriteString(p)
		}
	}

	return b.String()
}

var helpTags = map[string]string{
	"ALL": "Accepts all universal flags (-o -ibl -ifn -smq -sqf -sep -rsep -osep -hdr -seed -skip -pass).",
	"IBL": "-ibl    ignore blank input lines",
	"IFN": "-ifn    skip the first (header) record of each input source",
	"SMQ": "-smq    quote an output field only when necessary",
	"SEP": "-sep C  use C as the input field separator\n-rsep C use C as the input field separator, and retain it for output",
	"OFL": "-o FILE write output to FILE instead of standard output",
	"SKIP": "-skip EXPR   discard a record when EXPR evaluates truthy",
	"PASS": "-pass EXPR   bypass this command's transform when EXPR evaluates truthy",
}

// PrintUsage writes the flag set's default usage summary using the
// standard library's flag.FlagSet, prefixed with a one-line synopsis.
func PrintUsage(name, synopsis string, fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "usage: csvfix %s [flags] [file...]\n", name)
	if synopsis != "" {
		fmt.Fprintln(fs.Output(), synopsis)
	}
	fs.PrintDefaults()
}
