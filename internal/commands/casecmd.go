package commands

import (
	"io"
	"strings"
	"unicode"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("upper", func() registry.Command { return &caseCommand{mode: caseUpper} })
	registry.Register("lower", func() registry.Command { return &caseCommand{mode: caseLower} })
	registry.Register("mixed", func() registry.Command { return &caseCommand{mode: caseMixed} })
}

type caseMode int

const (
	caseUpper caseMode = iota
	caseLower
	caseMixed
)

// caseCommand converts field text to upper case, lower case, or mixed
// (title) case, by default across all fields or a given subset via -f.
type caseCommand struct {
	mode caseMode
}

func (c *caseCommand) Name() string {
	switch c.mode {
	case caseUpper:
		return "upper"
	case caseLower:
		return "lower"
	default:
		return "mixed"
	}
}

func (c *caseCommand) Help() string {
	switch c.mode {
	case caseUpper:
		return cmdutil.ExpandHelp("convert CSV fields to upper case#ALL,SKIP,PASS")
	case caseLower:
		return cmdutil.ExpandHelp("convert CSV fields to lower case#ALL,SKIP,PASS")
	default:
		return cmdutil.ExpandHelp("convert CSV fields to mixed (title) case#ALL,SKIP,PASS")
	}
}

func (c *caseCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet(c.Name())

	var fieldsRaw string
	fs.Set.StringVar(&fieldsRaw, "f", "", "fields to convert (default: all fields)")

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

	convert := c.convertFn()

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		out := append([]string{}, rec...)

		if len(fields) == 0 {
			for i, v := range out {
				out[i] = convert(v)
			}

			return out, nil
		}

		for _, idx := range fields {
			if idx >= 0 && idx < len(out) {
				out[idx] = convert(out[idx])
			}
		}

		return out, nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func (c *caseCommand) convertFn() func(string) string {
	switch c.mode {
	case caseUpper:
		return strings.ToUpper
	case caseLower:
		return strings.ToLower
	default:
		return titleCase
	}
}

// titleCase upper-cases the first letter of each whitespace-separated
// word and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true

	for _, r := range s {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)

			continue
		}

		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
