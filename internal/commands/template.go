package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/expr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("template", func() registry.Command { return &templateCommand{} })
}

// templateCommand renders non-CSV text per record from a template
// file. {N} expands to the record's Nth (1-based) field; {@EXPR}
// evaluates EXPR in the expression engine with positional parameters
// bound to the record's fields; \n and \t escape to their control
// characters, and \{ / \} escape literal braces. With -fn, a second
// template names the per-record output file, enabling record-per-file
// generation instead of one combined output stream.
type templateCommand struct{}

func (c *templateCommand) Name() string { return "template" }

func (c *templateCommand) Help() string {
	return cmdutil.ExpandHelp("render CSV records through a text template#ALL,SKIP,PASS")
}

func (c *templateCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("template")

	var templateFile, fileNameTemplate string

	fs.Set.StringVar(&templateFile, "t", "", "path to the template file")
	fs.Set.StringVar(&fileNameTemplate, "fn", "", "template naming a per-record output file")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if templateFile == "" {
		return fail(stderr, csverr.New("-t is required"))
	}

	raw, err := os.ReadFile(templateFile)
	if err != nil {
		return fail(stderr, csverr.Newf("cannot read template %s: %v", templateFile, err))
	}

	parts, err := parseTemplate(string(raw))
	if err != nil {
		return fail(stderr, err)
	}

	var fnParts []templatePart
	if fileNameTemplate != "" {
		fnParts, err = parseTemplate(fileNameTemplate)
		if err != nil {
			return fail(stderr, err)
		}
	}

	openFiles := map[string]*os.File{}
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

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

		text, err := renderTemplate(parts, rec)
		if err != nil {
			return fail(stderr, err)
		}

		w := m.Writer()

		if fnParts != nil {
			name, err := renderTemplate(fnParts, rec)
			if err != nil {
				return fail(stderr, err)
			}

			f, ok := openFiles[name]
			if !ok {
				f, err = os.Create(name)
				if err != nil {
					return fail(stderr, csverr.Newf("cannot create %s: %v", name, err))
				}
				openFiles[name] = f
			}

			w = f
		}

		if _, err := fmt.Fprintln(w, text); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

// templatePart is either literal text or a substitution: a 1-based
// field reference (field != 0) or a compiled expression (compiled !=
// nil).
type templatePart struct {
	literal  string
	field    int
	compiled *expr.Expression
}

func parseTemplate(text string) ([]templatePart, error) {
	var out []templatePart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\\' && i+1 < len(text):
			switch text[i+1] {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			case '{':
				lit.WriteByte('{')
			case '}':
				lit.WriteByte('}')
			default:
				lit.WriteByte(text[i+1])
			}
			i++

		case text[i] == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, csverr.New("unterminated { in template")
			}

			inner := text[i+1 : i+end]
			flush()

			part, err := parseTemplateRef(inner)
			if err != nil {
				return nil, err
			}

			out = append(out, part)
			i += end

		default:
			lit.WriteByte(text[i])
		}
	}

	flush()

	return out, nil
}

func parseTemplateRef(inner string) (templatePart, error) {
	if strings.HasPrefix(inner, "@") {
		e, err := expr.Compile(inner[1:])
		if err != nil {
			return templatePart{}, csverr.Newf("invalid template expression %q: %v", inner, err)
		}

		return templatePart{compiled: e}, nil
	}

	n, err := strconv.Atoi(inner)
	if err != nil || n < 1 {
		return templatePart{}, csverr.Newf("invalid template field reference {%s}", inner)
	}

	return templatePart{field: n}, nil
}

func renderTemplate(parts []templatePart, rec []string) (string, error) {
	var b strings.Builder

	for _, p := range parts {
		switch {
		case p.compiled != nil:
			v, err := p.compiled.Eval(rec)
			if err != nil {
				return "", err
			}

			b.WriteString(v)

		case p.field != 0:
			idx := p.field - 1
			if idx >= 0 && idx < len(rec) {
				b.WriteString(rec[idx])
			}

		default:
			b.WriteString(p.literal)
		}
	}

	return b.String(), nil
}
