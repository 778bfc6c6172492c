package commands

import (
	"bufio"
	"bytes"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/csvcore"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("exec", func() registry.Command { return &execCommand{} })
}

// execCommand runs a subprocess per record, built from a command-line
// template where %N interpolates field N (1-based) and %% is a
// literal percent. Subprocesses run to completion sequentially; there
// is no concurrency across records.
type execCommand struct{}

func (c *execCommand) Name() string { return "exec" }

func (c *execCommand) Help() string {
	return cmdutil.ExpandHelp("run a subprocess per record#ALL,SKIP,PASS")
}

func (c *execCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("exec")

	var cmdTemplate string
	var replace bool

	fs.Set.StringVar(&cmdTemplate, "c", "", "command-line template, %N for field N and %% for a literal percent (required)")
	fs.Set.BoolVar(&replace, "r", false, "replace the record with the subprocess's parsed stdout instead of appending to it")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if cmdTemplate == "" {
		return fail(stderr, csverr.New("-c is required"))
	}

	sep, _, err := fs.EffectiveSeparator()
	if err != nil {
		return fail(stderr, err)
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		return execTransform(rec, cmdTemplate, replace, sep)
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

// expandExecTemplate substitutes %N (1-based field index) and %% into
// the command-line template, returning the finished shell command
// line for /bin/sh -c.
func expandExecTemplate(template string, rec []string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' {
			b.WriteByte(ch)
			continue
		}

		if i+1 >= len(template) {
			return "", csverr.New("exec template ends with a trailing %")
		}

		i++
		next := template[i]

		switch {
		case next == '%':
			b.WriteByte('%')
		case next >= '0' && next <= '9':
			j := i
			for j < len(template) && template[j] >= '0' && template[j] <= '9' {
				j++
			}

			n, err := strconv.Atoi(template[i:j])
			if err != nil {
				return "", err
			}

			if n < 1 || n > len(rec) {
				return "", csverr.Newf("exec template references field %d, record has %d", n, len(rec))
			}

			b.WriteString(rec[n-1])
			i = j - 1
		default:
			return "", csverr.Newf("exec template has unknown directive %%%c", next)
		}
	}

	return b.String(), nil
}

func execTransform(rec []string, template string, replace bool, sep byte) ([]string, error) {
	line, err := expandExecTemplate(template, rec)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("/bin/sh", "-c", line)

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return nil, csverr.Newf("exec subprocess failed: %v: %s", err, strings.TrimSpace(errOut.String()))
	}

	if replace {
		lines := splitNonEmptyLines(out.String())
		if len(lines) == 0 {
			return []string{}, nil
		}

		result, err := csvcore.ParseLine(lines[0], sep, false)
		if err != nil {
			return nil, err
		}

		return []string(result), nil
	}

	result := append([]string{}, rec...)

	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields, err := csvcore.ParseLine(line, sep, false)
		if err != nil {
			return nil, err
		}

		result = append(result, []string(fields)...)
	}

	return result, nil
}

func splitNonEmptyLines(s string) []string {
	var lines []string

	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
