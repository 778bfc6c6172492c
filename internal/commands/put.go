package commands

import (
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("put", func() registry.Command { return &putCommand{} })
}

const (
	putDateLayout     = "2006-01-02"
	putDateTimeLayout = "2006-01-02 15:04:05"
)

// putCommand inserts a literal value, an environment-variable value,
// or one of the special tokens @DATE, @DATETIME, @COUNT at a given
// field position (or appends it when no position is given).
type putCommand struct{}

func (c *putCommand) Name() string { return "put" }

func (c *putCommand) Help() string {
	return cmdutil.ExpandHelp("insert a literal, environment, or generated value into CSV records#ALL,SKIP,PASS")
}

func (c *putCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("put")

	var value, envName string
	var pos int
	havePos := false

	fs.Set.StringVar(&value, "v", "", "literal value to insert (or @DATE, @DATETIME, @COUNT)")
	fs.Set.StringVar(&envName, "e", "", "name of an environment variable whose value is inserted")
	fs.Set.IntVar(&pos, "p", 0, "1-based position to insert at (default: append)")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	fs.Set.Visit(func(f *flag.Flag) {
		if f.Name == "p" {
			havePos = true
		}
	})

	if value != "" && envName != "" {
		return fail(stderr, csverr.New("specify only one of -v or -e"))
	}
	if value == "" && envName == "" {
		return fail(stderr, csverr.New("-v or -e is required"))
	}

	count := 0

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		count++

		v := value
		if envName != "" {
			v = os.Getenv(envName)
		} else {
			v = expandPutToken(value, count)
		}

		return insertAt(rec, v, pos, havePos), nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func expandPutToken(value string, count int) string {
	switch value {
	case "@DATE":
		return time.Now().Format(putDateLayout)
	case "@DATETIME":
		return time.Now().Format(putDateTimeLayout)
	case "@COUNT":
		return strconv.Itoa(count)
	default:
		return value
	}
}

func insertAt(rec []string, value string, pos int, havePos bool) []string {
	if !havePos {
		return append(append([]string{}, rec...), value)
	}

	idx := pos - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(rec) {
		idx = len(rec)
	}

	out := make([]string, 0, len(rec)+1)
	out = append(out, rec[:idx]...)
	out = append(out, value)
	out = append(out, rec[idx:]...)

	return out
}
