package commands

import (
	"io"
	"os"
	"strconv"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csvcore"
	"github.com/nbutterworth/csvfix/internal/ioman"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("stat", func() registry.Command { return &statCommand{} })
}

// statCommand emits one output record per input file:
// (file-name, record-count, min-fields, max-fields).
type statCommand struct{}

func (c *statCommand) Name() string { return "stat" }

func (c *statCommand) Help() string {
	return cmdutil.ExpandHelp("report per-file CSV record and field counts")
}

func (c *statCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("stat")

	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}

	sep, _, err := fs.EffectiveSeparator()
	if err != nil {
		return fail(stderr, err)
	}

	opts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		return fail(stderr, err)
	}

	m, err := ioman.New(opts)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	files := fs.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	for _, name := range files {
		count, minFields, maxFields, err := statFile(name, sep)
		if err != nil {
			return fail(stderr, err)
		}

		rec := []string{
			name,
			strconv.Itoa(count),
			strconv.Itoa(minFields),
			strconv.Itoa(maxFields),
		}

		if err := m.WriteRecord(rec, false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

func statFile(name string, sep byte) (count, minFields, maxFields int, err error) {
	var r io.Reader

	if name == "-" {
		r = os.Stdin
	} else {
		f, ferr := os.Open(name)
		if ferr != nil {
			return 0, 0, 0, ferr
		}
		defer f.Close()

		r = f
	}

	stream := csvcore.NewStream(r, csvcore.StreamOptions{Separator: sep})

	for {
		rec, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, 0, err
		}

		n := len(rec)
		if count == 0 || n < minFields {
			minFields = n
		}
		if n > maxFields {
			maxFields = n
		}

		count++
	}

	return count, minFields, maxFields, nil
}
