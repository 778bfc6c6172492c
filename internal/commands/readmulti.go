package commands

import (
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("read_multi", func() registry.Command { return &readMultiCommand{} })
}

// readMultiCommand assembles one output record from several
// consecutive raw input lines, either a fixed count or everything
// between separator lines, each contributing line becoming one field
// of the assembled record.
type readMultiCommand struct{}

func (c *readMultiCommand) Name() string { return "read_multi" }

func (c *readMultiCommand) Help() string {
	return cmdutil.ExpandHelp("assemble one record from several input lines")
}

func (c *readMultiCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("read_multi")

	var n int
	var sepLine string

	fs.Set.IntVar(&n, "n", 0, "number of consecutive lines to assemble into one record")
	fs.Set.StringVar(&sepLine, "s", "", "literal separator line marking the end of each group, instead of a fixed count")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if n <= 0 && sepLine == "" {
		return fail(stderr, csverr.New("read_multi requires -n or -s"))
	}
	if n > 0 && sepLine != "" {
		return fail(stderr, csverr.New("-n and -s are mutually exclusive"))
	}

	var group []string

	flush := func() error {
		if len(group) == 0 {
			return nil
		}

		if err := m.WriteRecord(group, false); err != nil {
			return err
		}

		group = nil

		return nil
	}

	for {
		_, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		var ready bool
		group, ready = appendMultiLine(group, m.CurrentRawInput(), n, sepLine)

		if ready {
			if err := flush(); err != nil {
				return fail(stderr, err)
			}
		}
	}

	if err := flush(); err != nil {
		return fail(stderr, err)
	}

	return 0
}

// appendMultiLine adds line to group under read_multi's assembly
// rule, reporting whether the group is now complete and should be
// flushed. In separator mode, a line equal to sepLine completes the
// group without itself being appended.
func appendMultiLine(group []string, line string, n int, sepLine string) ([]string, bool) {
	if sepLine != "" {
		if line == sepLine {
			return group, true
		}

		return append(group, line), false
	}

	group = append(group, line)

	return group, len(group) == n
}
