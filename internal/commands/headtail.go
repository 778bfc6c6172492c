package commands

import (
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("head", func() registry.Command { return &headCommand{} })
	registry.Register("tail", func() registry.Command { return &tailCommand{} })
}

const defaultHeadTailCount = 10

// headCommand emits the first N records (default 10) and stops
// reading once they have been emitted.
type headCommand struct{}

func (c *headCommand) Name() string { return "head" }

func (c *headCommand) Help() string {
	return cmdutil.ExpandHelp("list the first N CSV records (default 10)#ALL")
}

func (c *headCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("head")

	var n int
	fs.Set.IntVar(&n, "n", defaultHeadTailCount, "number of records to emit")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	for i := 0; i < n; i++ {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}
		if err := m.WriteRecord(rec, false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}

// tailCommand buffers the last N records in a ring buffer and emits
// them at EOF.
type tailCommand struct{}

func (c *tailCommand) Name() string { return "tail" }

func (c *tailCommand) Help() string {
	return cmdutil.ExpandHelp("list the last N CSV records (default 10)#ALL")
}

func (c *tailCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("tail")

	var n int
	fs.Set.IntVar(&n, "n", defaultHeadTailCount, "number of records to emit")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if n <= 0 {
		return fail(stderr, csverr.New("-n must be positive"))
	}

	ring := make([][]string, 0, n)
	next := 0

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		cp := append([]string{}, rec...)

		if len(ring) < n {
			ring = append(ring, cp)
		} else {
			ring[next] = cp
			next = (next + 1) % n
		}
	}

	for i := 0; i < len(ring); i++ {
		idx := (next + i) % len(ring)
		if err := m.WriteRecord(ring[idx], false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}
