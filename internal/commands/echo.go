package commands

import (
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("echo", func() registry.Command { return &echoCommand{} })
}

// echoCommand copies input to output unchanged. Its main purpose is
// exercising the I/O manager.
type echoCommand struct{}

func (c *echoCommand) Name() string { return "echo" }

func (c *echoCommand) Help() string {
	return cmdutil.ExpandHelp("copy CSV input to output unchanged#ALL")
}

func (c *echoCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("echo")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if err := runFilterLoop(m, fs, func(rec []string) ([]string, error) { return rec, nil }); err != nil {
		return fail(stderr, err)
	}

	return 0
}
