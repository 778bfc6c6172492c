/*
Package registry implements command registration and dispatch (C5):
a name-to-factory table, exact-then-prefix name resolution, and the
no-args/help/usage entry points described by spec.md §4.5.
*/
package registry

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
)

// A Command is a runnable subcommand. Run receives argv with the
// command name already stripped (argv[0] is the first flag or file
// argument) and returns the process exit status.
type Command interface {
	Name() string
	Help() string
	Run(args []string, stdout, stderr io.Writer) int
}

// Factory constructs a fresh Command instance. Commands are
// constructed fresh per invocation so that flag state never leaks
// between runs within the same process (the config loader's alias
// rewriting can in principle invoke more than one command per process
// in future, and tests construct many in a row).
type Factory func() Command

var registry = map[string]Factory{}

// Register adds a command factory under name. It is called from each
// command package's init function. A duplicate name is a programming
// error and panics at startup, the same way the standard library's
// database/sql driver registry panics on a duplicate driver name.
func Register(name string, factory Factory) {
	if _, dup := registry[name]; dup {
		panic("registry: duplicate command name " + name)
	}

	registry[name] = factory
}

// Names returns all registered command names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Resolve finds the command registered under name, or unambiguously
// prefixed by it. An exact match always wins over a prefix match. Zero
// prefix matches is "unknown command"; more than one is an "ambiguous
// command" error listing every candidate.
func Resolve(name string) (Command, error) {
	if factory, ok := registry[name]; ok {
		return factory(), nil
	}

	var candidates []string
	for n := range registry {
		if strings.HasPrefix(n, name) {
			candidates = append(candidates, n)
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return nil, csverr.Newf("unknown command %q", name)
	case 1:
		return registry[candidates[0]](), nil
	default:
		return nil, csverr.Newf("ambiguous command %q: matches %s", name, strings.Join(candidates, ", "))
	}
}

// Info writes the no-args startup banner (spec.md §4.5 step 1) to w
// and returns the process exit status.
func Info(w io.Writer, version string) int {
	fmt.Fprintf(w, "csvfix %s - a stream editor for CSV files\n", version)
	fmt.Fprintln(w, "usage: csvfix COMMAND [FLAGS] [FILE...]")
	fmt.Fprintln(w, "       csvfix help            list commands")
	fmt.Fprintln(w, "       csvfix help COMMAND    show help for COMMAND")

	return 0
}

// Usage writes the list of registered commands with their first help
// line to w (spec.md §4.5 step 2) and returns the process exit status.
func Usage(w io.Writer) int {
	fmt.Fprintln(w, "available commands:")

	for _, name := range Names() {
		help := registry[name]().Help()
		first, _, _ := strings.Cut(help, "\n")
		fmt.Fprintf(w, "  %-14s %s\n", name, first)
	}

	return 0
}

// HelpFor writes the full help text for name to w (spec.md §4.5 step
// 3). An unresolvable name is reported the same way Resolve reports
// it for ordinary dispatch.
func HelpFor(w io.Writer, name string) int {
	cmd, err := Resolve(name)
	if err != nil {
		fmt.Fprintln(w, err)

		return 1
	}

	fmt.Fprintf(w, "%s: %s\n", cmd.Name(), cmd.Help())

	return 0
}
