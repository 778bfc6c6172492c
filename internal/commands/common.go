/*
Package commands implements the transform commands (C12) named in
spec.md §4.11. Each command lives in its own file and registers itself
with internal/registry from an init function, the way database/sql
drivers register themselves from the driver package's init.
*/
package commands

import (
	"fmt"
	"io"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/ioman"
)

// openManager parses args against fs and constructs an ioman.Manager
// from the result, the setup every command performs before its own
// transform loop.
func openManager(fs *cmdutil.FlagSet, args []string) (*ioman.Manager, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		return nil, err
	}

	return ioman.New(opts)
}

// fail prints err to stderr in diagnostic form and returns the
// standard failure exit status.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)

	return 1
}

// runFilterLoop reads every record from m, applies skip/pass via fs,
// transforms each surviving record with transform, and writes the
// result. It is the shared body of every record-in-record-out
// command.
func runFilterLoop(m *ioman.Manager, fs *cmdutil.FlagSet, transform func(record []string) ([]string, error)) error {
	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		skip, err := fs.Skip(rec)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		out := []string(rec)

		pass, err := fs.Pass(rec)
		if err != nil {
			return err
		}
		if !pass {
			out, err = transform(rec)
			if err != nil {
				return err
			}
		}

		if err := m.WriteRecord(out, false); err != nil {
			return err
		}
	}
}
