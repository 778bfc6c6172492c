// Package csverr defines the diagnostic error type shared by csvfix's
// parsers and commands.
package csverr

import "fmt"

// A Diagnostic is an error that carries the source file name and,
// where meaningful, the 1-based line number at which it occurred.
// Its Error method renders the "ERROR: " prefix required of every
// top-level diagnostic.
type Diagnostic struct {
	File    string // source file name, empty if not applicable
	Line    int    // 1-based line number, zero if not applicable
	Message string
}

func (d *Diagnostic) Error() string {
	switch {
	case d.File != "" && d.Line > 0:
		return fmt.Sprintf("ERROR: %s: line %d: %s", d.File, d.Line, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("ERROR: line %d: %s", d.Line, d.Message)
	default:
		return "ERROR: " + d.Message
	}
}

// New returns a plain diagnostic with no positional information.
func New(message string) error {
	return &Diagnostic{Message: message}
}

// Newf is like New but formats its message like fmt.Sprintf.
func Newf(format string, args ...any) error {
	return &Diagnostic{Message: fmt.Sprintf(format, args...)}
}

// AtLine returns a diagnostic positioned at file/line.
func AtLine(file string, line int, message string) error {
	return &Diagnostic{File: file, Line: line, Message: message}
}

// AtLinef is like AtLine but formats its message like fmt.Sprintf.
func AtLinef(file string, line int, format string, args ...any) error {
	return &Diagnostic{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}
