package csvcore

import (
	"bufio"
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
)

// CheckerOptions configure a Checker (C3).
type CheckerOptions struct {
	Separator         byte
	AllowEmbeddedNewline bool // when false, a newline inside a quoted field is an error
}

// A Checker is a pure-validation variant of Stream that reports
// precise syntactic errors: an unexpected quote inside an unquoted
// field, an embedded newline inside a quoted field when that is
// disallowed, or end of stream inside a quoted field.
type Checker struct {
	r        *bufio.Reader
	opts     CheckerOptions
	sep      byte
	fileName string
	line     int
	atEOF    bool
}

// NewChecker returns a Checker reading from r, reporting fileName in
// its diagnostics.
func NewChecker(r io.Reader, fileName string, opts CheckerOptions) *Checker {
	sep := opts.Separator
	if sep == 0 {
		sep = ','
	}

	return &Checker{
		r:        bufio.NewReader(r),
		opts:     opts,
		sep:      sep,
		fileName: fileName,
	}
}

// Next returns the next Record, or nil, io.EOF at a clean end of
// stream. A malformed record returns a *csverr.Diagnostic carrying
// the file name, 1-based line number, and the offending line text.
func (c *Checker) Next() (Record, error) {
	if c.atEOF {
		return nil, io.EOF
	}

	line, ok, err := c.readLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}

	rec, perr := ParseLine(line, c.sep, true)
	if perr != nil {
		switch perr {
		case ErrUnterminatedQuote:
			return nil, csverr.AtLine(c.fileName, c.line, "unterminated quoted field: "+line)
		case ErrUnexpectedQuote:
			return nil, csverr.AtLine(c.fileName, c.line, "unexpected quote in unquoted field: "+line)
		default:
			return nil, csverr.AtLine(c.fileName, c.line, perr.Error()+": "+line)
		}
	}

	return rec, nil
}

// readLine reads one logical line the same way Stream does, except it
// rejects an embedded newline inside a quoted field when
// AllowEmbeddedNewline is false, and an unclosed quote at end of
// stream.
func (c *Checker) readLine() (string, bool, error) {
	inQuoted := false

	var b strings.Builder

	for {
		ch, rerr := c.r.ReadByte()
		if rerr != nil {
			c.atEOF = true
			if inQuoted {
				return "", false, csverr.AtLine(c.fileName, c.line+1, "end of input inside quoted field: "+b.String())
			}
			if b.Len() == 0 {
				return "", false, nil
			}

			return b.String(), true, nil
		}

		if ch == '\r' {
			continue
		}

		if ch == '\n' {
			if inQuoted {
				c.line++
				if !c.opts.AllowEmbeddedNewline {
					return "", false, csverr.AtLine(c.fileName, c.line, "embedded newline in quoted field not allowed: "+b.String())
				}

				b.WriteByte(ch)

				continue
			}

			c.line++

			return b.String(), true, nil
		}

		b.WriteByte(ch)

		if ch == '"' {
			inQuoted = !inQuoted
		}
	}
}
