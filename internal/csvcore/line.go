/*
Package csvcore implements the CSV line parser (C1), stream parser
(C2) and syntax checker (C3) described by the csvfix specification.

It is a hand-rolled quote-aware state machine rather than a wrapper
around encoding/csv, because the stream parser and checker need
access encoding/csv does not expose: per-record line numbers, the
raw pre-split line text, a configurable separator-validity rule, and
distinct error classes for malformed input.
*/
package csvcore

import "strings"

// A Record is an ordered sequence of fields. A Record read by the
// stream parser always has at least one field, even if that field is
// the empty string.
type Record []string

// IsValidSeparator reports whether b can be used as a CSV field
// separator. A separator may not be alphanumeric, whitespace, or the
// quote character.
func IsValidSeparator(b byte) bool {
	switch {
	case b == '"':
		return false
	case '0' <= b && b <= '9':
		return false
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z':
		return false
	case b == ' ', b == '\t', b == '\n', b == '\r', b == '\v', b == '\f':
		return false
	default:
		return true
	}
}

// ErrUnterminatedQuote is returned by ParseLine when a quoted field is
// not closed before the line ends.
var ErrUnterminatedQuote = strErr("unterminated quoted field")

// ErrUnexpectedQuote is returned by ParseLine, in strict mode, when a
// quote character appears inside an unquoted field.
var ErrUnexpectedQuote = strErr("unexpected quote in unquoted field")

type strErr string

func (e strErr) Error() string { return string(e) }

// ParseLine splits one already-assembled logical line (any newlines
// that belong inside quoted fields are already embedded in line) into
// a Record, using sep as the field separator.
//
// strict, when true, rejects a bare quote appearing inside an
// unquoted field instead of treating it as a literal byte; the stream
// parser (C2) calls with strict=false to match real-world laxness,
// the checker (C3) calls with strict=true.
//
// A trailing separator produces a trailing empty field. A line with
// no separator at all still yields one field.
func ParseLine(line string, sep byte, strict bool) (Record, error) {
	var (
		rec Record
		i   = 0
		n   = len(line)
	)

	for {
		field, ni, err := scanField(line, i, sep, strict)
		if err != nil {
			return nil, err
		}
		i = ni

		rec = append(rec, field)

		if i >= n {
			break
		}
		// i is at the separator: consume it. A separator as the very
		// last byte leaves one more, empty, trailing field.
		i++
		if i >= n {
			rec = append(rec, "")
			break
		}
	}

	return rec, nil
}

// scanField scans one field starting at i and returns its content and
// the index of the separator that ended it, or len(line) if the field
// ran to end of line. A field beginning with a quote is unescaped per
// the doubled-quote rule; if trailing bytes follow the closing quote
// before the next separator, they are appended to the field literally
// (real-world CSV producers occasionally emit "a"b,c and expect ab).
func scanField(line string, i int, sep byte, strict bool) (field string, next int, err error) {
	n := len(line)
	if i >= n || line[i] != '"' {
		return scanUnquotedField(line, i, sep, strict)
	}

	var b strings.Builder
	i++
	for {
		if i >= n {
			return "", 0, ErrUnterminatedQuote
		}
		if line[i] == '"' {
			if i+1 < n && line[i+1] == '"' {
				b.WriteByte('"')
				i += 2
				continue
			}
			i++
			break
		}
		b.WriteByte(line[i])
		i++
	}

	for i < n && line[i] != sep {
		b.WriteByte(line[i])
		i++
	}

	return b.String(), i, nil
}

// scanUnquotedField scans an unquoted field starting at i. It returns
// the field's content and the index of the separator that ended it,
// or len(line) if the field ran to end of line.
func scanUnquotedField(line string, i int, sep byte, strict bool) (field string, next int, err error) {
	start := i
	n := len(line)

	for i < n && line[i] != sep {
		if strict && line[i] == '"' {
			return "", 0, ErrUnexpectedQuote
		}
		i++
	}

	return line[start:i], i, nil
}
