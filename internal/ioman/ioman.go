/*
Package ioman implements the I/O manager (C4): it owns the ordered
list of input sources and the single output sink, presents a unified
record iterator over them, enforces the output quoting policy, and
fires stream-change events to registered observers.
*/
package ioman

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csvcore"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/expr"
)

// Observer is notified each time the Manager begins reading from a
// new input source. No command registers an Observer; the order
// command's -fn names are resolved once, against the first record it
// reads, and are not re-resolved when a new source begins.
type Observer interface {
	OnNewSource(fileName string, stream *csvcore.Stream)
}

// Options configure a Manager, mirroring the universal flags in
// spec.md §4.4.
type Options struct {
	Files            []string // positional arguments; "-" means stdin, allowed once
	Output           string   // output file name, empty means standard output
	IgnoreBlankLines bool
	SkipHeaderRecord bool
	SmartQuote       bool
	QuoteFieldsSet   bool // whether -sqf was given at all
	QuoteFields      []int
	Separator        byte // input separator, default ','
	RetainSeparator  bool
	OutputSeparator  byte // 0 means unset
	HasOutputSep     bool
	Header           string
}

// A Manager multiplexes Options.Files into a single record stream and
// writes records to the configured output sink, applying the output
// quoting policy described by spec.md §4.4.
type Manager struct {
	opts Options

	sources   []string
	srcIndex  int
	curFile   string
	curStream *csvcore.Stream
	stdinUsed bool

	out       io.Writer
	outCloser io.Closer
	wroteHdr  bool

	observers []Observer

	quoteSet map[int]bool
}

// OptionsFromFlags builds Options from a parsed cmdutil.FlagSet,
// the common wiring every command performs before constructing a
// Manager.
func OptionsFromFlags(fs *cmdutil.FlagSet) (Options, error) {
	sep, retain, err := fs.EffectiveSeparator()
	if err != nil {
		return Options{}, err
	}

	outSep, hasOutSep, err := fs.OutputSeparator()
	if err != nil {
		return Options{}, err
	}

	quoteFields, quoteSet, err := fs.QuoteFields()
	if err != nil {
		return Options{}, err
	}

	if seed, ok, err := fs.SeedValue(); err != nil {
		return Options{}, err
	} else if ok {
		expr.SetRNGSeed(seed)
	}

	return Options{
		Files:            fs.Files,
		Output:           fs.Output,
		IgnoreBlankLines: fs.IgnoreBlank,
		SkipHeaderRecord: fs.SkipHeader,
		SmartQuote:       fs.SmartQuote,
		QuoteFieldsSet:   quoteSet,
		QuoteFields:      quoteFields,
		Separator:        sep,
		RetainSeparator:  retain,
		OutputSeparator:  outSep,
		HasOutputSep:     hasOutSep,
		Header:           fs.Header,
	}, nil
}

// New constructs a Manager from opts, opening the output sink
// immediately. Input sources are opened lazily by ReadRecord, so a
// missing input file is reported by the ReadRecord call that reaches
// it rather than by New.
func New(opts Options) (*Manager, error) {
	m := &Manager{opts: opts}

	if opts.Separator == 0 {
		m.opts.Separator = ','
	}

	if opts.QuoteFieldsSet {
		m.quoteSet = make(map[int]bool, len(opts.QuoteFields))
		for _, i := range opts.QuoteFields {
			m.quoteSet[i] = true
		}
	}

	m.sources = opts.Files
	if len(m.sources) == 0 {
		m.sources = []string{"-"}
	}

	if err := m.openOutput(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) openOutput() error {
	if m.opts.Output == "" {
		m.out = os.Stdout

		return nil
	}

	f, err := os.Create(m.opts.Output)
	if err != nil {
		return csverr.Newf("cannot open output file %q: %v", m.opts.Output, err)
	}

	m.out = f
	m.outCloser = f

	return nil
}

// AddObserver registers an Observer to be notified on each stream
// transition.
func (m *Manager) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// CurrentFileName returns the name of the source the most recently
// returned record came from.
func (m *Manager) CurrentFileName() string { return m.curFile }

// CurrentLine returns the 1-based line number, within the current
// source, on which the most recently returned record ended.
func (m *Manager) CurrentLine() int {
	if m.curStream == nil {
		return 0
	}

	return m.curStream.LineNumber()
}

// CurrentRawInput returns the raw pre-split text of the logical line
// (embedded newlines included) from which the most recently returned
// record was parsed.
func (m *Manager) CurrentRawInput() string {
	if m.curStream == nil {
		return ""
	}

	return m.curStream.RawLine()
}

// ReadRecord returns the next record across the concatenation of
// input sources, or nil, io.EOF once all sources are exhausted.
func (m *Manager) ReadRecord() (csvcore.Record, error) {
	for {
		if m.curStream == nil {
			opened, err := m.openNextSource()
			if err != nil {
				return nil, err
			}
			if !opened {
				return nil, io.EOF
			}
		}

		rec, err := m.curStream.Next()
		if err == io.EOF {
			m.curStream = nil

			continue
		}
		if err != nil {
			return nil, csverr.AtLinef(m.curFile, m.curStream.LineNumber(), "%v", err)
		}

		return rec, nil
	}
}

// openNextSource advances to the next configured input source,
// returning opened=false once the list is exhausted. A source that
// fails to open is reported as an error immediately rather than
// silently skipped or treated as an empty stream.
func (m *Manager) openNextSource() (opened bool, err error) {
	if m.srcIndex >= len(m.sources) {
		return false, nil
	}

	name := m.sources[m.srcIndex]
	m.srcIndex++

	var r io.Reader

	if name == "-" {
		if m.stdinUsed {
			// A second "-" reads nothing further; treated the same
			// as an already-exhausted source.
			return m.openNextSource()
		}

		m.stdinUsed = true
		r = os.Stdin
	} else {
		f, ferr := os.Open(name)
		if ferr != nil {
			return false, csverr.Newf("cannot open input file %q: %v", name, ferr)
		}

		r = f
	}

	m.curFile = name
	m.curStream = csvcore.NewStream(r, csvcore.StreamOptions{
		Separator:        m.opts.Separator,
		IgnoreBlankLines: m.opts.IgnoreBlankLines,
		SkipHeaderRecord: m.opts.SkipHeaderRecord,
		BuildColumnMap:   len(m.observers) > 0,
	})

	for _, o := range m.observers {
		o.OnNewSource(m.curFile, m.curStream)
	}

	return true, nil
}

// effectiveOutputSeparator returns the separator byte to join output
// fields with, per spec.md §4.4: -osep wins, else the retained input
// separator if -rsep was set, else ','.
func (m *Manager) effectiveOutputSeparator() byte {
	if m.opts.HasOutputSep {
		return m.opts.OutputSeparator
	}
	if m.opts.RetainSeparator {
		return m.opts.Separator
	}

	return ','
}

// WriteRecord writes record to the output sink, applying the
// four-way quoting decision from spec.md §4.4. suppressEscape, when
// true, implements the escape command's mode: fields that need
// quoting are wrapped in quotes without doubling embedded quotes.
func (m *Manager) WriteRecord(record []string, suppressEscape bool) error {
	if m.opts.Header != "" && !m.wroteHdr {
		if _, err := fmt.Fprintln(m.out, m.opts.Header); err != nil {
			return err
		}
	}
	m.wroteHdr = true

	sep := m.effectiveOutputSeparator()

	var b strings.Builder

	for i, field := range record {
		if i > 0 {
			b.WriteByte(sep)
		}

		b.WriteString(m.quoteField(field, i, sep, suppressEscape))
	}

	b.WriteByte('\n')

	_, err := io.WriteString(m.out, b.String())

	return err
}

// quoteField implements the four-way escaping decision from
// spec.md §4.4, in priority order: -sqf wins outright (a listed field
// is always quoted, and -sqf none leaves every field unquoted), then
// smart-quote, then the escape command's suppress-doubling mode, then
// the always-quote default.
func (m *Manager) quoteField(field string, index int, sep byte, suppressEscape bool) string {
	switch {
	case m.quoteSet != nil && len(m.quoteSet) == 0:
		return field

	case m.quoteSet != nil && m.quoteSet[index]:
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`

	case m.opts.SmartQuote && !needsQuoting(field, sep):
		return field

	case suppressEscape:
		return `"` + field + `"`

	default:
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
}

// needsQuoting reports whether field contains the separator or a
// quote character, per the smart-quote test in spec.md §4.4.
func needsQuoting(field string, sep byte) bool {
	return strings.IndexByte(field, sep) >= 0 || strings.ContainsRune(field, '"')
}

// Close closes the output sink if it was a file. Input files opened by
// ReadRecord are not closed, neither here nor when reading moves on to
// the next source; they stay open until the process exits.
func (m *Manager) Close() error {
	if m.outCloser != nil {
		return m.outCloser.Close()
	}

	return nil
}

// Writer exposes the raw output writer for commands (printf,
// template, to_xml) that produce non-CSV text rather than records.
func (m *Manager) Writer() io.Writer { return m.out }
