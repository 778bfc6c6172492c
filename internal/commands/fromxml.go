package commands

import (
	"io"
	"os"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/ioman"
	"github.com/nbutterworth/csvfix/internal/registry"
	"github.com/nbutterworth/csvfix/internal/xmlconv"
)

func init() {
	registry.Register("from_xml", func() registry.Command { return &fromXMLCommand{} })
}

// fromXMLCommand converts an XML document to CSV records, one per
// occurrence of a given record-start tag path.
type fromXMLCommand struct{}

func (c *fromXMLCommand) Name() string { return "from_xml" }

func (c *fromXMLCommand) Help() string {
	return cmdutil.ExpandHelp("convert XML input to CSV records")
}

func (c *fromXMLCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("from_xml")

	var recordPath, excludeRaw, joinSep string
	var includeAttrs bool

	fs.Set.StringVar(&recordPath, "t", "", "record tag path, e.g. root@row")
	fs.Set.BoolVar(&includeAttrs, "a", false, "include the record tag's attributes as leading fields")
	fs.Set.StringVar(&excludeRaw, "x", "", "comma-separated tag paths to exclude, with their subtrees")
	fs.Set.StringVar(&joinSep, "j", "\n", "separator used to join a multi-line text node's lines")

	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}

	if recordPath == "" {
		return fail(stderr, csverr.New("-t is required"))
	}

	var exclude []string
	if excludeRaw != "" {
		exclude = strings.Split(excludeRaw, ",")
	}

	files := fs.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	if len(files) != 1 {
		return fail(stderr, csverr.New("from_xml accepts exactly one input source"))
	}

	var r io.Reader
	if files[0] == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(files[0])
		if err != nil {
			return fail(stderr, csverr.Newf("cannot open input file %q: %v", files[0], err))
		}
		defer f.Close()

		r = f
	}

	records, err := xmlconv.FromXML(r, xmlconv.FromXMLOptions{
		RecordPath:   recordPath,
		IncludeAttrs: includeAttrs,
		ExcludePaths: exclude,
		TextJoinSep:  joinSep,
	})
	if err != nil {
		return fail(stderr, err)
	}

	opts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		return fail(stderr, err)
	}
	opts.Files = nil

	m, err := ioman.New(opts)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	for _, rec := range records {
		if err := m.WriteRecord(rec, false); err != nil {
			return fail(stderr, err)
		}
	}

	return 0
}
