package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/ioman"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("join", func() registry.Command { return &joinCommand{} })
}

// joinCommand treats the last input source as the right-hand table and
// all preceding sources as the left-hand stream, equi-joining on a
// list of left:right index pairs. Right rows are indexed once into a
// hash multimap; left rows are then probed in order.
type joinCommand struct{}

func (c *joinCommand) Name() string { return "join" }

func (c *joinCommand) Help() string {
	return cmdutil.ExpandHelp("join two CSV sources on matching key fields#ALL,SKIP,PASS")
}

type joinKeyPair struct {
	left, right int
}

func (c *joinCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("join")

	var fieldsRaw string
	var outer, invert, ignoreCase, keepKey bool

	fs.Set.StringVar(&fieldsRaw, "f", "", "comma-separated left:right index pairs (required)")
	fs.Set.BoolVar(&outer, "outer", false, "also emit unjoined left rows, unchanged")
	fs.Set.BoolVar(&invert, "invert", false, "emit only left rows with no match (mutually exclusive with -outer)")
	fs.Set.BoolVar(&ignoreCase, "ic", false, "compare keys case-insensitively")
	fs.Set.BoolVar(&keepKey, "kr", false, "retain the right-hand key fields in the joined output")

	if err := fs.Parse(args); err != nil {
		return fail(stderr, err)
	}

	if outer && invert {
		return fail(stderr, csverr.New("-outer and -invert are mutually exclusive"))
	}

	pairs, err := parseJoinKeyPairs(fieldsRaw)
	if err != nil {
		return fail(stderr, err)
	}

	if len(fs.Files) < 2 {
		return fail(stderr, csverr.New("join requires at least a left-hand source and a right-hand source"))
	}

	leftFiles := fs.Files[:len(fs.Files)-1]
	rightFile := fs.Files[len(fs.Files)-1]

	rightOpts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		return fail(stderr, err)
	}
	rightOpts.Files = []string{rightFile}

	rightMgr, err := ioman.New(rightOpts)
	if err != nil {
		return fail(stderr, err)
	}

	index := map[string][][]string{}

	for {
		rec, err := rightMgr.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			rightMgr.Close()
			return fail(stderr, err)
		}

		key := joinKey(rec, pairsRightIndexes(pairs), ignoreCase)
		index[key] = append(index[key], rec)
	}
	rightMgr.Close()

	leftOpts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		return fail(stderr, err)
	}
	leftOpts.Files = leftFiles

	leftMgr, err := ioman.New(leftOpts)
	if err != nil {
		return fail(stderr, err)
	}

	outOpts, err := ioman.OptionsFromFlags(fs)
	if err != nil {
		leftMgr.Close()
		return fail(stderr, err)
	}
	outOpts.Files = nil

	out, err := ioman.New(outOpts)
	if err != nil {
		leftMgr.Close()
		return fail(stderr, err)
	}
	defer out.Close()
	defer leftMgr.Close()

	for {
		rec, err := leftMgr.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		skip, err := fs.Skip(rec)
		if err != nil {
			return fail(stderr, err)
		}
		if skip {
			continue
		}

		pass, err := fs.Pass(rec)
		if err != nil {
			return fail(stderr, err)
		}
		if pass {
			if err := out.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}
			continue
		}

		key := joinKey(rec, pairsLeftIndexes(pairs), ignoreCase)
		matches := index[key]

		if len(matches) == 0 {
			if unmatched, write := joinUnmatchedOutput(rec, invert, outer); write {
				if err := out.WriteRecord(unmatched, false); err != nil {
					return fail(stderr, err)
				}
			}
			continue
		}

		if invert {
			continue
		}

		for _, rightRec := range matches {
			joined := buildJoinedRecord(rec, rightRec, pairs, keepKey)

			if err := out.WriteRecord(joined, false); err != nil {
				return fail(stderr, err)
			}
		}
	}

	return 0
}

// joinUnmatchedOutput decides what a left row with no right-hand match
// produces: with -outer or -invert it is written as-is, unpadded; with
// neither flag it is dropped.
func joinUnmatchedOutput(rec []string, invert, outer bool) ([]string, bool) {
	if invert || outer {
		return rec, true
	}

	return nil, false
}

func parseJoinKeyPairs(spec string) ([]joinKeyPair, error) {
	if spec == "" {
		return nil, csverr.New("-f is required (comma-separated left:right index pairs)")
	}

	var pairs []joinKeyPair

	for _, tok := range strings.Split(spec, ",") {
		l, r, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, csverr.Newf("invalid join key pair %q (want left:right)", tok)
		}

		left, err := cmdutil.ParseFieldList(l)
		if err != nil || len(left) != 1 {
			return nil, csverr.Newf("invalid left index in pair %q", tok)
		}

		right, err := cmdutil.ParseFieldList(r)
		if err != nil || len(right) != 1 {
			return nil, csverr.Newf("invalid right index in pair %q", tok)
		}

		pairs = append(pairs, joinKeyPair{left: left[0], right: right[0]})
	}

	return pairs, nil
}

func pairsLeftIndexes(pairs []joinKeyPair) []int {
	out := make([]int, len(pairs))
	for i, p := range pairs {
		out[i] = p.left
	}

	return out
}

func pairsRightIndexes(pairs []joinKeyPair) []int {
	out := make([]int, len(pairs))
	for i, p := range pairs {
		out[i] = p.right
	}

	return out
}

func joinKey(rec []string, fields []int, ignoreCase bool) string {
	parts := make([]string, len(fields))

	for i, f := range fields {
		v := ""
		if f >= 0 && f < len(rec) {
			v = rec[f]
		}
		if ignoreCase {
			v = strings.ToLower(v)
		}

		parts[i] = v
	}

	return strings.Join(parts, "\x1f")
}

func buildJoinedRecord(left, right []string, pairs []joinKeyPair, keepKey bool) []string {
	rightKeySet := map[int]bool{}
	for _, p := range pairs {
		rightKeySet[p.right] = true
	}

	joined := append([]string{}, left...)

	for i, v := range right {
		if !keepKey && rightKeySet[i] {
			continue
		}

		joined = append(joined, v)
	}

	return joined
}
