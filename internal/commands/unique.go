package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("unique", func() registry.Command { return &uniqueCommand{} })
}

// uniqueCommand deduplicates records by a key built from a
// configurable subset of fields (or the whole record). With -d, it
// emits only duplicates, including the first occurrence, at the
// position of the second occurrence.
type uniqueCommand struct{}

func (c *uniqueCommand) Name() string { return "unique" }

func (c *uniqueCommand) Help() string {
	return cmdutil.ExpandHelp("remove duplicate CSV records#ALL")
}

func (c *uniqueCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("unique")

	var keyFieldsRaw string
	var onlyDuplicates bool

	fs.Set.StringVar(&keyFieldsRaw, "f", "", "fields defining the dedupe key (default: whole record)")
	fs.Set.BoolVar(&onlyDuplicates, "d", false, "emit only duplicate records")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	var keyFields []int
	if keyFieldsRaw != "" {
		keyFields, err = cmdutil.ParseFieldList(keyFieldsRaw)
		if err != nil {
			return fail(stderr, err)
		}
	}

	seen := map[string]bool{}
	firstSeenRecord := map[string][]string{}

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		key := uniqueKey(rec, keyFields)
		isDup := seen[key]
		seen[key] = true

		if onlyDuplicates {
			if isDup {
				if prior, ok := firstSeenRecord[key]; ok {
					if err := m.WriteRecord(prior, false); err != nil {
						return fail(stderr, err)
					}
					delete(firstSeenRecord, key)
				}
				if err := m.WriteRecord(rec, false); err != nil {
					return fail(stderr, err)
				}
			} else {
				firstSeenRecord[key] = append([]string{}, rec...)
			}

			continue
		}

		if !isDup {
			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}
		}
	}

	return 0
}

func uniqueKey(rec []string, fields []int) string {
	if len(fields) == 0 {
		return strings.Join(rec, "\x1f")
	}

	parts := make([]string, len(fields))
	for i, idx := range fields {
		if idx >= 0 && idx < len(rec) {
			parts[i] = rec[idx]
		}
	}

	return strings.Join(parts, "\x1f")
}
