package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
	"github.com/nbutterworth/csvfix/internal/rules"
)

func init() {
	registry.Register("validate", func() registry.Command { return &validateCommand{} })
}

// validateCommand applies the rule engine (C8) to every record,
// reading one rule per line from a rule file: "name field-list
// [params...]" where field-list is the same comma/range syntax
// accepted everywhere else. A record fails iff any rule produces a
// result for it. Reporting policy: pass (default, pass every record
// through and report failures to stderr), bad (emit only failing
// records), good (emit only passing records).
type validateCommand struct{}

func (c *validateCommand) Name() string { return "validate" }

func (c *validateCommand) Help() string {
	return cmdutil.ExpandHelp("validate CSV records against a rule file#ALL,SKIP,PASS")
}

func (c *validateCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("validate")

	var ruleFile, policyName string

	fs.Set.StringVar(&ruleFile, "r", "", "path to the rule file")
	fs.Set.StringVar(&policyName, "p", "pass", "reporting policy: pass, good, bad")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	if ruleFile == "" {
		return fail(stderr, csverr.New("-r is required"))
	}

	ruleSet, err := loadRuleFile(ruleFile)
	if err != nil {
		return fail(stderr, err)
	}

	for {
		rec, err := m.ReadRecord()
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
			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}

			continue
		}

		var results []rules.Result
		for _, r := range ruleSet {
			results = append(results, r.Apply(rec)...)
		}

		ok := len(results) == 0

		if policyName == "pass" {
			for _, res := range results {
				fmt.Fprintf(stderr, "validation failed, field %d: %s\n", res.FieldIndex+1, res.Message)
			}

			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}

			continue
		}

		write := (policyName == "good" && ok) || (policyName == "bad" && !ok)
		if write {
			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}
		}
	}

	return 0
}

func loadRuleFile(path string) ([]rules.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, csverr.Newf("cannot open rule file %q: %v", path, err)
	}
	defer f.Close()

	var ruleSet []rules.Rule

	lineNo := 0
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fieldsStr := strings.Fields(line)
		if len(fieldsStr) < 2 {
			return nil, csverr.AtLine(path, lineNo, "rule directive needs a name and a field list")
		}

		name := fieldsStr[0]

		fields, err := cmdutil.ParseFieldList(fieldsStr[1])
		if err != nil {
			return nil, csverr.AtLine(path, lineNo, err.Error())
		}

		params := fieldsStr[2:]

		rule, err := rules.New(name, fields, params)
		if err != nil {
			return nil, csverr.AtLine(path, lineNo, err.Error())
		}

		ruleSet = append(ruleSet, rule)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ruleSet, nil
}
