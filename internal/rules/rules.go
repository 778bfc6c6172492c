/*
Package rules implements the validation rule engine (C8) backing the
validate command: a rule factory keyed by rule name, a base
per-field Apply/Validate contract, and every rule variant named in
spec.md §4.8.
*/
package rules

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/datefmt"
)

// A Result describes one validation failure.
type Result struct {
	FieldIndex int // zero-based; -1 for record-level failures
	Message    string
}

// A Rule validates records. Field-oriented rules only need to
// implement validateField; Apply's default behavior iterates Fields
// and calls it. Cross-field rules (fields, lookup) override Apply
// directly.
type Rule interface {
	Apply(record []string) []Result
}

// fieldRule is the common base most rules embed: it walks Fields and
// calls validateField once per listed index that exists in the
// record, matching spec.md §4.8's description of the base class.
type fieldRule struct {
	Fields        []int
	validateField func(index int, value string) *Result
}

func (r *fieldRule) Apply(record []string) []Result {
	var results []Result

	for _, i := range r.Fields {
		if i < 0 || i >= len(record) {
			continue
		}

		if res := r.validateField(i, record[i]); res != nil {
			results = append(results, *res)
		}
	}

	return results
}

// Factory constructs a Rule from its directive name and parameters
// (everything after the rule name on its config line).
type Factory func(fields []int, params []string) (Rule, error)

var factories = map[string]Factory{
	"required":  newRequiredRule,
	"notempty":  newNotEmptyRule,
	"values":    newValuesRule,
	"notvalues": newNotValuesRule,
	"numeric":   newNumericRule,
	"length":    newLengthRule,
	"fields":    newFieldsRule,
	"lookup":    newLookupRule,
	"date":      newDateRule,
}

// New constructs the rule named by name, applied to fields, with the
// given trailing parameters.
func New(name string, fields []int, params []string) (Rule, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, csverr.Newf("unknown validation rule %q", name)
	}

	return factory(fields, params)
}

// newRequiredRule implements `required`: each listed index must exist
// in the record. This is the one rule that cares about an index being
// out of range, so it bypasses fieldRule (which silently skips
// out-of-range indexes) and walks Fields itself.
func newRequiredRule(fields []int, _ []string) (Rule, error) {
	return &recordRule{apply: func(record []string) []Result {
		var results []Result

		for _, i := range fields {
			if i < 0 || i >= len(record) {
				results = append(results, Result{FieldIndex: i, Message: "required field is missing"})
			}
		}

		return results
	}}, nil
}

func newNotEmptyRule(fields []int, _ []string) (Rule, error) {
	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			if strings.TrimSpace(v) == "" {
				return &Result{FieldIndex: i, Message: "field must not be empty"}
			}

			return nil
		},
	}, nil
}

func newValuesRule(fields []int, params []string) (Rule, error) {
	if len(params) == 0 {
		return nil, csverr.New("values rule requires at least one literal")
	}

	set := toSet(params)

	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			if !set[v] {
				return &Result{FieldIndex: i, Message: "field value not in allowed list"}
			}

			return nil
		},
	}, nil
}

func newNotValuesRule(fields []int, params []string) (Rule, error) {
	if len(params) == 0 {
		return nil, csverr.New("notvalues rule requires at least one literal")
	}

	set := toSet(params)

	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			if set[v] {
				return &Result{FieldIndex: i, Message: "field value is disallowed"}
			}

			return nil
		},
	}, nil
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}

	return set
}

type numRange struct{ lo, hi float64 }

func newNumericRule(fields []int, params []string) (Rule, error) {
	var ranges []numRange

	for _, p := range params {
		lo, hi, ok := strings.Cut(p, ":")
		if !ok {
			return nil, csverr.Newf("invalid numeric range %q", p)
		}

		loF, err1 := strconv.ParseFloat(lo, 64)
		hiF, err2 := strconv.ParseFloat(hi, 64)
		if err1 != nil || err2 != nil || loF > hiF {
			return nil, csverr.Newf("invalid numeric range %q", p)
		}

		ranges = append(ranges, numRange{lo: loF, hi: hiF})
	}

	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return &Result{FieldIndex: i, Message: "field is not numeric"}
			}

			if len(ranges) == 0 {
				return nil
			}

			for _, r := range ranges {
				if n >= r.lo && n <= r.hi {
					return nil
				}
			}

			return &Result{FieldIndex: i, Message: "numeric value out of range"}
		},
	}, nil
}

func newLengthRule(fields []int, params []string) (Rule, error) {
	if len(params) != 1 {
		return nil, csverr.New("length rule requires a single lo:hi range")
	}

	lo, hi, err := parseIntRange(params[0])
	if err != nil {
		return nil, err
	}
	if lo < 0 || lo > hi {
		return nil, csverr.Newf("invalid length range %q", params[0])
	}

	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			n := len(v)
			if n < lo || n > hi {
				return &Result{FieldIndex: i, Message: "field length out of range"}
			}

			return nil
		},
	}, nil
}

// recordRule is a Rule whose semantics are record-level rather than
// per-field; it bypasses fieldRule entirely.
type recordRule struct {
	apply func(record []string) []Result
}

func (r *recordRule) Apply(record []string) []Result { return r.apply(record) }

func newFieldsRule(_ []int, params []string) (Rule, error) {
	if len(params) != 1 {
		return nil, csverr.New("fields rule requires a single min:max range")
	}

	lo, hi, err := parseIntRange(params[0])
	if err != nil {
		return nil, err
	}
	if lo < 1 || lo > hi {
		return nil, csverr.Newf("invalid field-count range %q", params[0])
	}

	return &recordRule{apply: func(record []string) []Result {
		n := len(record)
		if n < lo || n > hi {
			return []Result{{FieldIndex: -1, Message: "record field count out of range"}}
		}

		return nil
	}}, nil
}

func parseIntRange(spec string) (lo, hi int, err error) {
	loStr, hiStr, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, 0, csverr.Newf("invalid range %q", spec)
	}

	lo, err1 := strconv.Atoi(loStr)
	hi, err2 := strconv.Atoi(hiStr)
	if err1 != nil || err2 != nil {
		return 0, 0, csverr.Newf("invalid range %q", spec)
	}

	return lo, hi, nil
}

// newLookupRule implements `lookup JOINSPEC FILE`: JOINSPEC is
// `a1:b1,a2:b2,...` where a* are record field indexes and b* are
// fields of FILE; the composite key from the record's a-fields must
// exist among the keys built from FILE's rows' b-fields. FILE is
// loaded once, eagerly, as plain comma-separated rows (not run through
// the full CSV parser, since lookup files are a simple auxiliary data
// set, not a full CSV document in the corpus of commands that use
// them).
func newLookupRule(_ []int, params []string) (Rule, error) {
	if len(params) != 2 {
		return nil, csverr.New("lookup rule requires JOINSPEC and FILE")
	}

	aFields, bFields, err := parseJoinSpec(params[0])
	if err != nil {
		return nil, err
	}

	keys, err := loadLookupKeys(params[1], bFields)
	if err != nil {
		return nil, err
	}

	return &recordRule{apply: func(record []string) []Result {
		key, ok := buildKey(record, aFields)
		if !ok {
			return []Result{{FieldIndex: -1, Message: "lookup field index out of range"}}
		}

		if !keys[key] {
			return []Result{{FieldIndex: -1, Message: "lookup key not found"}}
		}

		return nil
	}}, nil
}

func parseJoinSpec(spec string) (aFields, bFields []int, err error) {
	for _, pair := range strings.Split(spec, ",") {
		a, b, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, nil, csverr.Newf("invalid join spec %q", spec)
		}

		an, err1 := strconv.Atoi(a)
		bn, err2 := strconv.Atoi(b)
		if err1 != nil || err2 != nil || an < 1 || bn < 1 {
			return nil, nil, csverr.Newf("invalid join spec %q", spec)
		}

		aFields = append(aFields, an-1)
		bFields = append(bFields, bn-1)
	}

	return aFields, bFields, nil
}

func loadLookupKeys(path string, bFields []int) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, csverr.Newf("cannot open lookup file %q: %v", path, err)
	}
	defer f.Close()

	keys := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")

		key, ok := buildKey(fields, bFields)
		if ok {
			keys[key] = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, csverr.Newf("reading lookup file %q: %v", path, err)
	}

	return keys, nil
}

func buildKey(fields []string, indexes []int) (string, bool) {
	parts := make([]string, len(indexes))

	for i, idx := range indexes {
		if idx < 0 || idx >= len(fields) {
			return "", false
		}

		parts[i] = fields[idx]
	}

	return strings.Join(parts, "\x1f"), true
}

// newDateRule implements `date MASK [RANGE]`.
func newDateRule(fields []int, params []string) (Rule, error) {
	if len(params) < 1 {
		return nil, csverr.New("date rule requires a MASK")
	}

	mask, err := datefmt.ParseMask(params[0])
	if err != nil {
		return nil, err
	}

	var lo, hi string
	hasRange := false

	if len(params) >= 2 {
		loStr, hiStr, ok := strings.Cut(params[1], ":")
		if !ok {
			return nil, csverr.Newf("invalid date range %q", params[1])
		}
		lo, hi = loStr, hiStr
		hasRange = true
	}

	return &fieldRule{
		Fields: fields,
		validateField: func(i int, v string) *Result {
			d, err := mask.Parse(v)
			if err != nil {
				return &Result{FieldIndex: i, Message: "field is not a valid date"}
			}

			if hasRange {
				iso := d.ISO()
				if iso < lo || iso > hi {
					return &Result{FieldIndex: i, Message: "date out of range"}
				}
			}

			return nil
		},
	}, nil
}
