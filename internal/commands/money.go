package commands

import (
	"io"
	"strconv"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/registry"
)

func init() {
	registry.Register("money", func() registry.Command { return &moneyCommand{} })
}

// moneyCommand formats numeric fields as currency. Non-numeric fields
// pass through unchanged.
type moneyCommand struct{}

func (c *moneyCommand) Name() string { return "money" }

func (c *moneyCommand) Help() string {
	return cmdutil.ExpandHelp("format CSV fields as currency#ALL,SKIP,PASS")
}

type moneyFormat struct {
	decimalPoint  string
	thousandsSep  string
	currencySym   string
	positivePfx   string
	negativePfx   string
	width         int
	centsInput    bool
}

func (c *moneyCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("money")

	var fieldsRaw string
	var format moneyFormat

	fs.Set.StringVar(&fieldsRaw, "f", "", "fields to format as currency (default: all fields)")
	fs.Set.StringVar(&format.decimalPoint, "dp", ".", "decimal point character")
	fs.Set.StringVar(&format.thousandsSep, "ts", "", "thousands separator character (default: none)")
	fs.Set.StringVar(&format.currencySym, "cs", "", "currency symbol prefix")
	fs.Set.StringVar(&format.positivePfx, "pp", "", "positive value prefix")
	fs.Set.StringVar(&format.negativePfx, "np", "-", "negative value prefix")
	fs.Set.IntVar(&format.width, "w", 0, "fixed field width, right-aligned (0 means no padding)")
	fs.Set.BoolVar(&format.centsInput, "cn", false, "treat the input value as an integer number of cents")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	var fields []int
	if fieldsRaw != "" {
		fields, err = cmdutil.ParseFieldList(fieldsRaw)
		if err != nil {
			return fail(stderr, err)
		}
	}

	err = runFilterLoop(m, fs, func(rec []string) ([]string, error) {
		out := append([]string{}, rec...)

		if len(fields) == 0 {
			for i, v := range out {
				out[i] = formatMoney(v, format)
			}

			return out, nil
		}

		for _, idx := range fields {
			if idx >= 0 && idx < len(out) {
				out[idx] = formatMoney(out[idx], format)
			}
		}

		return out, nil
	})
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

func formatMoney(v string, f moneyFormat) string {
	trimmed := strings.TrimSpace(v)

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return v
	}

	if f.centsInput {
		n /= 100
	}

	negative := n < 0
	if negative {
		n = -n
	}

	whole := int64(n)
	fraction := int64((n-float64(whole))*100 + 0.5)
	if fraction >= 100 {
		whole++
		fraction -= 100
	}

	wholeStr := strconv.FormatInt(whole, 10)
	if f.thousandsSep != "" {
		wholeStr = groupThousands(wholeStr, f.thousandsSep)
	}

	decimalPoint := f.decimalPoint
	if decimalPoint == "" {
		decimalPoint = "."
	}

	fracStr := strconv.FormatInt(fraction, 10)
	if len(fracStr) < 2 {
		fracStr = "0" + fracStr
	}

	prefix := f.positivePfx
	if negative {
		prefix = f.negativePfx
	}

	result := f.currencySym + prefix + wholeStr + decimalPoint + fracStr

	if f.width > len(result) {
		result = strings.Repeat(" ", f.width-len(result)) + result
	}

	return result
}

func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var groups []string
	for n > 3 {
		groups = append([]string{digits[n-3:]}, groups...)
		digits = digits[:n-3]
		n = len(digits)
	}
	groups = append([]string{digits}, groups...)

	return strings.Join(groups, sep)
}
