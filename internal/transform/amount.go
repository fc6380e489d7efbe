package transform

// amount.go holds the numeric fixes: currency cleanup, accounting negatives,
// K/M/MM/B shorthand, thousands scaling, two-decimal formatting and percent
// handling.
//
// Arithmetic uses shopspring/decimal so that "1.5M" becomes exactly 1500000
// and formatting never goes through a float.

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// numericRegex matches a plain signed decimal after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// amountRegex matches what StripCurrency is allowed to leave behind: a
// decimal, optionally wrapped in accounting parentheses, optionally followed
// by a shorthand multiplier.
var amountRegex = regexp.MustCompile(`^\(?[+-]?(\d+(\.\d*)?|\.\d+)(MM|M|K|B)?\)?$`)

// currencyCodes are ISO 4217 codes stripped when they prefix or suffix an amount.
var currencyCodes = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CHF", "MXN", "INR", "CNY"}

// notationSuffixes are checked in order, so "MM" wins over "M".
var notationSuffixes = []struct {
	suffix string
	mult   decimal.Decimal
}{
	{"MM", decimal.NewFromInt(1_000_000)},
	{"M", decimal.NewFromInt(1_000_000)},
	{"B", decimal.NewFromInt(1_000_000_000)},
	{"K", decimal.NewFromInt(1_000)},
}

var thousand = decimal.NewFromInt(1000)

// parseDecimal parses a plain decimal string.
// Returns false for anything numericRegex rejects.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !numericRegex.MatchString(s) {
		return decimal.Decimal{}, false
	}
	s = strings.TrimPrefix(s, "+")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	if neg {
		s = "-" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// StripCurrency removes currency symbols, ISO currency codes, thousands
// separators and whitespace. Parentheses and shorthand suffixes are kept for
// the fixes that follow. If what remains is not amount-shaped the input is
// returned unchanged.
func StripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' || unicode.Is(unicode.Sc, r) {
			continue
		}
		b.WriteRune(r)
	}
	t := stripCurrencyCode(b.String())

	if !amountRegex.MatchString(t) {
		return s
	}
	return t
}

func stripCurrencyCode(s string) string {
	inner, lp, rp := s, "", ""
	if strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")") {
		inner, lp, rp = inner[1:len(inner)-1], "(", ")"
	}
	for _, code := range currencyCodes {
		if strings.HasPrefix(inner, code) {
			inner = inner[len(code):]
			break
		}
		if strings.HasSuffix(inner, code) {
			inner = inner[:len(inner)-len(code)]
			break
		}
	}
	return lp + inner + rp
}

// NegateParens turns an accounting negative "(500)" into "-500".
// Anything else is returned unchanged.
func NegateParens(s string) string {
	t := strings.TrimSpace(s)
	if len(t) < 3 || !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return s
	}
	inner := strings.TrimSpace(t[1 : len(t)-1])
	if inner == "" {
		return s
	}
	if strings.HasPrefix(inner, "-") {
		return inner
	}
	return "-" + strings.TrimPrefix(inner, "+")
}

// ExpandNotation resolves a trailing K, M, MM or B multiplier (case-sensitive,
// longest suffix first). Values without a suffix, or whose remainder does not
// parse, are returned unchanged.
func ExpandNotation(s string) string {
	t := strings.TrimSpace(s)
	for _, n := range notationSuffixes {
		if !strings.HasSuffix(t, n.suffix) {
			continue
		}
		d, ok := parseDecimal(strings.TrimSuffix(t, n.suffix))
		if !ok {
			return s
		}
		return d.Mul(n.mult).String()
	}
	return s
}

// CleanAmount is the complete currency cleanup: symbols, codes, separators
// and whitespace are stripped, accounting parentheses become a minus sign and
// shorthand multipliers are expanded. The result is a plain decimal string.
// Input that does not parse is returned unchanged.
func CleanAmount(s string) string {
	t := ExpandNotation(NegateParens(StripCurrency(s)))
	d, ok := parseDecimal(t)
	if !ok {
		return s
	}
	return d.String()
}

// ScaleThousands multiplies a value given in thousands by 1000.
func ScaleThousands(s string) string {
	d, ok := parseDecimal(s)
	if !ok {
		return s
	}
	return d.Mul(thousand).String()
}

// TwoDecimals formats a decimal with exactly two fraction digits.
func TwoDecimals(s string) string {
	d, ok := parseDecimal(s)
	if !ok {
		return s
	}
	return d.StringFixed(2)
}

// RemoveCommas drops thousands separators from a number. Values that are not
// numeric once the commas are gone are returned unchanged.
func RemoveCommas(s string) string {
	t := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if !amountRegex.MatchString(t) {
		return s
	}
	return t
}

// StripPercent removes a trailing percent sign.
func StripPercent(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasSuffix(t, "%") {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(t, "%"))
}

// PercentToDecimal strips a trailing percent sign and divides by 100.
func PercentToDecimal(s string) string {
	d, ok := parseDecimal(StripPercent(s))
	if !ok {
		return s
	}
	return d.Shift(-2).String()
}
