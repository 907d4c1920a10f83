package sms

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currency matches the rupee spellings seen in Indian bank alerts.
const currency = `(?:Rs\.?|INR|₹)`

// numeral captures digits with optional thousands separators and decimals.
const numeral = `([\d,]+\.?\d*)`

var amountPatterns = []*regexp.Regexp{
	// Rs 1,234.56 debited
	regexp.MustCompile(`(?i)` + currency + `\s*` + numeral + `\s*(?:debited|spent|paid|withdrawn)`),
	// debited with INR 1,234.56
	regexp.MustCompile(`(?i)(?:debited|spent|paid|withdrawn)\s*(?:(?:with|by|of|for)\s+)?` + currency + `\s*` + numeral),
	// for Rs 1,234.56
	regexp.MustCompile(`(?i)for\s*` + currency + `\s*` + numeral),
	// of Rs 1,234.56
	regexp.MustCompile(`(?i)of\s*` + currency + `\s*` + numeral),
}

// ExtractAmount returns the first positive amount found in body.
// Each pattern is tried once; a capture that does not parse to a positive
// number falls through to the next pattern.
func ExtractAmount(body string) (decimal.Decimal, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if amount, ok := parseNumeral(m[1]); ok {
			return amount, true
		}
	}
	return decimal.Zero, false
}

func parseNumeral(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
