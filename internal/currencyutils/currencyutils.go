// Package currencyutils parses the messy amount notations found in bank
// exports into decimal values.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountTokenRe = regexp.MustCompile(`[\d.,']+`)

// FirstAmountToken extracts the first run of digits and separators from s.
// MT940 :61: lines bury the amount between the debit/credit mark and the
// transaction type code, so a targeted scan beats full-line parsing.
func FirstAmountToken(s string) string {
	return amountTokenRe.FindString(s)
}

// ParseAmount parses an amount string into a decimal, coping with Swiss
// apostrophe grouping ("1'234.56"), European decimal commas ("1.234,56"),
// US notation ("1,234.56"), embedded currency symbols and NBSP padding.
//
// Empty or unparseable input yields zero without an error: a junk amount in
// one statement line should not abort a whole conversion, and a zero row is
// easy to spot during import review.
func ParseAmount(value string) decimal.Decimal {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero
	}

	// Strip grouping apostrophes, spaces and anything that is not a digit,
	// separator or sign. This drops currency symbols and codes.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	s = b.String()

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: whichever occurs last is the decimal separator, the
		// other is grouping.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma only: decimal separator when at most two digits follow,
		// grouping otherwise ("1,234" is one thousand two hundred).
		if len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s[:lastComma], ",", "", -1) + "." + s[lastComma+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
