package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a dollar amount rounded to whole dollars with digit
// grouping, e.g. "$1,234,567" or "-$500".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// FormatPercent renders a percentage with the given number of decimal places,
// e.g. FormatPercent(d, 1) -> "42.5%".
func FormatPercent(amount decimal.Decimal, places int32) string {
	return amount.StringFixed(places) + "%"
}

// FormatSignedPercent renders a percentage with an explicit sign, e.g.
// "+2.4%" or "-0.5%".
func FormatSignedPercent(amount decimal.Decimal, places int32) string {
	s := amount.StringFixed(places) + "%"
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}
