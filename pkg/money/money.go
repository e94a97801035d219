// Package money converts between decimal prices and the integer minor units
// the payments vendor expects, and formats amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents rounds half away from zero, so 19.995 becomes 2000.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders cents as a grouped currency string, e.g. 123456 USD -> "$1,234.56".
// Currencies without a known symbol are prefixed with their code.
func Format(cents int64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}

	neg := cents < 0
	if neg {
		cents = -cents
	}

	fixed := FromCents(cents).StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if sym, ok := symbols[code]; ok {
		b.WriteString(sym)
	} else {
		b.WriteString(code)
		b.WriteByte(' ')
	}
	b.WriteString(group(whole))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
