package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// separators users type between digit groups: comma, Arabic thousands separator, Persian comma, space
var amountReplacer = strings.NewReplacer(",", "", "٬", "", "،", "", " ", "", "_", "", "٫", ".")

// ParseAmount parses a money value typed by the user. Persian digits and
// grouping separators are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := amountReplacer.Replace(ToLatinDigits(strings.TrimSpace(s)))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ParseHours parses an hour count typed by the user.
func ParseHours(s string) (float64, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	f, _ := d.Float64()
	return f, nil
}

// RoundAmount rounds to whole currency units.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
