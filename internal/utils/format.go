package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/julianstephens/mozd/internal/constants"
)

// NumberFormat controls how amounts and counts are rendered.
type NumberFormat struct {
	PersianDigits bool
	CurrencyLabel string
}

// DefaultNumberFormat renders Persian digits with the toman suffix.
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{PersianDigits: true, CurrencyLabel: constants.DefaultCurrency}
}

var grouping = message.NewPrinter(language.English)

// Number renders d with comma thousands separators and at most two fraction digits.
func (f NumberFormat) Number(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	d = d.Abs()

	s := grouping.Sprintf("%d", d.IntPart())
	if frac := d.Sub(decimal.NewFromInt(d.IntPart())); !frac.IsZero() {
		// "0.5" -> ".5"
		s += strings.TrimPrefix(frac.String(), "0")
	}
	if neg {
		s = "-" + s
	}
	return f.digits(s)
}

// Currency renders d as a number followed by the currency label.
func (f NumberFormat) Currency(d decimal.Decimal) string {
	if f.CurrencyLabel == "" {
		return f.Number(d)
	}
	return f.Number(d) + " " + f.CurrencyLabel
}

// Hours renders an hour count without trailing zeros.
func (f NumberFormat) Hours(h float64) string {
	return f.digits(strconv.FormatFloat(h, 'f', -1, 64))
}

// Int renders a count.
func (f NumberFormat) Int(n int) string {
	return f.digits(strconv.Itoa(n))
}

func (f NumberFormat) digits(s string) string {
	if f.PersianDigits {
		return ToPersianDigits(s)
	}
	return s
}
