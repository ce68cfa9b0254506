package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitConversion(t *testing.T) {
	assert.Equal(t, "۱۴۰۳/۰۵/۱۲", ToPersianDigits("1403/05/12"))
	assert.Equal(t, "1403/05/12", ToLatinDigits("۱۴۰۳/۰۵/۱۲"))
	assert.Equal(t, "2024", ToLatinDigits("٢٠٢٤"))
	assert.Equal(t, "abc", ToLatinDigits("abc"))
}

func TestNumberFormat(t *testing.T) {
	latin := NumberFormat{CurrencyLabel: "تومان"}
	persian := DefaultNumberFormat()

	tests := []struct {
		name   string
		format NumberFormat
		amount decimal.Decimal
		want   string
	}{
		{name: "grouping", format: latin, amount: decimal.NewFromInt(1000000), want: "1,000,000"},
		{name: "small", format: latin, amount: decimal.NewFromInt(999), want: "999"},
		{name: "zero", format: latin, amount: decimal.Zero, want: "0"},
		{name: "fraction", format: latin, amount: decimal.RequireFromString("1234.5"), want: "1,234.5"},
		{name: "fraction rounded", format: latin, amount: decimal.RequireFromString("0.125"), want: "0.13"},
		{name: "negative", format: latin, amount: decimal.NewFromInt(-400000), want: "-400,000"},
		{name: "persian digits", format: persian, amount: decimal.NewFromInt(1000000), want: "۱,۰۰۰,۰۰۰"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Number(tt.amount))
		})
	}
}

func TestNumberFormat_Currency(t *testing.T) {
	assert.Equal(t, "۴۰۰,۰۰۰ تومان", DefaultNumberFormat().Currency(decimal.NewFromInt(400000)))
	assert.Equal(t, "400,000", NumberFormat{}.Currency(decimal.NewFromInt(400000)))
	assert.Equal(t, "7.5", NumberFormat{}.Hours(7.5))
	assert.Equal(t, "۱۰", DefaultNumberFormat().Int(10))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "800000", want: "800000"},
		{in: "800,000", want: "800000"},
		{in: "۸۰۰٬۰۰۰", want: "800000"},
		{in: " 1 200 000 ", want: "1200000"},
		{in: "۱۲٫۵", want: "12.5"},
		{in: "", wantErr: true},
		{in: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseHoursAndRound(t *testing.T) {
	h, err := ParseHours("۴.۵")
	require.NoError(t, err)
	assert.Equal(t, 4.5, h)

	assert.Equal(t, "100001", RoundAmount(decimal.RequireFromString("100000.5")).String())
	assert.Equal(t, "100000", RoundAmount(decimal.RequireFromString("100000.49")).String())
}
