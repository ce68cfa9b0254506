package utils

import "strings"

var (
	persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")
	arabicDigits  = []rune("٠١٢٣٤٥٦٧٨٩")
)

// ToPersianDigits replaces ASCII digits with Persian ones.
func ToPersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToLatinDigits replaces Persian and Arabic-Indic digits with ASCII ones.
func ToLatinDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= persianDigits[0] && r <= persianDigits[9]:
			b.WriteRune('0' + (r - persianDigits[0]))
		case r >= arabicDigits[0] && r <= arabicDigits[9]:
			b.WriteRune('0' + (r - arabicDigits[0]))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
