package jalali

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/utils"
)

// Date is a calendar date in the Jalali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

var datePattern = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)

// New returns the Jalali date jy/jm/jd, or an error if it does not exist.
func New(jy, jm, jd int) (Date, error) {
	if !ValidDate(jy, jm, jd) {
		return Date{}, fmt.Errorf("invalid jalali date %d/%02d/%02d", jy, jm, jd)
	}
	return Date{Year: jy, Month: jm, Day: jd}, nil
}

// FromTime returns the Jalali date of t in t's location.
func FromTime(t time.Time) Date {
	jy, jm, jd := ToJalali(t.Year(), int(t.Month()), t.Day())
	return Date{Year: jy, Month: jm, Day: jd}
}

// ParseISO converts a persisted YYYY-MM-DD date to Jalali.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Parse reads a Jalali date written as YYYY/MM/DD, YYYY-MM-DD or YYYY.MM.DD.
// Persian digits are accepted.
func Parse(s string) (Date, error) {
	y, m, d, ok := splitDate(s)
	if !ok {
		return Date{}, fmt.Errorf("invalid jalali date %q", s)
	}
	return New(y, m, d)
}

// Valid reports whether d is a real date.
func (d Date) Valid() bool {
	return ValidDate(d.Year, d.Month, d.Day)
}

// Time returns local midnight of d.
func (d Date) Time() time.Time {
	gy, gm, gd := ToGregorian(d.Year, d.Month, d.Day)
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.Local)
}

// ISO returns the persisted Gregorian form of d.
func (d Date) ISO() string {
	gy, gm, gd := ToGregorian(d.Year, d.Month, d.Day)
	return fmt.Sprintf("%04d-%02d-%02d", gy, gm, gd)
}

// String returns d as YYYY/MM/DD with ASCII digits.
func (d Date) String() string {
	return fmt.Sprintf(constants.JalaliDateFormat, d.Year, d.Month, d.Day)
}

// Long returns d as "12 مرداد 1403", optionally with Persian digits.
func (d Date) Long(persianDigits bool) string {
	s := fmt.Sprintf("%d %s %d", d.Day, MonthName(d.Month), d.Year)
	if persianDigits {
		return utils.ToPersianDigits(s)
	}
	return s
}

// MonthKey returns the YYYY-MM key of d's month.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// Format renders a persisted date for display: Jalali when cal is jalali,
// otherwise unchanged. Unparseable input is returned as-is.
func Format(iso string, cal constants.Calendar, persianDigits bool) string {
	out := iso
	if cal != constants.CalendarGregorian {
		if d, err := ParseISO(iso); err == nil {
			out = d.String()
		}
	}
	if persianDigits {
		return utils.ToPersianDigits(out)
	}
	return out
}

// MonthKeyOf returns the rollup key of a persisted date in the given calendar.
func MonthKeyOf(iso string, cal constants.Calendar) (string, error) {
	if cal == constants.CalendarGregorian {
		return utils.GregorianMonthKey(iso)
	}
	d, err := ParseISO(iso)
	if err != nil {
		return "", err
	}
	return d.MonthKey(), nil
}

// MonthLabel renders a rollup key as "مرداد 1403" (jalali) or "August 2024".
func MonthLabel(key string, cal constants.Calendar, persianDigits bool) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	y, errY := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errY != nil || errM != nil || m < 1 || m > 12 {
		return key
	}

	var label string
	if cal == constants.CalendarGregorian {
		label = fmt.Sprintf("%s %d", time.Month(m).String(), y)
	} else {
		label = fmt.Sprintf("%s %d", MonthName(m), y)
	}
	if persianDigits {
		return utils.ToPersianDigits(label)
	}
	return label
}

// ParseInput turns a user-typed date into the persisted YYYY-MM-DD form.
// It accepts "today"/"امروز", "yesterday"/"دیروز", Jalali dates such as
// 1403/05/12, and Gregorian dates (year 1700 or later) such as 2024-08-02.
func ParseInput(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(utils.ToLatinDigits(s))
	switch strings.ToLower(s) {
	case "", "today", "امروز":
		return now.Format(constants.DateFormat), nil
	case "yesterday", "دیروز":
		return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}

	y, m, d, ok := splitDate(s)
	if !ok {
		return "", fmt.Errorf("unrecognized date %q (use 1403/05/12 or 2024-08-02)", s)
	}

	if y >= 1700 {
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		if t.Year() != y || int(t.Month()) != m || t.Day() != d {
			return "", fmt.Errorf("invalid gregorian date %q", s)
		}
		return t.Format(constants.DateFormat), nil
	}

	jd, err := New(y, m, d)
	if err != nil {
		return "", err
	}
	return jd.ISO(), nil
}

func splitDate(s string) (y, m, d int, ok bool) {
	match := datePattern.FindStringSubmatch(utils.ToLatinDigits(strings.TrimSpace(s)))
	if match == nil {
		return 0, 0, 0, false
	}
	y, _ = strconv.Atoi(match[1])
	m, _ = strconv.Atoi(match[2])
	d, _ = strconv.Atoi(match[3])
	return y, m, d, true
}
