// Package jalali converts between the Gregorian and Jalali (Persian solar
// hijri) calendars using the 33-year-cycle break table.
package jalali

import "fmt"

// Years in which the leap cycle shifts. Valid Jalali years are [breaks[0], breaks[last]).
var breaks = []int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// MinYear and MaxYear bound the supported Jalali years.
var (
	MinYear = breaks[0]
	MaxYear = breaks[len(breaks)-1] - 1
)

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// MonthName returns the Persian name of month m (1-12).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// IsLeap reports whether Jalali year jy has 30 days in Esfand.
func IsLeap(jy int) bool {
	leap, _, _, err := cal(jy)
	return err == nil && leap == 0
}

// MonthLength returns the number of days in month jm of year jy.
func MonthLength(jy, jm int) int {
	switch {
	case jm >= 1 && jm <= 6:
		return 31
	case jm >= 7 && jm <= 11:
		return 30
	case jm == 12:
		if IsLeap(jy) {
			return 30
		}
		return 29
	}
	return 0
}

// ValidDate reports whether jy/jm/jd is a real Jalali date in the supported range.
func ValidDate(jy, jm, jd int) bool {
	return jy >= MinYear && jy <= MaxYear && jm >= 1 && jm <= 12 && jd >= 1 && jd <= MonthLength(jy, jm)
}

// ToJalali converts a Gregorian date to Jalali.
func ToJalali(gy, gm, gd int) (jy, jm, jd int) {
	return fromDayNumber(gregorianToDayNumber(gy, gm, gd))
}

// ToGregorian converts a Jalali date to Gregorian.
func ToGregorian(jy, jm, jd int) (gy, gm, gd int) {
	return dayNumberToGregorian(jalaliToDayNumber(jy, jm, jd))
}

// cal returns, for Jalali year jy: years since the last leap year (0 means jy
// itself is leap), the Gregorian year in which jy begins, and the March day of
// Nowruz in that Gregorian year.
func cal(jy int) (leap, gy, march int, err error) {
	if jy < breaks[0] || jy >= breaks[len(breaks)-1] {
		return 0, 0, 0, fmt.Errorf("jalali year %d out of range", jy)
	}

	gy = jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march, nil
}

func jalaliToDayNumber(jy, jm, jd int) int {
	_, gy, march, _ := cal(jy)
	return gregorianToDayNumber(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func fromDayNumber(jdn int) (jy, jm, jd int) {
	gy, _, _ := dayNumberToGregorian(jdn)
	jy = gy - 621
	leap, _, march, _ := cal(jy)
	k := jdn - gregorianToDayNumber(gy, 3, march)

	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1
}

func gregorianToDayNumber(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func dayNumberToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308
	gd = i%153/5 + 1
	gm = i/153%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
