// Package calendar implements proleptic Gregorian calendar arithmetic which
// doesn't depend on any particular point in time or timezone.
package calendar

import (
	"fmt"
	"time"
)

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// daysBefore[m] counts the number of days in a non-leap year
// before month m begins. There is an entry for m=12, counting
// the number of days before January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// NormalizeMonth carries whole years out of a zero-based month which may be
// outside [0, 11].
func NormalizeMonth(year, month int) (int, int) {
	year += FloorDiv(month, 12)
	return year, Mod(month, 12)
}

// DaysInMonth returns the number of days in the zero-based month of year. The
// month may overflow or underflow, in which case whole years are carried
// before checking for a leap year.
func DaysInMonth(year, month int) int {
	year, month = NormalizeMonth(year, month)
	if month == 1 && IsLeapYear(year) {
		return 29
	}
	return daysBefore[month+1] - daysBefore[month]
}

// DayOfYear returns the one-based day of the year of the provided date, where
// month is zero-based.
func DayOfYear(year, month, day int) int {
	year, month = NormalizeMonth(year, month)
	d := daysBefore[month] + day
	if month > 1 && IsLeapYear(year) {
		d++
	}
	return d
}

// Weekday returns the day of the week (0 = Sunday) of the day number
// returned by DaysFromCivil.
func Weekday(days int) int {
	return Mod(days+4, 7) // 1970-01-01 was a Thursday
}

// http://howardhinnant.github.io/date_algorithms.html#days_from_civil
func DaysFromCivil(y int, m time.Month, d int) int {
	if m < 3 {
		y--
	}
	var era int
	if y >= 0 {
		era = y
	} else {
		era = y - 399
	}
	era /= 400
	yoe := uint(y - era*400)
	var doy uint
	if m > 2 {
		doy = uint(m) - 3
	} else {
		doy = uint(m) + 9
	}
	doy = (153*doy+2)/5 + uint(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + int(doe) - 719468
}

// http://howardhinnant.github.io/date_algorithms.html#civil_from_days
func CivilFromDays(z int) (y int, m time.Month, d int) {
	z += 719468
	var era int
	if z >= 0 {
		era = z
	} else {
		era = z - 146096
	}
	era /= 146097
	doe := uint(z - era*146097)
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = int(yoe) + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		m = time.Month(mp + 3)
	} else {
		m = time.Month(mp - 9)
	}
	if m < 3 {
		y++
	}
	return
}

// MakeDays returns the day number of the (possibly denormalized) date, where
// month is zero-based. Overflowing months carry into years and overflowing
// days carry into months, like Date.UTC in ECMAScript.
func MakeDays(year, month, day int) int {
	year, month = NormalizeMonth(year, month)
	return DaysFromCivil(year, time.Month(month+1), 1) + day - 1
}

// FloorDiv divides a by b, rounding towards negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a modulo b with the sign of b.
func Mod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Date is a calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateFromDays returns the date for a day number.
func DateFromDays(days int) Date {
	y, m, d := CivilFromDays(days)
	return Date{y, m, d}
}

func (v Date) String() string {
	if v.Year < 0 || v.Year > 9999 {
		return fmt.Sprintf("%+07d-%02d-%02d", v.Year, v.Month, v.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
}

// Days returns the day number of the date.
func (v Date) Days() int {
	return MakeDays(v.Year, int(v.Month)-1, v.Day)
}

// IsValid reports whether the date exists.
func (v Date) IsValid() bool {
	return v.Month >= time.January && v.Month <= time.December && v.Day >= 1 && v.Day <= DaysInMonth(v.Year, int(v.Month)-1)
}

func (v Date) Weekday() time.Weekday {
	return time.Weekday(Weekday(v.Days()))
}

// YearDay returns the one-based day of the year.
func (v Date) YearDay() int {
	return DayOfYear(v.Year, int(v.Month)-1, v.Day)
}

func (v Date) AddDays(d int) Date {
	return DateFromDays(v.Days() + d)
}

func (v Date) Less(x Date) bool {
	if v.Year == x.Year {
		if v.Month == x.Month {
			return v.Day < x.Day
		}
		return v.Month < x.Month
	}
	return v.Year < x.Year
}

func (v Date) Compare(x Date) int {
	if v == x {
		return 0
	}
	if v.Less(x) {
		return -1
	}
	return 1
}
