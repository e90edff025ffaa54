package moment

import (
	"fmt"
	"strings"
)

// Unit is a calendar or clock unit.
type Unit int

const (
	Millisecond Unit = iota + 1
	Second
	Minute
	Hour
	Day // day of the week for Get/Set, days for arithmetic
	Date
	Week
	ISOWeek
	Month
	Quarter
	Year
	DayOfYear
	Weekday
	ISOWeekday
	WeekYear
	ISOWeekYear
)

var unitNames = [...]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Date:        "date",
	Week:        "week",
	ISOWeek:     "isoWeek",
	Month:       "month",
	Quarter:     "quarter",
	Year:        "year",
	DayOfYear:   "dayOfYear",
	Weekday:     "weekday",
	ISOWeekday:  "isoWeekday",
	WeekYear:    "weekYear",
	ISOWeekYear: "isoWeekYear",
}

// unitAliases maps short and plural names to units. Short names are case
// sensitive (M is month, m is minute), long names are not.
var unitAliases = map[string]Unit{
	"ms":  Millisecond,
	"s":   Second,
	"m":   Minute,
	"h":   Hour,
	"d":   Day,
	"D":   Date,
	"w":   Week,
	"W":   ISOWeek,
	"M":   Month,
	"Q":   Quarter,
	"y":   Year,
	"DDD": DayOfYear,
	"e":   Weekday,
	"E":   ISOWeekday,
	"gg":  WeekYear,
	"GG":  ISOWeekYear,
}

var unitLong = map[string]Unit{}

func init() {
	for u, name := range unitNames {
		if name != "" {
			unitLong[strings.ToLower(name)] = Unit(u)
			unitLong[strings.ToLower(name)+"s"] = Unit(u)
		}
	}
}

// ParseUnit parses a unit name (e.g., "M", "month", "months").
func ParseUnit(s string) (Unit, bool) {
	if u, ok := unitAliases[s]; ok {
		return u, true
	}
	u, ok := unitLong[strings.ToLower(s)]
	return u, ok
}

func (u Unit) String() string {
	if u > 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Field is a position in the array form of a date, or one of the
// week-based fields reported by InvalidAt.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDate
	FieldHour
	FieldMinute
	FieldSecond
	FieldMillisecond
	FieldWeek
	FieldWeekday
)

// NoField is returned by InvalidAt when no field overflowed.
const NoField Field = -1

var fieldNames = [...]string{"year", "month", "date", "hour", "minute", "second", "millisecond", "week", "weekday"}

func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	if f == NoField {
		return "none"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}
