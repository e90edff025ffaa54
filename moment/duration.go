package moment

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pgaskin/chrono/locale"
)

// Duration is a length of time stored as milliseconds, days and months,
// which are kept separate since days and months don't have a fixed length.
// The zero value is a valid zero duration.
type Duration struct {
	ms     float64
	days   float64
	months float64

	invalid bool
	loc     *locale.Locale
	data    durationData
}

// durationData is the bubbled form of a duration. Each field is within the
// range of the next larger one, except for years.
type durationData struct {
	milliseconds float64
	seconds      float64
	minutes      float64
	hours        float64
	days         float64
	months       float64
	years        float64
}

// durationOrdering is the order of units from largest to smallest. Only the
// smallest unit with a non-zero value may be fractional.
var durationOrdering = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

// NewDuration creates a duration of n units. Units other than those accepted
// by DurationFields make it invalid.
func NewDuration(n float64, u Unit) Duration {
	return DurationFields(map[Unit]float64{u: n})
}

// DurationFields creates a duration from a quantity of each unit (Year,
// Quarter, Month, Week or ISOWeek, Day, Hour, Minute, Second and
// Millisecond). It is invalid if a value is NaN or infinite, or if any unit
// other than the smallest non-zero one is fractional.
func DurationFields(fields map[Unit]float64) Duration {
	var d Duration
	for u, v := range fields {
		if u == ISOWeek {
			u = Week
		}
		if u == Date {
			u = Day
		}
		switch u {
		case Year:
			d.months += v * 12
		case Quarter:
			d.months += v * 3
		case Month:
			d.months += v
		case Week:
			d.days += v * 7
		case Day:
			d.days += v
		case Hour:
			d.ms += v * msPerHour
		case Minute:
			d.ms += v * msPerMinute
		case Second:
			d.ms += v * msPerSecond
		case Millisecond:
			d.ms += v
		default:
			d.invalid = true
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			d.invalid = true
		}
	}
	var hasDecimal bool
	for _, u := range durationOrdering {
		v := fields[u]
		if u == Week {
			v += fields[ISOWeek]
		}
		if u == Day {
			v += fields[Date]
		}
		if v == 0 {
			continue
		}
		if hasDecimal {
			d.invalid = true
			break
		}
		if v != math.Trunc(v) {
			hasDecimal = true
		}
	}
	return d.bubble()
}

// InvalidDuration returns an invalid duration.
func InvalidDuration() Duration {
	return Duration{invalid: true, ms: math.NaN(), days: math.NaN(), months: math.NaN()}.bubble()
}

var (
	aspNetDurationRegex = regexp.MustCompile(`^(-|\+)?(?:(\d*)[. ])?(\d+):(\d+)(?::(\d+)(\.\d*)?)?$`)
	isoDurationRegex    = regexp.MustCompile(`^(-|\+)?P(?:([-+]?[0-9,.]*)Y)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)W)?(?:([-+]?[0-9,.]*)D)?(?:T(?:([-+]?[0-9,.]*)H)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)S)?)?$`)
)

// ParseDuration parses a number of milliseconds, an ASP.NET style duration
// like "-1.02:03:04.500", or an ISO 8601 duration like "P1Y2M3DT4H5M6S".
func ParseDuration(s string) (Duration, bool) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return NewDuration(v, Millisecond), true
	}
	if m := aspNetDurationRegex.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		var ms float64
		if m[6] != "" {
			f, _ := strconv.ParseFloat(m[6], 64)
			ms = float64(toInt(absRound(f * 1000)))
		}
		return DurationFields(map[Unit]float64{
			Day:         float64(toIntString(m[2])) * sign,
			Hour:        float64(toIntString(m[3])) * sign,
			Minute:      float64(toIntString(m[4])) * sign,
			Second:      float64(toIntString(m[5])) * sign,
			Millisecond: ms * sign,
		}), true
	}
	if m := isoDurationRegex.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		iso := func(s string) float64 {
			v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
			if err != nil {
				return 0
			}
			return v * sign
		}
		return DurationFields(map[Unit]float64{
			Year:   iso(m[2]),
			Month:  iso(m[3]),
			Week:   iso(m[4]),
			Day:    iso(m[5]),
			Hour:   iso(m[6]),
			Minute: iso(m[7]),
			Second: iso(m[8]),
		}), true
	}
	return InvalidDuration(), false
}

// Between returns the duration from a to b as months and milliseconds, with
// b in the frame of a.
func Between(a, b Moment) Duration {
	months, ms := momentsDifference(a, b)
	return DurationFields(map[Unit]float64{Month: float64(months), Millisecond: float64(ms)}).WithLocaleData(a.Locale())
}

func momentsDifference(base, other Moment) (months int, ms int64) {
	if !base.valid || !other.valid {
		return 0, 0
	}
	other.frame = base.frame
	if base.IsBefore(other, Millisecond) {
		return positiveMomentsDifference(base, other)
	}
	months, ms = positiveMomentsDifference(other, base)
	return -months, -ms
}

func positiveMomentsDifference(base, other Moment) (months int, ms int64) {
	months = other.Month() - base.Month() + (other.Year()-base.Year())*12
	if base.addMonths(months).IsAfter(other, Millisecond) {
		months--
	}
	return months, other.ms - base.addMonths(months).ms
}

func monthsToDays(months float64) float64 {
	return months * 146097 / 4800
}

func daysToMonths(days float64) float64 {
	return days * 4800 / 146097
}

func (d Duration) bubble() Duration {
	ms, days, months := d.ms, d.days, d.months
	if !(ms >= 0 && days >= 0 && months >= 0) && !(ms <= 0 && days <= 0 && months <= 0) {
		ms += absCeil(monthsToDays(months)+days) * msPerDay
		days, months = 0, 0
	}
	d.data.milliseconds = math.Mod(ms, 1000)
	seconds := absFloor(ms / 1000)
	d.data.seconds = math.Mod(seconds, 60)
	minutes := absFloor(seconds / 60)
	d.data.minutes = math.Mod(minutes, 60)
	hours := absFloor(minutes / 60)
	d.data.hours = math.Mod(hours, 24)
	days += absFloor(hours / 24)
	monthsFromDays := absFloor(daysToMonths(days))
	months += monthsFromDays
	days -= absCeil(monthsToDays(monthsFromDays))
	d.data.years = absFloor(months / 12)
	d.data.months = math.Mod(months, 12)
	d.data.days = days
	return d
}

// IsValid reports whether d is valid.
func (d Duration) IsValid() bool {
	return !d.invalid
}

// Locale returns the locale used for humanizing d.
func (d Duration) Locale() *locale.Locale {
	if d.loc == nil {
		return locale.Current()
	}
	return d.loc
}

// WithLocale returns d with the first locale matching tags.
func (d Duration) WithLocale(tags ...string) Duration {
	d.loc = locale.Resolve(tags...)
	return d
}

// WithLocaleData returns d with the locale l.
func (d Duration) WithLocaleData(l *locale.Locale) Duration {
	d.loc = l
	return d
}

func (d Duration) Milliseconds() float64 { return d.value(d.data.milliseconds) }
func (d Duration) Seconds() float64      { return d.value(d.data.seconds) }
func (d Duration) Minutes() float64      { return d.value(d.data.minutes) }
func (d Duration) Hours() float64        { return d.value(d.data.hours) }
func (d Duration) Days() float64         { return d.value(d.data.days) }
func (d Duration) Months() float64       { return d.value(d.data.months) }
func (d Duration) Years() float64        { return d.value(d.data.years) }

// Weeks returns the whole weeks in the days part.
func (d Duration) Weeks() float64 {
	return d.value(absFloor(d.data.days / 7))
}

func (d Duration) value(v float64) float64 {
	if d.invalid {
		return math.NaN()
	}
	return v
}

// Get returns the bubbled value of a unit.
func (d Duration) Get(u Unit) float64 {
	switch u {
	case Millisecond:
		return d.Milliseconds()
	case Second:
		return d.Seconds()
	case Minute:
		return d.Minutes()
	case Hour:
		return d.Hours()
	case Day, Date:
		return d.Days()
	case Week, ISOWeek:
		return d.Weeks()
	case Month:
		return d.Months()
	case Year:
		return d.Years()
	}
	return math.NaN()
}

// As returns the total length of d in a unit. Months and days are converted
// using the average length of a month over 400 years.
func (d Duration) As(u Unit) float64 {
	if d.invalid {
		return math.NaN()
	}
	switch u {
	case Month, Quarter, Year:
		months := d.months + daysToMonths(d.days+d.ms/msPerDay)
		switch u {
		case Quarter:
			return months / 3
		case Year:
			return months / 12
		}
		return months
	}
	days := d.days + math.Round(monthsToDays(d.months))
	switch u {
	case Week, ISOWeek:
		return days/7 + d.ms/msPerWeek
	case Day, Date:
		return days + d.ms/msPerDay
	case Hour:
		return days*24 + d.ms/msPerHour
	case Minute:
		return days*1440 + d.ms/msPerMinute
	case Second:
		return days*86400 + d.ms/msPerSecond
	case Millisecond:
		return math.Floor(days*msPerDay) + d.ms
	}
	return math.NaN()
}

// AsMilliseconds returns the total length of d in milliseconds.
func (d Duration) AsMilliseconds() float64 {
	return d.As(Millisecond)
}

// Add returns d + o.
func (d Duration) Add(o Duration) Duration {
	return d.addDuration(o, 1)
}

// Subtract returns d - o.
func (d Duration) Subtract(o Duration) Duration {
	return d.addDuration(o, -1)
}

func (d Duration) addDuration(o Duration, sign float64) Duration {
	d.ms += sign * o.ms
	d.days += sign * o.days
	d.months += sign * o.months
	d.invalid = d.invalid || o.invalid
	return d.bubble()
}

// Abs returns d with every part made positive.
func (d Duration) Abs() Duration {
	d.ms, d.days, d.months = math.Abs(d.ms), math.Abs(d.days), math.Abs(d.months)
	return d.bubble()
}

// Negate returns -d.
func (d Duration) Negate() Duration {
	d.ms, d.days, d.months = -d.ms, -d.days, -d.months
	return d.bubble()
}

// ToISOString formats d as an ISO 8601 duration like "P1Y2M3DT4H5M6.5S". A
// part with a different sign than the whole is prefixed with a minus sign.
func (d Duration) ToISOString() string {
	if d.invalid {
		return d.Locale().InvalidDate()
	}
	total := d.As(Second)
	if total == 0 {
		return "P0D"
	}
	seconds := math.Abs(d.ms) / 1000
	days := math.Abs(d.days)
	months := math.Abs(d.months)
	minutes := absFloor(seconds / 60)
	hours := absFloor(minutes / 60)
	seconds = math.Mod(seconds, 60)
	minutes = math.Mod(minutes, 60)
	years := absFloor(months / 12)
	months = math.Mod(months, 12)

	sign := func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	}
	prefix := func(x float64) string {
		if sign(x) != sign(total) {
			return "-"
		}
		return ""
	}
	num := func(x float64) string {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	var b strings.Builder
	if total < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if years != 0 {
		b.WriteString(prefix(d.months) + num(years) + "Y")
	}
	if months != 0 {
		b.WriteString(prefix(d.months) + num(months) + "M")
	}
	if days != 0 {
		b.WriteString(prefix(d.days) + num(days) + "D")
	}
	if hours != 0 || minutes != 0 || seconds != 0 {
		b.WriteByte('T')
	}
	if hours != 0 {
		b.WriteString(prefix(d.ms) + num(hours) + "H")
	}
	if minutes != 0 {
		b.WriteString(prefix(d.ms) + num(minutes) + "M")
	}
	if seconds != 0 {
		s := strconv.FormatFloat(seconds, 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
		b.WriteString(prefix(d.ms) + s + "S")
	}
	return b.String()
}

// String is the same as ToISOString.
func (d Duration) String() string {
	return d.ToISOString()
}
