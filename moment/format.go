package moment

import (
	"strconv"
	"strings"

	"github.com/pgaskin/chrono/locale"
)

const (
	defaultFormat    = "YYYY-MM-DDTHH:mm:ssZ"
	defaultFormatUTC = "YYYY-MM-DDTHH:mm:ss[Z]"
)

// Format formats m using a template of format tokens. Text in square
// brackets is copied as-is. An empty format uses the ISO 8601 form with
// second precision. Invalid values format as the locale's invalid date
// string.
func (m Moment) Format(format string) string {
	return string(m.AppendFormat(nil, format))
}

// AppendFormat is like Format, but appends to b.
func (m Moment) AppendFormat(b []byte, format string) []byte {
	l := m.Locale()
	if !m.valid {
		return append(b, l.InvalidDate()...)
	}
	if format == "" {
		if m.IsUTC() {
			format = defaultFormatUTC
		} else {
			format = defaultFormat
		}
	}
	c := m.civil()
	for _, t := range compileFormat(expandFormat(format, l)) {
		b = m.appendToken(b, t, c, l)
	}
	return b
}

// String formats m in English, like "Mon Jan 02 2006 15:04:05 GMT-0700".
func (m Moment) String() string {
	en, _ := locale.Get("en")
	return m.SetLocaleData(en).Format("ddd MMM DD YYYY HH:mm:ss [GMT]ZZ")
}

// SetLocaleData returns m with the locale l.
func (m Moment) SetLocaleData(l *locale.Locale) Moment {
	m.loc = l
	return m
}

// ToISOString formats m as an ISO 8601 string with millisecond precision. It
// is in UTC unless keepOffset is true. Years outside 0-9999 use the six-digit
// signed form. It returns an empty string if m is invalid.
func (m Moment) ToISOString(keepOffset bool) string {
	if !m.valid {
		return ""
	}
	u := m
	if !keepOffset {
		u = m.UTC(false)
	}
	format := "YYYY-MM-DD[T]HH:mm:ss.SSS"
	if y := u.Year(); y < 0 || y > 9999 {
		format = "YYYYYY-MM-DD[T]HH:mm:ss.SSS"
	}
	if keepOffset {
		format += "Z"
	} else {
		format += "[Z]"
	}
	return u.Format(format)
}

func (m Moment) appendToken(b []byte, t token, c civil, l *locale.Locale) []byte {
	switch t.kind {
	case tokLiteral:
		return append(b, t.text...)
	case tokMonth:
		return strconv.AppendInt(b, int64(c.month+1), 10)
	case tokMonthOrdinal:
		return append(b, l.Ordinal(c.month+1, "M")...)
	case tokMonth2:
		return zeroFill(b, c.month+1, 2, false)
	case tokMonthShort:
		return append(b, l.MonthsShort(c.month)...)
	case tokMonthLong:
		return append(b, l.Months(c.month)...)
	case tokQuarter:
		return strconv.AppendInt(b, int64(c.month/3+1), 10)
	case tokQuarterOrdinal:
		return append(b, l.Ordinal(c.month/3+1, "Q")...)
	case tokDate:
		return strconv.AppendInt(b, int64(c.date), 10)
	case tokDateOrdinal:
		return append(b, l.Ordinal(c.date, "D")...)
	case tokDate2:
		return zeroFill(b, c.date, 2, false)
	case tokDayOfYear:
		return strconv.AppendInt(b, int64(c.dayOfYear()), 10)
	case tokDayOfYearOrdinal:
		return append(b, l.Ordinal(c.dayOfYear(), "DDD")...)
	case tokDayOfYear3:
		return zeroFill(b, c.dayOfYear(), 3, false)
	case tokDay:
		return strconv.AppendInt(b, int64(m.Day()), 10)
	case tokDayOrdinal:
		return append(b, l.Ordinal(m.Day(), "d")...)
	case tokDayMin:
		return append(b, l.WeekdaysMin(m.Day())...)
	case tokDayShort:
		return append(b, l.WeekdaysShort(m.Day())...)
	case tokDayLong:
		return append(b, l.Weekdays(m.Day())...)
	case tokWeekday:
		return strconv.AppendInt(b, int64(m.Weekday()), 10)
	case tokISOWeekday:
		return strconv.AppendInt(b, int64(m.ISOWeekday()), 10)
	case tokWeek:
		return strconv.AppendInt(b, int64(m.Week()), 10)
	case tokWeekOrdinal:
		return append(b, l.Ordinal(m.Week(), "w")...)
	case tokWeek2:
		return zeroFill(b, m.Week(), 2, false)
	case tokISOWeek:
		return strconv.AppendInt(b, int64(m.ISOWeek()), 10)
	case tokISOWeekOrdinal:
		return append(b, l.Ordinal(m.ISOWeek(), "W")...)
	case tokISOWeek2:
		return zeroFill(b, m.ISOWeek(), 2, false)
	case tokYear:
		if c.year <= 9999 {
			return zeroFill(b, c.year, 4, false)
		}
		return strconv.AppendInt(append(b, '+'), int64(c.year), 10)
	case tokYear2:
		return zeroFill(b, c.year%100, 2, false)
	case tokYear4:
		return zeroFill(b, c.year, 4, false)
	case tokYear5:
		return zeroFill(b, c.year, 5, false)
	case tokYear6:
		return zeroFill(b, c.year, 6, true)
	case tokWeekYear2:
		return zeroFill(b, m.WeekYear()%100, 2, false)
	case tokWeekYear4:
		return zeroFill(b, m.WeekYear(), 4, false)
	case tokWeekYear5:
		return zeroFill(b, m.WeekYear(), 5, false)
	case tokISOWeekYear2:
		return zeroFill(b, m.ISOWeekYear()%100, 2, false)
	case tokISOWeekYear4:
		return zeroFill(b, m.ISOWeekYear(), 4, false)
	case tokISOWeekYear5:
		return zeroFill(b, m.ISOWeekYear(), 5, false)
	case tokMeridiemLower:
		return append(b, l.Meridiem(c.hour, c.minute, true)...)
	case tokMeridiem:
		return append(b, l.Meridiem(c.hour, c.minute, false)...)
	case tokHour:
		return strconv.AppendInt(b, int64(c.hour), 10)
	case tokHour2:
		return zeroFill(b, c.hour, 2, false)
	case tokHour12:
		return strconv.AppendInt(b, int64(hour12(c.hour)), 10)
	case tokHour12Pad:
		return zeroFill(b, hour12(c.hour), 2, false)
	case tokHour24:
		return strconv.AppendInt(b, int64(hour24(c.hour)), 10)
	case tokHour24Pad:
		return zeroFill(b, hour24(c.hour), 2, false)
	case tokHmm:
		b = strconv.AppendInt(b, int64(c.hour), 10)
		return zeroFill(b, c.minute, 2, false)
	case tokHmmss:
		b = strconv.AppendInt(b, int64(c.hour), 10)
		b = zeroFill(b, c.minute, 2, false)
		return zeroFill(b, c.second, 2, false)
	case tokhmm:
		b = strconv.AppendInt(b, int64(hour12(c.hour)), 10)
		return zeroFill(b, c.minute, 2, false)
	case tokhmmss:
		b = strconv.AppendInt(b, int64(hour12(c.hour)), 10)
		b = zeroFill(b, c.minute, 2, false)
		return zeroFill(b, c.second, 2, false)
	case tokMinute:
		return strconv.AppendInt(b, int64(c.minute), 10)
	case tokMinute2:
		return zeroFill(b, c.minute, 2, false)
	case tokSecond:
		return strconv.AppendInt(b, int64(c.second), 10)
	case tokSecond2:
		return zeroFill(b, c.second, 2, false)
	case tokFraction:
		return appendFraction(b, c.millisecond, t.n)
	case tokZoneAbbr:
		return append(b, m.ZoneAbbr()...)
	case tokZoneName:
		return append(b, m.ZoneName()...)
	case tokOffset:
		return appendOffset(b, m.UTCOffset(), ":")
	case tokOffsetBasic:
		return appendOffset(b, m.UTCOffset(), "")
	case tokUnix:
		return strconv.AppendInt(b, m.Unix(), 10)
	case tokUnixMilli:
		return strconv.AppendInt(b, m.ms, 10)
	}
	return append(b, t.text...)
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func hour24(h int) int {
	if h == 0 {
		return 24
	}
	return h
}

// zeroFill appends n padded with zeros to width digits, with a sign if n is
// negative or forceSign is set.
func zeroFill(b []byte, n, width int, forceSign bool) []byte {
	switch {
	case n < 0:
		b = append(b, '-')
		n = -n
	case forceSign:
		b = append(b, '+')
	}
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

// appendFraction appends n digits of the fraction of a second. Digits past
// milliseconds are zero.
func appendFraction(b []byte, ms, n int) []byte {
	switch n {
	case 1:
		return strconv.AppendInt(b, int64(ms/100), 10)
	case 2:
		return zeroFill(b, ms/10, 2, false)
	}
	b = zeroFill(b, ms, 3, false)
	return append(b, strings.Repeat("0", n-3)...)
}

func appendOffset(b []byte, offset int, sep string) []byte {
	sign := byte('+')
	if offset < 0 {
		offset = -offset
		sign = '-'
	}
	b = append(b, sign)
	b = zeroFill(b, offset/60, 2, false)
	b = append(b, sep...)
	return zeroFill(b, offset%60, 2, false)
}
