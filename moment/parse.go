package moment

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pgaskin/chrono/calendar"
	"github.com/pgaskin/chrono/locale"
)

var (
	match1         = regexp.MustCompile(`\d`)
	match2         = regexp.MustCompile(`\d\d`)
	match3         = regexp.MustCompile(`\d{3}`)
	match4         = regexp.MustCompile(`\d{4}`)
	match6         = regexp.MustCompile(`[+-]?\d{6}`)
	match1to2      = regexp.MustCompile(`\d\d?`)
	match3to4      = regexp.MustCompile(`\d\d\d\d?`)
	match5to6      = regexp.MustCompile(`\d\d\d\d\d\d?`)
	match1to3      = regexp.MustCompile(`\d{1,3}`)
	match1to4      = regexp.MustCompile(`\d{1,4}`)
	match1to6      = regexp.MustCompile(`[+-]?\d{1,6}`)
	matchUnsigned  = regexp.MustCompile(`\d+`)
	matchSigned    = regexp.MustCompile(`[+-]?\d+`)
	matchOffset    = regexp.MustCompile(`(?i)Z|[+-]\d\d:?\d\d`)
	matchTimestamp = regexp.MustCompile(`[+-]?\d+(?:\.\d{1,3})?`)
	chunkOffset    = regexp.MustCompile(`[+-]|\d\d`)

	// matchShortOffset matches offsets like Z, +05, +0530 and -05:30.
	matchShortOffset = regexp.MustCompile(`(?i)Z|[+-]\d\d(?::?\d\d)?`)
)

// parseRegexp returns the expression a token is matched with, or nil if the
// token is matched as literal text.
func parseRegexp(t token, l *locale.Locale, strict bool) *regexp.Regexp {
	pick := func(lenient, strictRe *regexp.Regexp) *regexp.Regexp {
		if strict {
			return strictRe
		}
		return lenient
	}
	switch t.kind {
	case tokMonth, tokDate, tokDay, tokWeekday, tokISOWeekday, tokWeek, tokISOWeek,
		tokHour, tokHour12, tokHour24, tokMinute, tokSecond:
		return match1to2
	case tokMonth2, tokDate2, tokWeek2, tokISOWeek2, tokYear2, tokWeekYear2, tokISOWeekYear2,
		tokHour2, tokHour12Pad, tokHour24Pad, tokMinute2, tokSecond2:
		return pick(match1to2, match2)
	case tokMonthShort, tokMonthLong:
		return l.MonthsRegexp(t.text, strict)
	case tokDayMin, tokDayShort, tokDayLong:
		return l.WeekdaysRegexp(t.text, strict)
	case tokDateOrdinal:
		return l.OrdinalRegexp(strict)
	case tokDayOfYear:
		return match1to3
	case tokDayOfYear3:
		return match3
	case tokQuarter:
		return match1
	case tokYear:
		return matchSigned
	case tokYear4, tokWeekYear4, tokISOWeekYear4:
		return pick(match1to4, match4)
	case tokYear5, tokYear6, tokWeekYear5, tokISOWeekYear5:
		return pick(match1to6, match6)
	case tokMeridiem, tokMeridiemLower:
		return l.MeridiemRegexp()
	case tokHmm, tokhmm:
		return match3to4
	case tokHmmss, tokhmmss:
		return match5to6
	case tokFraction:
		switch t.n {
		case 1:
			return pick(match1to3, match1)
		case 2:
			return pick(match1to3, match2)
		case 3:
			return pick(match1to3, match3)
		}
		return matchUnsigned
	case tokOffset, tokOffsetBasic:
		return matchShortOffset
	case tokUnix:
		return matchTimestamp
	case tokUnixMilli:
		return matchSigned
	}
	return nil
}

// parser holds the state while building a value from input.
type parser struct {
	input  string
	loc    *locale.Locale
	strict bool
	o      options

	flags ParsingFlags

	a   [7]int
	set [7]bool

	week      map[string]int
	dayOfYear int
	hasDOY    bool
	tzm       int
	hasTZM    bool
	instant   int64
	hasInst   bool
	meridiem  string
	isPM      bool
	nextDay   bool
	invalid   bool // the input didn't match at all
}

func newParser(input string, o options) *parser {
	return &parser{
		input:  input,
		loc:    o.loc,
		strict: o.strict,
		o:      o,
		flags:  defaultFlags(),
	}
}

func (p *parser) setField(f Field, v int) {
	p.a[f] = v
	p.set[f] = true
}

func (p *parser) setWeek(k string, v int) {
	if p.week == nil {
		p.week = map[string]int{}
	}
	p.week[k] = v
}

// fromFormat parses the input with a format. It does not build the value.
func (p *parser) fromFormat(format string) {
	if format == ISO8601 {
		p.fromISO()
		return
	}
	if format == RFC2822 {
		p.fromRFC2822()
		return
	}
	p.flags.Empty = true

	s := p.input
	var consumed int
	for _, t := range compileFormat(expandFormat(format, p.loc)) {
		var parsed string
		var found bool
		if re := parseRegexp(t, p.loc, p.strict); re != nil {
			if loc := re.FindStringIndex(s); loc != nil {
				parsed, found = s[loc[0]:loc[1]], loc[1] > loc[0]
				if found && loc[0] > 0 {
					p.flags.UnusedInput = append(p.flags.UnusedInput, s[:loc[0]])
				}
				if found {
					s = s[loc[1]:]
				}
			}
		} else if i := strings.Index(s, t.text); t.text != "" && i >= 0 {
			parsed, found = t.text, true
			if i > 0 {
				p.flags.UnusedInput = append(p.flags.UnusedInput, s[:i])
			}
			s = s[i+len(t.text):]
		}
		if found {
			consumed += len(parsed)
		}
		if t.kind != tokLiteral {
			if found {
				p.flags.Empty = false
				p.parseToken(t, parsed)
			} else {
				p.flags.UnusedTokens = append(p.flags.UnusedTokens, t.text)
			}
		} else if p.strict && !found {
			p.flags.UnusedTokens = append(p.flags.UnusedTokens, t.text)
		}
	}

	p.flags.CharsLeftOver = len(p.input) - consumed
	if len(s) > 0 {
		p.flags.UnusedInput = append(p.flags.UnusedInput, s)
	}
	if p.flags.BigHour && p.set[FieldHour] && p.a[FieldHour] > 0 && p.a[FieldHour] <= 12 {
		p.flags.BigHour = false
	}
	for i, ok := range p.set {
		if ok {
			if p.flags.ParsedDateParts == nil {
				p.flags.ParsedDateParts = map[Field]int{}
			}
			p.flags.ParsedDateParts[Field(i)] = p.a[i]
		}
	}
	p.flags.Meridiem = p.meridiem
	if p.meridiem != "" && p.set[FieldHour] {
		switch h := p.a[FieldHour]; {
		case p.isPM && h < 12:
			p.a[FieldHour] += 12
		case !p.isPM && h == 12:
			p.a[FieldHour] = 0
		}
	}
}

// parseToken stores the value of a matched token.
func (p *parser) parseToken(t token, s string) {
	switch t.kind {
	case tokMonth, tokMonth2:
		p.setField(FieldMonth, toIntString(s)-1)
	case tokMonthShort, tokMonthLong:
		if v, ok := p.loc.MonthsParse(s, t.text, p.strict); ok {
			p.setField(FieldMonth, v)
		} else {
			p.flags.InvalidMonth = s
		}
	case tokQuarter:
		p.setField(FieldMonth, (toIntString(s)-1)*3)
	case tokDate, tokDate2:
		p.setField(FieldDate, toIntString(s))
	case tokDateOrdinal:
		p.setField(FieldDate, toIntString(match1to2.FindString(s)))
	case tokDayOfYear, tokDayOfYear3:
		p.dayOfYear, p.hasDOY = toIntString(s), true
	case tokDayMin, tokDayShort, tokDayLong:
		if v, ok := p.loc.WeekdaysParse(s, t.text, p.strict); ok {
			p.setWeek("d", v)
		} else {
			p.flags.InvalidWeekday = s
		}
	case tokDay, tokWeekday, tokISOWeekday:
		p.setWeek(t.text, toIntString(s))
	case tokWeek, tokWeek2, tokISOWeek, tokISOWeek2:
		p.setWeek(t.text[:1], toIntString(s))
	case tokWeekYear2, tokISOWeekYear2:
		p.setWeek(t.text, twoDigitYear(s))
	case tokWeekYear4, tokWeekYear5, tokISOWeekYear4, tokISOWeekYear5:
		p.setWeek(t.text[:2], toIntString(s))
	case tokYear:
		p.setField(FieldYear, toIntString(s))
	case tokYear2:
		p.setField(FieldYear, twoDigitYear(s))
	case tokYear4:
		if len(s) == 2 {
			p.setField(FieldYear, twoDigitYear(s))
		} else {
			p.setField(FieldYear, toIntString(s))
		}
	case tokYear5, tokYear6:
		p.setField(FieldYear, toIntString(s))
	case tokMeridiem, tokMeridiemLower:
		p.isPM = p.loc.IsPM(s)
		p.meridiem = s
	case tokHour, tokHour2:
		p.setField(FieldHour, toIntString(s))
	case tokHour24, tokHour24Pad:
		if v := toIntString(s); v == 24 {
			p.setField(FieldHour, 0)
		} else {
			p.setField(FieldHour, v)
		}
	case tokHour12, tokHour12Pad:
		p.setField(FieldHour, toIntString(s))
		p.flags.BigHour = true
	case tokhmm, tokHmm:
		n := len(s) - 2
		p.setField(FieldHour, toIntString(s[:n]))
		p.setField(FieldMinute, toIntString(s[n:]))
		p.flags.BigHour = p.flags.BigHour || t.kind == tokhmm
	case tokhmmss, tokHmmss:
		n1, n2 := len(s)-4, len(s)-2
		p.setField(FieldHour, toIntString(s[:n1]))
		p.setField(FieldMinute, toIntString(s[n1:n2]))
		p.setField(FieldSecond, toIntString(s[n2:]))
		p.flags.BigHour = p.flags.BigHour || t.kind == tokhmmss
	case tokMinute, tokMinute2:
		p.setField(FieldMinute, toIntString(s))
	case tokSecond, tokSecond2:
		p.setField(FieldSecond, toIntString(s))
	case tokFraction:
		p.setField(FieldMillisecond, fractionMillis(s))
	case tokOffset, tokOffsetBasic:
		if v, ok := offsetFromString(matchShortOffset, s); ok {
			p.tzm, p.hasTZM = v, true
		}
	case tokUnix:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			p.instant, p.hasInst = int64(math.Trunc(f*1000)), true
		}
	case tokUnixMilli:
		p.instant, p.hasInst = int64(toIntString(s)), true
	}
}

func toIntString(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// twoDigitYear maps 00-68 to 2000-2068 and 69-99 to 1969-1999.
func twoDigitYear(s string) int {
	v := toIntString(s)
	if v > 68 {
		return v + 1900
	}
	return v + 2000
}

// fractionMillis truncates a fraction of a second to milliseconds.
func fractionMillis(s string) int {
	if len(s) > 3 {
		s = s[:3]
	}
	for len(s) < 3 {
		s += "0"
	}
	return toIntString(s)
}

// offsetFromString finds the last offset matched by re in s and returns it
// in minutes east of UTC.
func offsetFromString(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindAllString(s, -1)
	if len(m) == 0 {
		return 0, false
	}
	parts := chunkOffset.FindAllString(m[len(m)-1], -1)
	if len(parts) < 2 {
		return 0, true
	}
	minutes := toIntString(parts[1]) * 60
	if len(parts) > 2 {
		minutes += toIntString(parts[2])
	}
	if parts[0] == "-" {
		minutes = -minutes
	}
	return minutes, true
}

// weekInfo sets the year and day of year from week tokens.
func (p *parser) weekInfo() {
	w := p.week
	get := func(k string) (int, bool) {
		v, ok := w[k]
		return v, ok
	}
	or := func(k string, def func() int) int {
		if v, ok := w[k]; ok {
			return v
		}
		return def()
	}
	now := p.now()

	var (
		rule     calendar.WeekRule
		weekYear int
		week     int
		weekday  int
		overflow bool
	)
	_, hasGG := get("GG")
	_, hasW := get("W")
	_, hasE := get("E")
	if hasGG || hasW || hasE {
		rule = calendar.ISOWeek
		weekYear = or("GG", func() int {
			if p.set[FieldYear] {
				return p.a[FieldYear]
			}
			_, y := rule.WeekOfYear(now.year, now.dayOfYear())
			return y
		})
		week = or("W", func() int { return 1 })
		weekday = or("E", func() int { return 1 })
		overflow = weekday < 1 || weekday > 7
	} else {
		rule = p.loc.Week()
		curWeek, curYear := rule.WeekOfYear(now.year, now.dayOfYear())
		weekYear = or("gg", func() int {
			if p.set[FieldYear] {
				return p.a[FieldYear]
			}
			return curYear
		})
		week = or("w", func() int { return curWeek })
		if d, ok := get("d"); ok {
			weekday = d
			overflow = d < 0 || d > 6
		} else if e, ok := get("e"); ok {
			weekday = e + rule.FirstDay
			overflow = e < 0 || e > 6
		} else {
			weekday = rule.FirstDay
		}
	}
	switch {
	case week < 1 || week > rule.WeeksInYear(weekYear):
		p.flags.overflowWeeks = true
	case overflow:
		p.flags.overflowWeekday = true
	default:
		y, doy := rule.DayOfYearFromWeeks(weekYear, week, weekday)
		p.setField(FieldYear, y)
		p.dayOfYear, p.hasDOY = doy, true
	}
}

// now returns the current wall time in the frame used for defaults.
func (p *parser) now() civil {
	ms := p.o.clock().UnixMilli()
	if p.hasTZM {
		return civilFromWall(ms)
	}
	f := p.o.frame()
	return civilFromWall(ms + int64(f.offsetAt(ms))*msPerMinute)
}

// fromArray resolves the parsed fields into an instant, filling in missing
// fields.
func (p *parser) fromArray() (ms int64) {
	if p.hasInst {
		return p.instant
	}
	if p.week != nil && !p.set[FieldDate] && !p.set[FieldMonth] {
		p.weekInfo()
	}
	var now civil
	var haveNow bool
	today := func() civil {
		if !haveNow {
			now, haveNow = p.now(), true
		}
		return now
	}
	if p.hasDOY {
		y := today().year
		if p.set[FieldYear] {
			y = p.a[FieldYear]
		}
		if p.dayOfYear > calendar.DaysInYear(y) || p.dayOfYear == 0 {
			p.flags.overflowDayOfYear = true
		}
		d := calendar.DateFromDays(calendar.MakeDays(y, 0, p.dayOfYear))
		p.setField(FieldMonth, int(d.Month)-1)
		p.setField(FieldDate, d.Day)
	}
	i := 0
	for ; i < 3 && !p.set[i]; i++ {
		c := today()
		p.a[i] = [3]int{c.year, c.month, c.date}[i]
	}
	for ; i < 7; i++ {
		if !p.set[i] {
			if i == int(FieldDate) {
				p.a[i] = 1
			} else {
				p.a[i] = 0
			}
		}
	}
	hour := p.a[FieldHour]
	if hour == 24 && p.a[FieldMinute] == 0 && p.a[FieldSecond] == 0 && p.a[FieldMillisecond] == 0 {
		p.nextDay = true
		hour = 0
	}
	c := civil{
		year:        p.a[FieldYear],
		month:       p.a[FieldMonth],
		date:        p.a[FieldDate],
		hour:        hour,
		minute:      p.a[FieldMinute],
		second:      p.a[FieldSecond],
		millisecond: p.a[FieldMillisecond],
	}
	wall := c.wall()
	if d, ok := p.week["d"]; ok && d != calendar.Weekday(c.days()) {
		p.flags.WeekdayMismatch = true
	}
	if p.hasTZM {
		return wall - int64(p.tzm)*msPerMinute
	}
	return p.o.frame().instant(wall)
}

// checkOverflow records the first field out of range. It must be called after
// fromArray has filled in the missing fields, since the date is checked
// against the resolved month.
func (p *parser) checkOverflow() {
	a, set := p.a, p.set
	out := func(f Field, lo, hi int) bool {
		return set[f] && (a[f] < lo || a[f] > hi)
	}
	overflow := NoField
	switch {
	case out(FieldMonth, 0, 11):
		overflow = FieldMonth
	case !p.hasInst && (a[FieldDate] < 1 || a[FieldDate] > calendar.DaysInMonth(a[FieldYear], a[FieldMonth])):
		overflow = FieldDate
	case out(FieldHour, 0, 24) || (set[FieldHour] && a[FieldHour] == 24 && (a[FieldMinute] != 0 || a[FieldSecond] != 0 || a[FieldMillisecond] != 0)):
		overflow = FieldHour
	case out(FieldMinute, 0, 59):
		overflow = FieldMinute
	case out(FieldSecond, 0, 59):
		overflow = FieldSecond
	case out(FieldMillisecond, 0, 999):
		overflow = FieldMillisecond
	}
	if p.flags.overflowDayOfYear && (overflow < FieldYear || overflow > FieldDate) {
		overflow = FieldDate
	}
	if p.flags.overflowWeeks && overflow == NoField {
		overflow = FieldWeek
	}
	if p.flags.overflowWeekday && overflow == NoField {
		overflow = FieldWeekday
	}
	p.flags.Overflow = overflow
}

// build resolves the parsed state into a value.
func (p *parser) build() Moment {
	var ms int64
	if !p.flags.NullInput && !p.flags.InvalidFormat && !p.invalid {
		ms = p.fromArray()
		p.checkOverflow()
	}

	f := p.o.frame()
	if p.o.parseZone {
		if p.hasTZM {
			f = fixedFrame(p.tzm)
		} else if v, ok := offsetFromString(matchOffset, p.input); ok && !p.hasInst {
			f = fixedFrame(v)
		}
	}

	m := newMoment(ms, f, p.loc)
	m.valid = m.valid && !p.invalid && p.flags.valid(p.strict)
	if m.valid && p.nextDay {
		m = m.addDays(1)
	}
	m.info = &parseInfo{
		flags: p.flags,
		created: CreationData{
			Input:  p.input,
			Locale: p.loc.Tag(),
			IsUTC:  p.o.utc,
			Strict: p.strict,
		},
	}
	return m
}

// ParseFormat parses input with a format. An empty format is the same as
// Parse. ISO8601 and RFC2822 select the built-in formats.
func ParseFormat(input, format string, opts ...Option) Moment {
	if format == "" {
		return Parse(input, opts...)
	}
	o := buildOptions(opts)
	p := newParser(input, o)
	if input == "" {
		p.flags.NullInput = true
	} else {
		p.fromFormat(format)
	}
	m := p.build()
	m.info.created.Format = format
	return m
}

// ParseFormats parses input with each format and returns the best match. A
// format which parses validly is preferred, then whichever leaves the least
// input and the fewest tokens unused.
func ParseFormats(input string, formats []string, opts ...Option) Moment {
	o := buildOptions(opts)
	if len(formats) == 0 {
		p := newParser(input, o)
		p.flags.InvalidFormat = true
		m := p.build()
		m.valid = false
		return m
	}
	var (
		best      Moment
		bestScore int
		bestValid bool
		have      bool
	)
	for _, format := range formats {
		m := ParseFormat(input, format, opts...)
		f := m.info.flags
		score := f.CharsLeftOver + 10*len(f.UnusedTokens)
		switch {
		case !bestValid:
			if !have || score < bestScore || m.valid {
				best, bestScore, have = m, score, true
				bestValid = m.valid
			}
		case score < bestScore:
			best, bestScore = m, score
		}
	}
	best.info.created.Formats = formats
	return best
}

// FromArray creates a value from [year, month, date, hour, minute, second,
// millisecond], where the month is zero-based. Missing leading fields are
// taken from the current date, and missing trailing fields are zero (one for
// the date).
func FromArray(a []int, opts ...Option) Moment {
	o := buildOptions(opts)
	p := newParser("", o)
	for i, v := range a[:min(len(a), 7)] {
		p.setField(Field(i), v)
	}
	return p.build()
}

// FromFields creates a value from units (Year, Month, Date or Day, Hour,
// Minute, Second and Millisecond), like FromArray.
func FromFields(fields map[Unit]int, opts ...Option) Moment {
	o := buildOptions(opts)
	p := newParser("", o)
	for u, v := range fields {
		switch u {
		case Year:
			p.setField(FieldYear, v)
		case Month:
			p.setField(FieldMonth, v)
		case Date, Day:
			p.setField(FieldDate, v)
		case Hour:
			p.setField(FieldHour, v)
		case Minute:
			p.setField(FieldMinute, v)
		case Second:
			p.setField(FieldSecond, v)
		case Millisecond:
			p.setField(FieldMillisecond, v)
		}
	}
	return p.build()
}
