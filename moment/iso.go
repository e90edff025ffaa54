package moment

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pgaskin/chrono/calendar"
)

// Special formats for ParseFormat and ParseFormats.
const (
	ISO8601 = "\x00ISO_8601"
	RFC2822 = "\x00RFC_2822"
)

var (
	extendedISORegex = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})-(?:\d\d-\d\d|W\d\d-\d|W\d\d|\d\d\d|\d\d))(?:(T| )(\d\d(?::\d\d(?::\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	basicISORegex    = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})(?:\d\d\d\d|W\d\d\d|W\d\d|\d\d\d|\d\d|))(?:(T| )(\d\d(?:\d\d(?:\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	tzRegex          = regexp.MustCompile(`Z|[+-]\d\d(?::?\d\d)?`)
	aspNetJSONRegex  = regexp.MustCompile(`(?i)^/?Date\((-?\d+)`)
)

type isoFormat struct {
	format    string
	re        *regexp.Regexp
	allowTime bool
}

var isoDates = []isoFormat{
	{"YYYYYY-MM-DD", regexp.MustCompile(`[+-]\d{6}-\d\d-\d\d`), true},
	{"YYYY-MM-DD", regexp.MustCompile(`\d{4}-\d\d-\d\d`), true},
	{"GGGG-[W]WW-E", regexp.MustCompile(`\d{4}-W\d\d-\d`), true},
	{"GGGG-[W]WW", regexp.MustCompile(`\d{4}-W\d\d`), false},
	{"YYYY-DDD", regexp.MustCompile(`\d{4}-\d{3}`), true},
	{"YYYY-MM", regexp.MustCompile(`\d{4}-\d\d`), false},
	{"YYYYYYMMDD", regexp.MustCompile(`[+-]\d{10}`), true},
	{"YYYYMMDD", regexp.MustCompile(`\d{8}`), true},
	{"GGGG[W]WWE", regexp.MustCompile(`\d{4}W\d{3}`), true},
	{"GGGG[W]WW", regexp.MustCompile(`\d{4}W\d{2}`), false},
	{"YYYYDDD", regexp.MustCompile(`\d{7}`), true},
	{"YYYYMM", regexp.MustCompile(`\d{6}`), false},
	{"YYYY", regexp.MustCompile(`\d{4}`), false},
}

var isoTimes = []isoFormat{
	{"HH:mm:ss.SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d\.\d+`), true},
	{"HH:mm:ss,SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d,\d+`), true},
	{"HH:mm:ss", regexp.MustCompile(`\d\d:\d\d:\d\d`), true},
	{"HH:mm", regexp.MustCompile(`\d\d:\d\d`), true},
	{"HHmmss.SSSS", regexp.MustCompile(`\d\d\d\d\d\d\.\d+`), true},
	{"HHmmss,SSSS", regexp.MustCompile(`\d\d\d\d\d\d,\d+`), true},
	{"HHmmss", regexp.MustCompile(`\d\d\d\d\d\d`), true},
	{"HHmm", regexp.MustCompile(`\d\d\d\d`), true},
	{"HH", regexp.MustCompile(`\d\d`), true},
}

// isoLayout returns the format for an ISO 8601 string, or false if it isn't
// one.
func isoLayout(s string) (string, bool) {
	m := extendedISORegex.FindStringSubmatch(s)
	if m == nil {
		if m = basicISORegex.FindStringSubmatch(s); m == nil {
			return "", false
		}
	}
	var (
		dateFormat string
		timeFormat string
		allowTime  bool
	)
	for _, f := range isoDates {
		if f.re.MatchString(m[1]) {
			dateFormat, allowTime = f.format, f.allowTime
			break
		}
	}
	if dateFormat == "" {
		return "", false
	}
	if m[3] != "" {
		sep := m[2]
		if sep == "" {
			sep = " "
		}
		for _, f := range isoTimes {
			if f.re.MatchString(m[3]) {
				timeFormat = sep + f.format
				break
			}
		}
		if timeFormat == "" || !allowTime {
			return "", false
		}
	}
	format := dateFormat + timeFormat
	if m[4] != "" {
		if !tzRegex.MatchString(m[4]) {
			return "", false
		}
		format += "Z"
	}
	return format, true
}

func (p *parser) fromISO() {
	format, ok := isoLayout(p.input)
	if !ok {
		p.invalid = true
		return
	}
	p.flags.ISO = true
	p.fromFormat(format)
}

var (
	rfc2822Regex = regexp.MustCompile(`^(?:(Mon|Tue|Wed|Thu|Fri|Sat|Sun),?\s)?(\d{1,2})\s(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s(\d{2,4})\s(\d\d):(\d\d)(?::(\d\d))?\s(?:(UT|GMT|[ECMP][SD]T)|([Zz])|([+-]\d{4}))$`)
	rfc2822Space = regexp.MustCompile(`\([^()]*\)|[\n\t]`)
	rfc2822Fold  = regexp.MustCompile(`\s\s+`)

	rfc2822Months   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	rfc2822Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	rfc2822Zones    = map[string]int{
		"UT":  0,
		"GMT": 0,
		"EDT": -4 * 60,
		"EST": -5 * 60,
		"CDT": -5 * 60,
		"CST": -6 * 60,
		"MDT": -6 * 60,
		"MST": -7 * 60,
		"PDT": -7 * 60,
		"PST": -8 * 60,
	}
)

// fromRFC2822 parses an RFC 2822 date after removing comments and folding
// whitespace.
func (p *parser) fromRFC2822() {
	s := rfc2822Space.ReplaceAllString(p.input, " ")
	s = strings.TrimSpace(rfc2822Fold.ReplaceAllString(s, " "))
	m := rfc2822Regex.FindStringSubmatch(s)
	if m == nil {
		p.invalid = true
		return
	}

	year := toIntString(m[4])
	switch {
	case year <= 49:
		year += 2000
	case year <= 999:
		year += 1900
	}
	month := indexOf(rfc2822Months, m[3])
	date := toIntString(m[2])

	if m[1] != "" && indexOf(rfc2822Weekdays, m[1]) != calendar.Weekday(calendar.MakeDays(year, month, date)) {
		p.flags.WeekdayMismatch = true
		p.invalid = true
		return
	}

	p.setField(FieldYear, year)
	p.setField(FieldMonth, month)
	p.setField(FieldDate, date)
	p.setField(FieldHour, toIntString(m[5]))
	p.setField(FieldMinute, toIntString(m[6]))
	if m[7] != "" {
		p.setField(FieldSecond, toIntString(m[7]))
	}

	switch {
	case m[8] != "":
		p.tzm = rfc2822Zones[m[8]]
	case m[9] != "":
		p.tzm = 0
	default:
		hm := toIntString(m[10])
		p.tzm = hm/100*60 + hm%100
	}
	p.hasTZM = true
	p.flags.RFC2822 = true
}

func indexOf(a []string, s string) int {
	for i, v := range a {
		if v == s {
			return i
		}
	}
	return -1
}

// fallbackLayouts are tried for input which isn't ISO 8601 or RFC 2822.
var fallbackLayouts = []struct {
	layout string
	zoned  bool
}{
	{"Mon Jan 02 2006 15:04:05 GMT-0700", true},
	{time.RFC1123Z, true},
	{time.RFC1123, true},
	{time.RFC850, true},
	{time.UnixDate, true},
	{time.RubyDate, true},
	{time.ANSIC, false},
	{"Mon Jan 02 2006 15:04:05", false},
	{"Mon Jan 02 2006", false},
	{"January 2, 2006 15:04:05", false},
	{"January 2, 2006", false},
	{"Jan 2, 2006 15:04:05", false},
	{"Jan 2, 2006", false},
	{"Jan 2 2006", false},
	{"2 January 2006", false},
	{"2 Jan 2006", false},
	{"2006/01/02 15:04:05", false},
	{"2006/01/02", false},
	{"1/2/2006 15:04:05", false},
	{"1/2/2006", false},
}

var fallbackWarning sync.Once

// fromFallback parses input in a few common layouts which aren't ISO 8601 or
// RFC 2822. This isn't reliable across inputs, so a warning is logged the
// first time it is used.
func (p *parser) fromFallback() {
	fallbackWarning.Do(func() {
		slog.Warn("value provided is not in a recognized RFC2822 or ISO format, falling back to a list of common layouts which is not reliable across all inputs", "input", p.input)
	})
	s := strings.TrimSpace(p.input)
	for _, l := range fallbackLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if l.zoned {
			p.instant, p.hasInst = t.UnixMilli(), true
			return
		}
		p.setField(FieldYear, t.Year())
		p.setField(FieldMonth, int(t.Month())-1)
		p.setField(FieldDate, t.Day())
		p.setField(FieldHour, t.Hour())
		p.setField(FieldMinute, t.Minute())
		p.setField(FieldSecond, t.Second())
		p.setField(FieldMillisecond, t.Nanosecond()/int(time.Millisecond))
		return
	}
	p.invalid = true
}

// Parse parses input without a format. It accepts ASP.NET JSON dates like
// /Date(1198908717056)/, ISO 8601 and RFC 2822. Other input is tried against
// a few common layouts unless Strict is set.
func Parse(input string, opts ...Option) Moment {
	o := buildOptions(opts)
	p := newParser(input, o)
	switch {
	case input == "":
		p.flags.NullInput = true
	case aspNetJSONRegex.MatchString(input):
		ms, err := strconv.ParseInt(aspNetJSONRegex.FindStringSubmatch(input)[1], 10, 64)
		if err != nil {
			p.invalid = true
		} else {
			p.instant, p.hasInst = ms, true
		}
	default:
		if p.fromISO(); !p.invalid {
			break
		}
		p.reset()
		if p.fromRFC2822(); !p.invalid {
			break
		}
		p.reset()
		if o.strict {
			p.invalid = true
			break
		}
		p.fromFallback()
	}
	return p.build()
}

// reset clears the state from a failed attempt. A weekday mismatch is kept
// so the value stays invalid.
func (p *parser) reset() {
	mismatch := p.flags.WeekdayMismatch
	*p = *newParser(p.input, p.o)
	p.flags.WeekdayMismatch = mismatch
}
