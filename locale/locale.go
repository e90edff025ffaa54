// Package locale stores the language-specific naming, week numbering and
// phrasing rules used to format and parse dates.
package locale

import (
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/pgaskin/chrono/calendar"
	"golang.org/x/text/cases"
)

// Spec is a (possibly partial) locale definition. Zero-valued fields are
// inherited from the parent locale, or from the base English configuration if
// there isn't one. Map fields are merged key-by-key.
type Spec struct {
	Parent string `yaml:"parentLocale" toml:"parentLocale"`

	Months           []string `yaml:"months" toml:"months"`
	MonthsShort      []string `yaml:"monthsShort" toml:"monthsShort"`
	MonthsParseExact bool     `yaml:"monthsParseExact" toml:"monthsParseExact"`
	Weekdays         []string `yaml:"weekdays" toml:"weekdays"`
	WeekdaysShort    []string `yaml:"weekdaysShort" toml:"weekdaysShort"`
	WeekdaysMin      []string `yaml:"weekdaysMin" toml:"weekdaysMin"`

	// LongDateFormat maps LT, LTS, L, LL, LLL and LLLL (and optionally the
	// lowercase variants) to format templates.
	LongDateFormat map[string]string `yaml:"longDateFormat" toml:"longDateFormat"`

	// Calendar maps sameDay, nextDay, nextWeek, lastDay, lastWeek and
	// sameElse to format templates.
	Calendar map[string]string `yaml:"calendar" toml:"calendar"`

	// RelativeTime maps future, past (with %s) and s, ss, m, mm, h, hh, d, dd,
	// w, ww, M, MM, y, yy (with %d) to phrases.
	RelativeTime map[string]string `yaml:"relativeTime" toml:"relativeTime"`

	// Ordinal is a template where %d is replaced with the number.
	Ordinal      string `yaml:"ordinal" toml:"ordinal"`
	OrdinalParse string `yaml:"dayOfMonthOrdinalParse" toml:"dayOfMonthOrdinalParse"`

	AM            string `yaml:"am" toml:"am"`
	PM            string `yaml:"pm" toml:"pm"`
	MeridiemParse string `yaml:"meridiemParse" toml:"meridiemParse"`

	Week *Week `yaml:"week" toml:"week"`

	InvalidDate string `yaml:"invalidDate" toml:"invalidDate"`

	// Hooks for locales defined in Go. They take precedence over the
	// corresponding template fields.
	OrdinalFunc  func(n int, token string) string          `yaml:"-" toml:"-"`
	MeridiemFunc func(hour, minute int, lower bool) string `yaml:"-" toml:"-"`
	IsPMFunc     func(s string) bool                       `yaml:"-" toml:"-"`
}

// Week is the week numbering rule in the dow/doy form used by CLDR-derived
// locale data, where doy is 7 + dow - janX and janX is the day of January
// always in week 1.
type Week struct {
	Dow int `yaml:"dow" toml:"dow"`
	Doy int `yaml:"doy" toml:"doy"`
}

// merge returns s with the non-zero fields of o applied over it.
func (s Spec) merge(o Spec) Spec {
	r := s
	r.Parent = o.Parent
	if o.Months != nil {
		r.Months = o.Months
	}
	if o.MonthsShort != nil {
		r.MonthsShort = o.MonthsShort
	}
	if o.MonthsParseExact {
		r.MonthsParseExact = true
	}
	if o.Weekdays != nil {
		r.Weekdays = o.Weekdays
	}
	if o.WeekdaysShort != nil {
		r.WeekdaysShort = o.WeekdaysShort
	}
	if o.WeekdaysMin != nil {
		r.WeekdaysMin = o.WeekdaysMin
	}
	r.LongDateFormat = mergeMap(s.LongDateFormat, o.LongDateFormat)
	r.Calendar = mergeMap(s.Calendar, o.Calendar)
	r.RelativeTime = mergeMap(s.RelativeTime, o.RelativeTime)
	if o.Ordinal != "" {
		r.Ordinal = o.Ordinal
		r.OrdinalFunc = nil
	}
	if o.OrdinalFunc != nil {
		r.OrdinalFunc = o.OrdinalFunc
	}
	if o.OrdinalParse != "" {
		r.OrdinalParse = o.OrdinalParse
	}
	if o.AM != "" {
		r.AM = o.AM
		r.MeridiemFunc = nil
	}
	if o.PM != "" {
		r.PM = o.PM
		r.MeridiemFunc, r.IsPMFunc = nil, nil
	}
	if o.MeridiemFunc != nil {
		r.MeridiemFunc = o.MeridiemFunc
	}
	if o.IsPMFunc != nil {
		r.IsPMFunc = o.IsPMFunc
	}
	if o.MeridiemParse != "" {
		r.MeridiemParse = o.MeridiemParse
	}
	if o.Week != nil {
		w := *o.Week
		r.Week = &w
	}
	if o.InvalidDate != "" {
		r.InvalidDate = o.InvalidDate
	}
	return r
}

func mergeMap(a, b map[string]string) map[string]string {
	r := make(map[string]string, len(a)+len(b))
	maps.Copy(r, a)
	maps.Copy(r, b)
	return r
}

// Locale is a fully resolved locale configuration. It is immutable.
type Locale struct {
	tag  string
	spec Spec
	prev *Locale // for reverting updates

	week calendar.WeekRule

	monthsAll, monthsLong, monthsShort              *calendar.NameMatcher
	weekdaysAll, weekdaysLong, weekdaysShort, wdMin *calendar.NameMatcher

	ordinalParse        *regexp.Regexp
	ordinalParseLenient *regexp.Regexp
	meridiemParse       *regexp.Regexp
}

func newLocale(tag string, spec Spec) (*Locale, error) {
	l := &Locale{
		tag:  tag,
		spec: spec,
	}
	if len(spec.Months) != 12 || len(spec.MonthsShort) != 12 {
		return nil, errorf(tag, "need 12 month names, got %d and %d", len(spec.Months), len(spec.MonthsShort))
	}
	if len(spec.Weekdays) != 7 || len(spec.WeekdaysShort) != 7 || len(spec.WeekdaysMin) != 7 {
		return nil, errorf(tag, "need 7 weekday names, got %d, %d and %d", len(spec.Weekdays), len(spec.WeekdaysShort), len(spec.WeekdaysMin))
	}
	if spec.Week != nil {
		l.week = calendar.WeekRuleFromDoy(spec.Week.Dow, spec.Week.Doy)
		if l.week.FirstDay < 0 || l.week.FirstDay > 6 || l.week.AnchorDay < 1 || l.week.AnchorDay > 7 {
			return nil, errorf(tag, "invalid week rule dow=%d doy=%d", spec.Week.Dow, spec.Week.Doy)
		}
	}

	l.monthsAll = calendar.NewNameMatcher(spec.Months, spec.MonthsShort)
	l.monthsLong = calendar.NewNameMatcher(spec.Months)
	l.monthsShort = calendar.NewNameMatcher(spec.MonthsShort)
	l.weekdaysAll = calendar.NewNameMatcher(spec.Weekdays, spec.WeekdaysShort, spec.WeekdaysMin)
	l.weekdaysLong = calendar.NewNameMatcher(spec.Weekdays)
	l.weekdaysShort = calendar.NewNameMatcher(spec.WeekdaysShort)
	l.wdMin = calendar.NewNameMatcher(spec.WeekdaysMin)

	ordinal := spec.OrdinalParse
	if ordinal == "" {
		ordinal = `\d{1,2}`
	}
	var err error
	if l.ordinalParse, err = regexp.Compile(`(?i)` + ordinal); err != nil {
		return nil, errorf(tag, "invalid ordinal parse regexp: %w", err)
	}
	l.ordinalParseLenient = regexp.MustCompile(`(?i)` + ordinal + `|\d{1,2}`)

	meridiem := spec.MeridiemParse
	if meridiem == "" {
		meridiem = regexp.QuoteMeta(spec.AM) + "|" + regexp.QuoteMeta(spec.PM)
	}
	if l.meridiemParse, err = regexp.Compile(`(?i)` + meridiem); err != nil {
		return nil, errorf(tag, "invalid meridiem parse regexp: %w", err)
	}
	return l, nil
}

// Tag returns the normalized language tag of the locale.
func (l *Locale) Tag() string {
	return l.tag
}

// Parent returns the tag of the parent locale, if any.
func (l *Locale) Parent() string {
	return l.spec.Parent
}

// Spec returns a copy of the resolved definition.
func (l *Locale) Spec() Spec {
	s := l.spec
	s.Months = append([]string(nil), s.Months...)
	s.MonthsShort = append([]string(nil), s.MonthsShort...)
	s.Weekdays = append([]string(nil), s.Weekdays...)
	s.WeekdaysShort = append([]string(nil), s.WeekdaysShort...)
	s.WeekdaysMin = append([]string(nil), s.WeekdaysMin...)
	s.LongDateFormat = maps.Clone(s.LongDateFormat)
	s.Calendar = maps.Clone(s.Calendar)
	s.RelativeTime = maps.Clone(s.RelativeTime)
	return s
}

// Months returns the full name of the zero-based month.
func (l *Locale) Months(month int) string {
	return l.spec.Months[calendar.Mod(month, 12)]
}

// MonthsShort returns the abbreviated name of the zero-based month.
func (l *Locale) MonthsShort(month int) string {
	return l.spec.MonthsShort[calendar.Mod(month, 12)]
}

// Weekdays returns the full name of the weekday (0 = Sunday).
func (l *Locale) Weekdays(day int) string {
	return l.spec.Weekdays[calendar.Mod(day, 7)]
}

// WeekdaysShort returns the abbreviated name of the weekday (0 = Sunday).
func (l *Locale) WeekdaysShort(day int) string {
	return l.spec.WeekdaysShort[calendar.Mod(day, 7)]
}

// WeekdaysMin returns the minimal name of the weekday (0 = Sunday).
func (l *Locale) WeekdaysMin(day int) string {
	return l.spec.WeekdaysMin[calendar.Mod(day, 7)]
}

// MonthsRegexp returns the anchored regexp used to parse a month name for the
// MMM or MMMM token. In strict mode, only the names for the token match.
func (l *Locale) MonthsRegexp(token string, strict bool) *regexp.Regexp {
	if strict {
		if token == "MMM" {
			return l.monthsShort.Regexp()
		}
		return l.monthsLong.Regexp()
	}
	return l.monthsAll.Regexp()
}

// MonthsParse returns the zero-based month for a name matched by
// MonthsRegexp.
func (l *Locale) MonthsParse(name, token string, strict bool) (int, bool) {
	if strict {
		if token == "MMM" {
			return l.monthsShort.Index(name)
		}
		return l.monthsLong.Index(name)
	}
	if l.spec.MonthsParseExact && token == "MMM" {
		if m, ok := l.monthsAll.IndexIn(1, name); ok {
			return m, true
		}
	}
	return l.monthsAll.Index(name)
}

// WeekdaysRegexp returns the anchored regexp used to parse a weekday name
// for the dd, ddd or dddd token.
func (l *Locale) WeekdaysRegexp(token string, strict bool) *regexp.Regexp {
	if strict {
		switch token {
		case "dd":
			return l.wdMin.Regexp()
		case "ddd":
			return l.weekdaysShort.Regexp()
		}
		return l.weekdaysLong.Regexp()
	}
	return l.weekdaysAll.Regexp()
}

// WeekdaysParse returns the weekday (0 = Sunday) for a name matched by
// WeekdaysRegexp.
func (l *Locale) WeekdaysParse(name, token string, strict bool) (int, bool) {
	if strict {
		switch token {
		case "dd":
			return l.wdMin.Index(name)
		case "ddd":
			return l.weekdaysShort.Index(name)
		}
		return l.weekdaysLong.Index(name)
	}
	return l.weekdaysAll.Index(name)
}

// LongDateFormat returns the template for a long date format key (e.g., LT).
// If a lowercase key (l, ll, lll, llll) isn't defined, it is derived from the
// uppercase one by shortening the month, day and weekday tokens.
func (l *Locale) LongDateFormat(key string) (string, bool) {
	if f := l.spec.LongDateFormat[key]; f != "" {
		return f, true
	}
	upper := strings.ToUpper(key)
	if upper == key {
		return "", false
	}
	f := l.spec.LongDateFormat[upper]
	if f == "" {
		return "", false
	}
	return shortenTokens.ReplaceAllStringFunc(f, func(tok string) string {
		switch tok {
		case "MMMM", "MM", "DD", "dddd":
			return tok[1:]
		}
		return tok
	}), true
}

var shortenTokens = regexp.MustCompile(`\[[^\[]*\]|MMMM|MMM|MM|DDDD|DDD|DD|dddd|ddd|dd`)

// Calendar returns the template for a calendar key, falling back to
// sameElse.
func (l *Locale) Calendar(key string) string {
	if f, ok := l.spec.Calendar[key]; ok {
		return f
	}
	return l.spec.Calendar["sameElse"]
}

// RelativeTime returns the phrase for a relative time key with the number
// substituted.
func (l *Locale) RelativeTime(n int, withoutSuffix bool, key string, isFuture bool) string {
	return strings.Replace(l.spec.RelativeTime[key], "%d", strconv.Itoa(n), 1)
}

// PastFuture wraps a relative time phrase with the past or future template
// depending on the sign of diff.
func (l *Locale) PastFuture(diff float64, output string) string {
	k := "past"
	if diff > 0 {
		k = "future"
	}
	return strings.Replace(l.spec.RelativeTime[k], "%s", output, 1)
}

// Ordinal formats n as an ordinal for the provided token (e.g., Do).
func (l *Locale) Ordinal(n int, token string) string {
	if l.spec.OrdinalFunc != nil {
		return l.spec.OrdinalFunc(n, token)
	}
	if l.spec.Ordinal == "" {
		return strconv.Itoa(n)
	}
	return strings.Replace(l.spec.Ordinal, "%d", strconv.Itoa(n), 1)
}

// OrdinalRegexp returns the regexp for parsing a day-of-month ordinal. The
// lenient version also accepts bare numbers.
func (l *Locale) OrdinalRegexp(strict bool) *regexp.Regexp {
	if strict {
		return l.ordinalParse
	}
	return l.ordinalParseLenient
}

// Meridiem returns the AM/PM designator for the time.
func (l *Locale) Meridiem(hour, minute int, lower bool) string {
	if l.spec.MeridiemFunc != nil {
		return l.spec.MeridiemFunc(hour, minute, lower)
	}
	s := l.spec.AM
	if hour > 11 {
		s = l.spec.PM
	}
	if lower {
		return cases.Lower(l.language()).String(s)
	}
	return s
}

// IsPM reports whether a parsed meridiem designator means PM.
func (l *Locale) IsPM(s string) bool {
	if l.spec.IsPMFunc != nil {
		return l.spec.IsPMFunc(s)
	}
	fold := cases.Fold()
	pm := []rune(fold.String(l.spec.PM))
	in := []rune(fold.String(strings.TrimSpace(s)))
	return len(pm) != 0 && len(in) != 0 && in[0] == pm[0]
}

// MeridiemRegexp returns the regexp for parsing a meridiem designator.
func (l *Locale) MeridiemRegexp() *regexp.Regexp {
	return l.meridiemParse
}

// Week returns the week numbering rule.
func (l *Locale) Week() calendar.WeekRule {
	return l.week
}

// InvalidDate returns the placeholder for formatting an invalid date.
func (l *Locale) InvalidDate() string {
	return l.spec.InvalidDate
}
