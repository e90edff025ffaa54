package moment

import (
	"math"
	"sync"

	"github.com/pgaskin/chrono/locale"
)

// Thresholds are the limits used to pick relative time strings. A value
// below a threshold uses the unit, otherwise the next larger unit is used.
// A zero W disables weeks.
type Thresholds struct {
	SS int // seconds, below which "a few seconds" is used
	S  int // seconds, below which seconds are used
	M  int // minutes
	H  int // hours
	D  int // days
	W  int // weeks
	MM int // months
}

// DefaultThresholds are the initial relative time thresholds.
var DefaultThresholds = Thresholds{SS: 44, S: 45, M: 45, H: 22, D: 26, W: 0, MM: 11}

var relativeTime = struct {
	mu         sync.RWMutex
	thresholds Thresholds
	rounding   func(float64) float64
}{
	thresholds: DefaultThresholds,
	rounding:   roundHalfUp,
}

// RelativeTimeThresholds returns the current relative time thresholds.
func RelativeTimeThresholds() Thresholds {
	relativeTime.mu.RLock()
	defer relativeTime.mu.RUnlock()
	return relativeTime.thresholds
}

// SetRelativeTimeThreshold sets one threshold by name (ss, s, m, h, d, w or
// M). Setting s also sets ss to one less. It returns false for unknown names.
func SetRelativeTimeThreshold(name string, v int) bool {
	relativeTime.mu.Lock()
	defer relativeTime.mu.Unlock()
	t := &relativeTime.thresholds
	switch name {
	case "ss":
		t.SS = v
	case "s":
		t.S, t.SS = v, v-1
	case "m":
		t.M = v
	case "h":
		t.H = v
	case "d":
		t.D = v
	case "w":
		t.W = v
	case "M":
		t.MM = v
	default:
		return false
	}
	return true
}

// SetRelativeTimeThresholds replaces all thresholds.
func SetRelativeTimeThresholds(t Thresholds) {
	relativeTime.mu.Lock()
	defer relativeTime.mu.Unlock()
	relativeTime.thresholds = t
}

// SetRelativeTimeRounding sets the function used to round durations before
// picking a relative time string. A nil function restores the default, which
// rounds halves up.
func SetRelativeTimeRounding(fn func(float64) float64) {
	relativeTime.mu.Lock()
	defer relativeTime.mu.Unlock()
	if fn == nil {
		fn = roundHalfUp
	}
	relativeTime.rounding = fn
}

// Humanize describes d in words, like "3 days", or "in 3 days" if withSuffix
// is set.
func (d Duration) Humanize(withSuffix bool) string {
	return d.HumanizeWith(withSuffix, RelativeTimeThresholds())
}

// HumanizeWith is like Humanize, but with custom thresholds.
func (d Duration) HumanizeWith(withSuffix bool, th Thresholds) string {
	l := d.Locale()
	if d.invalid {
		return l.InvalidDate()
	}
	relativeTime.mu.RLock()
	round := relativeTime.rounding
	relativeTime.mu.RUnlock()

	out := relativeDuration(d, !withSuffix, th, round, l)
	if withSuffix {
		out = l.PastFuture(d.AsMilliseconds(), out)
	}
	return out
}

func relativeDuration(d Duration, withoutSuffix bool, th Thresholds, round func(float64) float64, l *locale.Locale) string {
	a := d.Abs()
	var (
		seconds = int(round(a.As(Second)))
		minutes = int(round(a.As(Minute)))
		hours   = int(round(a.As(Hour)))
		days    = int(round(a.As(Day)))
		months  = int(round(a.As(Month)))
		weeks   = int(round(a.As(Week)))
		years   = int(round(a.As(Year)))
	)
	key, n := "yy", years
	switch {
	case seconds <= th.SS:
		key, n = "s", seconds
	case seconds < th.S:
		key, n = "ss", seconds
	case minutes <= 1:
		key, n = "m", 1
	case minutes < th.M:
		key, n = "mm", minutes
	case hours <= 1:
		key, n = "h", 1
	case hours < th.H:
		key, n = "hh", hours
	case days <= 1:
		key, n = "d", 1
	case days < th.D:
		key, n = "dd", days
	case th.W != 0 && weeks <= 1:
		key, n = "w", 1
	case th.W != 0 && weeks < th.W:
		key, n = "ww", weeks
	case months <= 1:
		key, n = "M", 1
	case months < th.MM:
		key, n = "MM", months
	case years <= 1:
		key, n = "y", 1
	}
	if n == 0 {
		n = 1
	}
	return l.RelativeTime(n, withoutSuffix, key, d.AsMilliseconds() > 0)
}

// From describes the time from other to m, like "in 3 days" or "3 days ago".
func (m Moment) From(other Moment, withoutSuffix bool) string {
	if !m.valid || !other.valid {
		return m.Locale().InvalidDate()
	}
	return Between(other, m).WithLocaleData(m.Locale()).Humanize(!withoutSuffix)
}

// To describes the time from m to other.
func (m Moment) To(other Moment, withoutSuffix bool) string {
	if !m.valid || !other.valid {
		return m.Locale().InvalidDate()
	}
	return Between(m, other).WithLocaleData(m.Locale()).Humanize(!withoutSuffix)
}

// FromNow describes the time from now to m.
func (m Moment) FromNow(withoutSuffix bool) string {
	return m.From(Now(), withoutSuffix)
}

// ToNow describes the time from m to now.
func (m Moment) ToNow(withoutSuffix bool) string {
	return m.To(Now(), withoutSuffix)
}

// CalendarFormat returns the calendar key for m relative to the start of the
// day of ref: lastWeek, lastDay, sameDay, nextDay, nextWeek or sameElse.
func (m Moment) CalendarFormat(ref Moment) string {
	sod := ref
	sod.frame = m.frame
	sod = sod.StartOf(Day)
	diff := m.Diff(sod, Day, true)
	switch {
	case math.IsNaN(diff):
		return "sameElse"
	case diff < -6:
		return "sameElse"
	case diff < -1:
		return "lastWeek"
	case diff < 0:
		return "lastDay"
	case diff < 1:
		return "sameDay"
	case diff < 2:
		return "nextDay"
	case diff < 7:
		return "nextWeek"
	}
	return "sameElse"
}

// Calendar formats m relative to ref, like "Today at 2:30 PM". An invalid ref
// is the current time. Formats override the locale's calendar templates by
// key.
func (m Moment) Calendar(ref Moment, formats map[string]string) string {
	if !ref.valid {
		ref = Now()
	}
	key := m.CalendarFormat(ref)
	format, ok := formats[key]
	if !ok || format == "" {
		format = m.Locale().Calendar(key)
	}
	return m.Format(format)
}
