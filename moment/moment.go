// Package moment implements an immutable date value with token-based
// formatting, parsing, arithmetic and humanization.
//
// A Moment is an instant plus a frame (the local zone, a fixed UTC offset, or
// a named zone) which all calendar fields are computed in, and the locale used
// for names and templates. Invalid values are still values: they format as the
// locale's invalid date string, and ParsingFlags explains why they are
// invalid.
package moment

import (
	"math"
	"sync"
	"time"

	"github.com/pgaskin/chrono/locale"
	"github.com/pgaskin/chrono/tz"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay

	// maxTime is the largest absolute instant supported, the same as for
	// ECMAScript dates (±100,000,000 days from the epoch).
	maxTime = 100_000_000 * msPerDay
)

// Moment is a point in time in a frame. The zero value is invalid. Methods
// which change a Moment return a new one.
type Moment struct {
	ms    int64
	valid bool
	frame frame
	loc   *locale.Locale
	info  *parseInfo // nil unless created from input
}

// frame is what a Moment's fields are computed in.
type frame struct {
	zone   *tz.Zone   // nil for a fixed offset
	offset int        // minutes east of UTC, if zone is nil
	local  bool       // zone is the host's zone
	policy *tz.Policy // nil uses the default registry's policy
}

var localZone = sync.OnceValue(func() *tz.Zone {
	z, err := tz.FromLocation("Local", time.Local)
	if err != nil {
		panic(err)
	}
	return z
})

// localFrame returns the default zone of the default registry if one is set,
// and the host zone otherwise.
func localFrame() frame {
	if z, ok := tz.Default().DefaultZone(); ok {
		return frame{zone: z}
	}
	return frame{zone: localZone(), local: true}
}

func fixedFrame(offset int) frame {
	return frame{offset: offset}
}

func zoneFrame(z *tz.Zone) frame {
	return frame{zone: z}
}

func (f frame) offsetAt(ms int64) int {
	if f.zone != nil {
		return f.zone.UTCOffset(ms)
	}
	return f.offset
}

// instant converts a wall time in the frame to an instant.
func (f frame) instant(wall int64) int64 {
	if f.zone != nil {
		p := f.policy
		if p == nil {
			v := tz.Default().Policy()
			p = &v
		}
		return f.zone.Instant(wall, *p)
	}
	return wall - int64(f.offset)*msPerMinute
}

// Option configures how a Moment is created.
type Option func(*options)

type options struct {
	loc       *locale.Locale
	strict    bool
	utc       bool
	parseZone bool
	zone      *tz.Zone
	policy    *tz.Policy
	clock     func() time.Time
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc == nil {
		o.loc = locale.Current()
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}

// frame returns the frame a new value is created in.
func (o options) frame() frame {
	var f frame
	switch {
	case o.zone != nil:
		f = zoneFrame(o.zone)
	case o.utc || o.parseZone:
		f = fixedFrame(0)
	default:
		f = localFrame()
	}
	f.policy = o.policy
	return f
}

// WithPolicy resolves wall times in a zone transition with p instead of the
// default registry's policy. The policy is kept when the value is moved to
// another zone.
func WithPolicy(p tz.Policy) Option {
	return func(o *options) {
		o.policy = &p
	}
}

// WithLocale uses the first locale matching tags instead of the current one.
func WithLocale(tags ...string) Option {
	return func(o *options) {
		o.loc = locale.Resolve(tags...)
	}
}

// WithLocaleData uses l instead of the current locale.
func WithLocaleData(l *locale.Locale) Option {
	return func(o *options) {
		o.loc = l
	}
}

// Strict requires the input to match the format exactly.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// UTC creates the value in UTC, and interprets wall times without an offset
// as UTC.
func UTC() Option {
	return func(o *options) {
		o.utc = true
	}
}

// ParseZone keeps the offset from the parsed input as a fixed offset instead
// of converting to the local zone.
func ParseZone() Option {
	return func(o *options) {
		o.parseZone = true
	}
}

// InZone creates the value in z, and interprets wall times without an offset
// in it.
func InZone(z *tz.Zone) Option {
	return func(o *options) {
		o.zone = z
	}
}

// WithClock uses fn instead of time.Now for the current time.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		o.clock = fn
	}
}

func newMoment(ms int64, f frame, loc *locale.Locale) Moment {
	return Moment{
		ms:    ms,
		valid: ms >= -maxTime && ms <= maxTime,
		frame: f,
		loc:   loc,
	}
}

// Now returns the current time.
func Now(opts ...Option) Moment {
	o := buildOptions(opts)
	return newMoment(o.clock().UnixMilli(), o.frame(), o.loc)
}

// UnixMilli returns the value for milliseconds since the epoch.
func UnixMilli(ms int64, opts ...Option) Moment {
	o := buildOptions(opts)
	return newMoment(ms, o.frame(), o.loc)
}

// Unix returns the value for seconds since the epoch.
func Unix(sec int64, opts ...Option) Moment {
	o := buildOptions(opts)
	if sec > maxTime/msPerSecond || sec < -maxTime/msPerSecond {
		return newMoment(math.MaxInt64, o.frame(), o.loc)
	}
	return newMoment(sec*msPerSecond, o.frame(), o.loc)
}

// FromTime returns the value for the instant of t. Sub-millisecond precision
// is truncated.
func FromTime(t time.Time, opts ...Option) Moment {
	o := buildOptions(opts)
	return newMoment(t.UnixMilli(), o.frame(), o.loc)
}

// Invalid returns a value which is explicitly invalid.
func Invalid(opts ...Option) Moment {
	o := buildOptions(opts)
	m := newMoment(0, o.frame(), o.loc)
	m.valid = false
	m.info = &parseInfo{flags: defaultFlags()}
	m.info.flags.UserInvalidated = true
	return m
}

// IsValid reports whether m is a valid date.
func (m Moment) IsValid() bool {
	return m.valid
}

// Locale returns the locale used by m.
func (m Moment) Locale() *locale.Locale {
	if m.loc == nil {
		return locale.Current()
	}
	return m.loc
}

// SetLocale returns m with the first locale matching tags, or the current
// locale if none match.
func (m Moment) SetLocale(tags ...string) Moment {
	m.loc = locale.Resolve(tags...)
	return m
}

// ValueOf returns the milliseconds since the epoch, or 0 if m is invalid.
func (m Moment) ValueOf() int64 {
	if !m.valid {
		return 0
	}
	return m.ms
}

// Unix returns the seconds since the epoch, or 0 if m is invalid.
func (m Moment) Unix() int64 {
	if !m.valid {
		return 0
	}
	return floorDiv(m.ms, msPerSecond)
}

// Time returns m as a time.Time in the same frame. Named zones are converted
// to a fixed zone with the abbreviation and offset in effect at m.
func (m Moment) Time() time.Time {
	t := time.UnixMilli(m.ms)
	switch {
	case m.frame.local:
		return t.In(time.Local)
	case m.frame.zone != nil:
		return t.In(time.FixedZone(m.frame.zone.Abbr(m.ms), m.UTCOffset()*60))
	case m.frame.offset == 0:
		return t.UTC()
	}
	return t.In(time.FixedZone("", m.frame.offset*60))
}

// wall returns the wall time in milliseconds, as if the frame were UTC.
func (m Moment) wall() int64 {
	return m.ms + int64(m.frame.offsetAt(m.ms))*msPerMinute
}

// withWall returns m at a new wall time in the same frame.
func (m Moment) withWall(wall int64) Moment {
	if !m.valid {
		return m
	}
	return m.withInstant(m.frame.instant(wall))
}

// withInstant returns m at a new instant.
func (m Moment) withInstant(ms int64) Moment {
	if !m.valid {
		return m
	}
	n := newMoment(ms, m.frame, m.loc)
	n.info = m.info
	return n
}
