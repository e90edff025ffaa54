package moment

import (
	"fmt"

	"github.com/pgaskin/chrono/tz"
)

// UTCOffset returns the offset from UTC in minutes east, or 0 if m is
// invalid.
func (m Moment) UTCOffset() int {
	if !m.valid {
		return 0
	}
	return m.frame.offsetAt(m.ms)
}

// WithUTCOffset returns m with a fixed offset in minutes east of UTC. Values
// between -16 and 16 are taken as hours. If keepLocalTime is true, the wall
// time is kept instead of the instant.
func (m Moment) WithUTCOffset(offset int, keepLocalTime bool) Moment {
	if offset > -16 && offset < 16 {
		offset *= 60
	}
	return m.withFrame(fixedFrame(offset), keepLocalTime)
}

// WithUTCOffsetString is like WithUTCOffset, but with an offset string like
// +05:30, -0800, +03 or Z. It returns false if s doesn't contain an offset.
func (m Moment) WithUTCOffsetString(s string, keepLocalTime bool) (Moment, bool) {
	offset, ok := offsetFromString(matchShortOffset, s)
	if !ok {
		return m, false
	}
	return m.withFrame(fixedFrame(offset), keepLocalTime), true
}

// UTC returns m in UTC.
func (m Moment) UTC(keepLocalTime bool) Moment {
	return m.withFrame(fixedFrame(0), keepLocalTime)
}

// Local returns m in the host's zone.
func (m Moment) Local(keepLocalTime bool) Moment {
	return m.withFrame(frame{zone: localZone(), local: true}, keepLocalTime)
}

// Tz returns m in the named zone from the default registry. If the zone
// doesn't exist, m is returned unchanged with an error wrapping
// tz.ErrUnknownZone.
func (m Moment) Tz(name string, keepLocalTime bool) (Moment, error) {
	z, err := tz.Default().Lookup(name)
	if err != nil {
		return m, fmt.Errorf("moment: %w", err)
	}
	return m.InZone(z, keepLocalTime), nil
}

// InZone returns m in z.
func (m Moment) InZone(z *tz.Zone, keepLocalTime bool) Moment {
	return m.withFrame(zoneFrame(z), keepLocalTime)
}

// WithPolicy returns m with wall times in zone transitions resolved with p
// instead of the default registry's policy.
func (m Moment) WithPolicy(p tz.Policy) Moment {
	m.frame.policy = &p
	return m
}

func (m Moment) withFrame(f frame, keepLocalTime bool) Moment {
	if f.policy == nil {
		f.policy = m.frame.policy
	}
	if !m.valid {
		m.frame = f
		return m
	}
	wall := m.wall()
	m.frame = f
	if keepLocalTime {
		return m.withWall(wall)
	}
	return m
}

// ZoneAbbr returns the abbreviation of the zone in effect, "UTC" in UTC, or
// an empty string for other fixed offsets.
func (m Moment) ZoneAbbr() string {
	switch {
	case m.frame.zone != nil:
		return m.frame.zone.Abbr(m.ms)
	case m.frame.offset == 0:
		return "UTC"
	}
	return ""
}

// ZoneName returns the name of the zone, "Coordinated Universal Time" in UTC,
// or an empty string for the host zone and other fixed offsets.
func (m Moment) ZoneName() string {
	switch {
	case m.frame.local:
		return ""
	case m.frame.zone != nil:
		return m.frame.zone.Name
	case m.frame.offset == 0:
		return "Coordinated Universal Time"
	}
	return ""
}

// Zone returns the named zone m is in, if any. For the host zone, the zone
// is derived from time.Local.
func (m Moment) Zone() (*tz.Zone, bool) {
	return m.frame.zone, m.frame.zone != nil
}

// IsUTC reports whether m is in UTC (or a zero fixed offset).
func (m Moment) IsUTC() bool {
	return m.frame.zone == nil && m.frame.offset == 0
}

// IsLocal reports whether m is in the host's zone.
func (m Moment) IsLocal() bool {
	return m.frame.local
}

// IsUTCOffset reports whether m is in a fixed offset or a named zone.
func (m Moment) IsUTCOffset() bool {
	return !m.frame.local
}

// IsDST reports whether the offset is larger than it is in January or June
// of the same year.
func (m Moment) IsDST() bool {
	if !m.valid || m.frame.zone == nil {
		return false
	}
	off := m.UTCOffset()
	return off > m.SetMonth(0).UTCOffset() || off > m.SetMonth(5).UTCOffset()
}
