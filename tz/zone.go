// Package tz resolves UTC offsets and abbreviations for named timezones.
//
// Zones are lists of periods, each with an abbreviation, an offset, and the
// instant it ends. They may be loaded from moment-timezone style packed data,
// derived from Go's bundled tzdata, or generated from POSIX TZ rules.
package tz

import (
	"math"
	"slices"
	"sort"
	"time"
)

// Forever is the end of the last period of every zone.
const Forever int64 = math.MaxInt64

// Zone is a timezone. It must not be modified after it has been added to a
// registry.
type Zone struct {
	Name       string
	Abbrs      []string // per period
	Offsets    []int    // per period, in minutes east of UTC
	Untils     []int64  // per period, exclusive end in unix milliseconds
	Population int64
	Countries  []string // ISO 3166 alpha-2 codes
}

// Policy controls how wall-clock times in a transition are resolved.
type Policy struct {
	// MoveAmbiguousForward uses the later offset for a wall time which occurs
	// twice (i.e., the repeated hour when clocks are turned back).
	MoveAmbiguousForward bool

	// MoveInvalidForward shifts a wall time which doesn't exist (i.e., the
	// skipped hour when clocks are turned forward) past the transition.
	MoveInvalidForward bool
}

// DefaultPolicy uses the earlier offset for ambiguous times and moves
// non-existent times forward.
var DefaultPolicy = Policy{
	MoveAmbiguousForward: false,
	MoveInvalidForward:   true,
}

// Index returns the index of the period containing the instant ms.
func (z *Zone) Index(ms int64) int {
	if i := sort.Search(len(z.Untils), func(i int) bool { return z.Untils[i] > ms }); i < len(z.Untils) {
		return i
	}
	return len(z.Untils) - 1
}

// Abbr returns the abbreviation in effect at the instant ms.
func (z *Zone) Abbr(ms int64) string {
	return z.Abbrs[z.Index(ms)]
}

// UTCOffset returns the offset in minutes east of UTC in effect at the
// instant ms.
func (z *Zone) UTCOffset(ms int64) int {
	return z.Offsets[z.Index(ms)]
}

// IsDST reports whether the period containing ms has a larger offset than
// the closest standard period around it.
func (z *Zone) IsDST(ms int64) bool {
	i := z.Index(ms)
	off := z.Offsets[i]
	if i > 0 && z.Offsets[i-1] < off {
		return true
	}
	if i+1 < len(z.Offsets) && z.Offsets[i+1] < off {
		return true
	}
	return false
}

// Parse returns the offset to subtract from the wall-clock time wall (unix
// milliseconds as if it were UTC) to get the instant, using DefaultPolicy.
func (z *Zone) Parse(wall int64) int {
	return z.ParseWith(wall, DefaultPolicy)
}

// ParseWith is like Parse, but with a custom policy.
func (z *Zone) ParseWith(wall int64, p Policy) int {
	last := len(z.Untils) - 1
	for i := 0; i < last; i++ {
		off, next, prev := z.Offsets[i], z.Offsets[i+1], z.Offsets[max(i-1, 0)]
		if off > next && p.MoveAmbiguousForward {
			off = next
		} else if off < prev && p.MoveInvalidForward {
			off = prev
		}
		if wall < z.Untils[i]+int64(off)*60000 {
			return z.Offsets[i]
		}
	}
	return z.Offsets[last]
}

// Instant converts a wall-clock time to an instant using Parse.
func (z *Zone) Instant(wall int64, p Policy) int64 {
	return wall - int64(z.ParseWith(wall, p))*60000
}

// IsFixed reports whether the zone has a single period.
func (z *Zone) IsFixed() bool {
	return len(z.Untils) == 1
}

// Valid checks whether the zone is well-formed.
func (z *Zone) Valid() bool {
	n := len(z.Untils)
	if z.Name == "" || n == 0 || len(z.Abbrs) != n || len(z.Offsets) != n || z.Untils[n-1] != Forever {
		return false
	}
	for i := 1; i < n; i++ {
		if z.Untils[i] < z.Untils[i-1] {
			return false
		}
	}
	return true
}

// WithName returns a copy of z with a different display name. The period
// data is shared.
func (z *Zone) WithName(name string) *Zone {
	c := *z
	c.Name = name
	return &c
}

// FilterYears returns a copy of z containing only the periods which overlap
// the years from start to end (inclusive, UTC).
func (z *Zone) FilterYears(start, end int) *Zone {
	if start > end {
		start, end = end, start
	}
	lo, hi := 0, len(z.Untils)
	for i, u := range z.Untils {
		if u == Forever {
			continue
		}
		y := time.UnixMilli(u).UTC().Year()
		if y < start {
			lo = i + 1
		}
		if y > end {
			hi = min(hi, i+1)
		}
	}
	lo = min(lo, hi-1)
	c := *z
	c.Abbrs = slices.Clone(z.Abbrs[lo:hi])
	c.Offsets = slices.Clone(z.Offsets[lo:hi])
	c.Untils = slices.Clone(z.Untils[lo:hi])
	c.Untils[len(c.Untils)-1] = Forever
	return &c
}

func (z *Zone) String() string {
	return z.Name
}
