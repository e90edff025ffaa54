package moment

import "math"

// IsBefore reports whether m is before other. With a unit other than
// Millisecond (or zero), m is compared at the end of the unit it is in.
// Invalid values are never before anything.
func (m Moment) IsBefore(other Moment, u Unit) bool {
	if !m.valid || !other.valid {
		return false
	}
	if u == 0 || u == Millisecond {
		return m.ms < other.ms
	}
	return m.EndOf(u).ms < other.ms
}

// IsAfter reports whether m is after other. With a unit, other is compared
// to the start of the unit m is in.
func (m Moment) IsAfter(other Moment, u Unit) bool {
	if !m.valid || !other.valid {
		return false
	}
	if u == 0 || u == Millisecond {
		return m.ms > other.ms
	}
	return other.ms < m.StartOf(u).ms
}

// IsSame reports whether other is within the same unit as m in m's frame.
func (m Moment) IsSame(other Moment, u Unit) bool {
	if !m.valid || !other.valid {
		return false
	}
	if u == 0 || u == Millisecond {
		return m.ms == other.ms
	}
	return m.StartOf(u).ms <= other.ms && other.ms <= m.EndOf(u).ms
}

func (m Moment) IsSameOrBefore(other Moment, u Unit) bool {
	return m.IsSame(other, u) || m.IsBefore(other, u)
}

func (m Moment) IsSameOrAfter(other Moment, u Unit) bool {
	return m.IsSame(other, u) || m.IsAfter(other, u)
}

// IsBetween reports whether m is between from and to. The inclusivity is
// two characters, "(" or "[" for from and ")" or "]" for to, where brackets
// include the bound. An empty inclusivity is "()".
func (m Moment) IsBetween(from, to Moment, u Unit, inclusivity string) bool {
	if !m.valid || !from.valid || !to.valid {
		return false
	}
	if len(inclusivity) != 2 {
		inclusivity = "()"
	}
	var a, b bool
	if inclusivity[0] == '(' {
		a = m.IsAfter(from, u)
	} else {
		a = !m.IsBefore(from, u)
	}
	if inclusivity[1] == ')' {
		b = m.IsBefore(to, u)
	} else {
		b = !m.IsAfter(to, u)
	}
	return a && b
}

// Min returns the earliest value, or the first invalid one. With no values,
// it returns the current time.
func Min(ms ...Moment) Moment {
	return pickBy(ms, Moment.IsBefore)
}

// Max returns the latest value, or the first invalid one. With no values, it
// returns the current time.
func Max(ms ...Moment) Moment {
	return pickBy(ms, Moment.IsAfter)
}

func pickBy(ms []Moment, fn func(Moment, Moment, Unit) bool) Moment {
	if len(ms) == 0 {
		return Now()
	}
	res := ms[0]
	for _, m := range ms[1:] {
		if !m.valid || fn(m, res, Millisecond) {
			res = m
		}
	}
	return res
}

// Diff returns m - other in a unit, truncated towards zero unless asFloat is
// set. Years, quarters and months are measured from the same day of the
// month, so a month is one unit whatever its length. Days and weeks ignore
// offset changes between the two instants. It returns NaN if either value is
// invalid.
func (m Moment) Diff(other Moment, u Unit, asFloat bool) float64 {
	if !m.valid || !other.valid {
		return math.NaN()
	}
	that := other
	that.frame = m.frame
	zoneDelta := float64(that.UTCOffset()-m.UTCOffset()) * msPerMinute
	delta := float64(m.ms - that.ms)

	var out float64
	switch u {
	case Year:
		out = monthDiff(m, that) / 12
	case Month:
		out = monthDiff(m, that)
	case Quarter:
		out = monthDiff(m, that) / 3
	case Second:
		out = delta / msPerSecond
	case Minute:
		out = delta / msPerMinute
	case Hour:
		out = delta / msPerHour
	case Day, Date:
		out = (delta - zoneDelta) / msPerDay
	case Week, ISOWeek:
		out = (delta - zoneDelta) / msPerWeek
	default:
		out = delta
	}
	if asFloat {
		return out
	}
	return absFloor(out)
}

// monthDiff returns the number of months from b to a, with the fraction
// relative to the length of the month around the anchor.
func monthDiff(a, b Moment) float64 {
	if a.Date() < b.Date() {
		return -monthDiff(b, a)
	}
	whole := (b.Year()-a.Year())*12 + (b.Month() - a.Month())
	anchor := a.addMonths(whole)
	var adjust float64
	if b.ms-anchor.ms < 0 {
		anchor2 := a.addMonths(whole - 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor.ms-anchor2.ms)
	} else {
		anchor2 := a.addMonths(whole + 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor2.ms-anchor.ms)
	}
	if r := -(float64(whole) + adjust); r != 0 {
		return r
	}
	return 0
}
