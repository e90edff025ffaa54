package tz

import (
	"fmt"
	"math"
	"time"
)

var (
	locationStart = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	locationEnd   = time.Date(2038, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// FromLocation builds a zone from the transitions of loc between 1800 and
// 2038. The period in effect at the start of 2038 continues forever.
// Consecutive periods with the same abbreviation and offset are merged, and
// offsets are rounded to the minute.
func FromLocation(name string, loc *time.Location) (*Zone, error) {
	if loc == nil {
		return nil, fmt.Errorf("from location %q: nil location", name)
	}
	if name == "" {
		name = loc.String()
	}
	z := &Zone{Name: name}
	t := locationStart.In(loc)
	for {
		abbr, off := t.Zone()
		_, end := t.ZoneBounds()
		until := Forever
		if !end.IsZero() && end.Before(locationEnd) && end.After(t) {
			until = end.UnixMilli()
		}
		z.addPeriod(abbr, int(math.Round(float64(off)/60)), until)
		if until == Forever {
			break
		}
		t = end
	}
	return z, nil
}

// addPeriod appends a period, extending the last one instead if it is
// identical.
func (z *Zone) addPeriod(abbr string, off int, until int64) {
	if n := len(z.Untils); n != 0 && z.Abbrs[n-1] == abbr && z.Offsets[n-1] == off {
		z.Untils[n-1] = until
		return
	}
	z.Abbrs = append(z.Abbrs, abbr)
	z.Offsets = append(z.Offsets, off)
	z.Untils = append(z.Untils, until)
}
