package tz

import (
	"cmp"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// HostZoneName returns the IANA name of the host's timezone from the TZ
// environment variable or the /etc/localtime symlink.
func HostZoneName() (string, bool) {
	if v, ok := os.LookupEnv("TZ"); ok {
		if name := zoneinfoName(strings.TrimPrefix(v, ":")); name != "" {
			return name, true
		}
		return "", false
	}
	if v, err := os.Readlink("/etc/localtime"); err == nil {
		if name := zoneinfoName(v); name != "" && name != v {
			return name, true
		}
	}
	return "", false
}

// zoneinfoName extracts the zone name from a path in a zoneinfo directory.
func zoneinfoName(s string) string {
	if _, after, ok := strings.Cut(s, "zoneinfo/"); ok {
		return after
	}
	return s
}

// Guess returns the name of the zone the host is most likely in. If the host
// zone name is known and is in the registry, it is used. Otherwise, the zone
// is chosen based on the offsets of the local timezone over the past two
// years and the next two years. The result is cached unless ignoreCache is
// true.
func (r *Registry) Guess(ignoreCache bool) string {
	if !ignoreCache {
		r.guessMu.Lock()
		g := r.guessed
		r.guessMu.Unlock()
		if g != "" {
			return g
		}
	}
	v, _, _ := r.load.Do("\x00guess", func() (any, error) {
		var g string
		if name, ok := HostZoneName(); ok && len(name) > 3 {
			if z, ok := r.Zone(name); ok {
				g = z.Name
			} else {
				slog.Warn("zone data for host timezone not loaded, guessing from offsets", "name", name)
			}
		}
		if g == "" {
			g = r.GuessFrom(time.Local, time.Now())
		}
		r.guessMu.Lock()
		r.guessed = g
		r.guessMu.Unlock()
		return g, nil
	})
	return v.(string)
}

// offsetAt is a sample of a *time.Location.
type offsetAt struct {
	at     int64 // ms
	offset int   // minutes east
	abbr   string
}

func sampleOffset(loc *time.Location, t time.Time) offsetAt {
	t = t.In(loc)
	abbr, off := t.Zone()
	abbr = upperLetters(abbr)
	if abbr == "GMT" {
		abbr = ""
	}
	return offsetAt{
		at:     t.UnixMilli(),
		offset: off / 60,
		abbr:   abbr,
	}
}

func upperLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, s)
}

// findChange narrows down the minute the offset changes between low and
// high.
func findChange(loc *time.Location, low, high offsetAt) offsetAt {
	for {
		diff := (high.at - low.at) / 120000 * 60000
		if diff == 0 {
			return low
		}
		mid := sampleOffset(loc, time.UnixMilli(low.at+diff))
		if mid.offset == low.offset {
			low = mid
		} else {
			high = mid
		}
	}
}

// sampleOffsets samples loc on the first of each month for four years
// starting two years before now, including the instants around each change.
func sampleOffsets(loc *time.Location, now time.Time) []offsetAt {
	startYear := now.In(loc).Year() - 2
	last := sampleOffset(loc, time.Date(startYear, time.January, 1, 0, 0, 0, 0, loc))
	offsets := []offsetAt{last}
	for i := 1; i < 48; i++ {
		next := sampleOffset(loc, time.Date(startYear, time.Month(1+i), 1, 0, 0, 0, 0, loc))
		if next.offset != last.offset {
			change := findChange(loc, last, next)
			offsets = append(offsets, change, sampleOffset(loc, time.UnixMilli(change.at+60000)))
			last = next
		}
	}
	for i := 0; i < 4; i++ {
		offsets = append(offsets,
			sampleOffset(loc, time.Date(startYear+i, time.January, 1, 0, 0, 0, 0, loc)),
			sampleOffset(loc, time.Date(startYear+i, time.July, 1, 0, 0, 0, 0, loc)),
		)
	}
	return offsets
}

type zoneScore struct {
	zone        *Zone
	offsetScore int
	abbrScore   int
}

// GuessFrom returns the registered zone which best matches the offsets and
// abbreviations of loc around now. It returns an empty string if no zone has
// any of the offsets.
func (r *Registry) GuessFrom(loc *time.Location, now time.Time) string {
	offsets := sampleOffsets(loc, now)

	want := map[int]bool{}
	for _, o := range offsets {
		want[o.offset] = true
	}

	var scores []zoneScore
	for _, name := range r.zoneNames() {
		z, ok := r.Zone(name)
		if !ok || !slices.ContainsFunc(z.Offsets, func(off int) bool { return want[off] }) {
			continue
		}
		s := zoneScore{zone: z}
		for _, o := range offsets {
			s.offsetScore += abs(z.UTCOffset(o.at) - o.offset)
			if upperLetters(z.Abbr(o.at)) != o.abbr {
				s.abbrScore++
			}
		}
		scores = append(scores, s)
	}
	if len(scores) == 0 {
		return ""
	}
	slices.SortStableFunc(scores, func(a, b zoneScore) int {
		if c := cmp.Compare(a.offsetScore, b.offsetScore); c != 0 {
			return c
		}
		if c := cmp.Compare(a.abbrScore, b.abbrScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.zone.Population, a.zone.Population); c != 0 {
			return c
		}
		return strings.Compare(b.zone.Name, a.zone.Name)
	})
	return scores[0].zone.Name
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
