package tz

import (
	"fmt"
	"time"

	"github.com/pgaskin/chrono/calendar"
)

// FromPOSIX builds a zone from a POSIX TZ rule string (e.g.,
// EST5EDT,M3.2.0,M11.1.0), evaluating the DST rules for the years from
// fromYear to toYear. Outside that range, the standard offset (or the
// daylight offset for southern hemisphere rules before fromYear) is used.
func FromPOSIX(name, s string, fromYear, toYear int) (*Zone, error) {
	if fromYear > toYear {
		fromYear, toYear = toYear, fromYear
	}
	r, ok := parsePOSIX(s)
	if !ok {
		return nil, fmt.Errorf("parse posix tz %q: invalid rule string", s)
	}
	if name == "" {
		name = s
	}
	z := &Zone{Name: name}
	if !r.HasDST() {
		z.addPeriod(r.Standard.Name, r.Standard.Offset/60, Forever)
		return z, nil
	}

	type event struct {
		at  int64
		dst bool
	}
	var (
		events   []event
		northern = true
	)
	for year := fromYear; year <= toYear; year++ {
		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
		start := yearStart + int64(tzruleTime(year, r.Transition.Start, r.Standard.Offset))
		end := yearStart + int64(tzruleTime(year, r.Transition.End, r.Daylight.Offset))
		if start < end {
			events = append(events, event{start * 1000, true}, event{end * 1000, false})
		} else {
			northern = false
			events = append(events, event{end * 1000, false}, event{start * 1000, true})
		}
	}

	dst := !northern
	for _, e := range events {
		if e.dst == dst {
			continue
		}
		if dst {
			z.addPeriod(r.Daylight.Name, r.Daylight.Offset/60, e.at)
		} else {
			z.addPeriod(r.Standard.Name, r.Standard.Offset/60, e.at)
		}
		dst = e.dst
	}
	if dst {
		z.addPeriod(r.Daylight.Name, r.Daylight.Offset/60, Forever)
	} else {
		z.addPeriod(r.Standard.Name, r.Standard.Offset/60, Forever)
	}
	return z, nil
}

// posixRule is a parsed POSIX TZ string. Offsets are in seconds east of UTC.
type posixRule struct {
	Standard struct {
		Name   string
		Offset int
	}
	Daylight struct {
		Name   string
		Offset int
	}
	Transition struct {
		Start rule
		End   rule
	}
}

func (x posixRule) HasDST() bool {
	return x.Transition.End != x.Transition.Start
}

func parsePOSIX(s string) (x posixRule, ok bool) {
	x.Standard.Name, x.Standard.Offset, x.Daylight.Name, x.Daylight.Offset, x.Transition.Start, x.Transition.End, ok = tzset(s)
	return
}

/*
The following code is based on go@1.21.0/src/time/zoneinfo.go.

Copyright (c) 2009 The Go Authors. All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// tzset is based on time.tzset, but returns the rules instead of evaluating
// them for a single instant.
func tzset(s string) (
	stdName string,
	stdOffset int,
	dstName string,
	dstOffset int,
	startRule rule,
	endRule rule,
	ok bool,
) {
	stdName, s, ok = tzsetName(s)
	if ok {
		stdOffset, s, ok = tzsetOffset(s)
	}
	if !ok {
		return
	}
	stdOffset = -stdOffset

	if len(s) == 0 || s[0] == ',' {
		return // no dst
	}

	dstName, s, ok = tzsetName(s)
	if ok {
		if len(s) == 0 || s[0] == ',' {
			dstOffset = stdOffset + secondsPerHour
		} else {
			dstOffset, s, ok = tzsetOffset(s)
			dstOffset = -dstOffset
		}
	}
	if !ok {
		return
	}

	if len(s) == 0 {
		s = ",M3.2.0,M11.1.0"
	}
	if s[0] != ',' && s[0] != ';' {
		ok = false
		return
	}
	s = s[1:]

	startRule, s, ok = tzsetRule(s)
	if !ok || len(s) == 0 || s[0] != ',' {
		ok = false
		return
	}
	s = s[1:]
	endRule, s, ok = tzsetRule(s)
	if !ok || len(s) > 0 {
		ok = false
		return
	}
	return
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// tzsetName returns the timezone name at the start of the tzset string s,
// and the remainder of s, and reports whether the parsing is OK.
func tzsetName(s string) (string, string, bool) {
	if len(s) == 0 {
		return "", "", false
	}
	if s[0] != '<' {
		for i, r := range s {
			switch r {
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ',', '-', '+':
				if i < 3 {
					return "", "", false
				}
				return s[:i], s[i:], true
			}
		}
		if len(s) < 3 {
			return "", "", false
		}
		return s, "", true
	}
	for i, r := range s {
		if r == '>' {
			return s[1:i], s[i+1:], true
		}
	}
	return "", "", false
}

// tzsetOffset returns the timezone offset at the start of the tzset string s,
// and the remainder of s, and reports whether the parsing is OK.
// The timezone offset is returned as a number of seconds.
func tzsetOffset(s string) (offset int, rest string, ok bool) {
	if len(s) == 0 {
		return 0, "", false
	}
	neg := false
	if s[0] == '+' {
		s = s[1:]
	} else if s[0] == '-' {
		s = s[1:]
		neg = true
	}

	// The tzdata code permits values up to 24 * 7 here,
	// although POSIX does not.
	var hours int
	hours, s, ok = tzsetNum(s, 0, 24*7)
	if !ok {
		return 0, "", false
	}
	off := hours * secondsPerHour
	if len(s) != 0 && s[0] == ':' {
		var mins int
		if mins, s, ok = tzsetNum(s[1:], 0, 59); !ok {
			return 0, "", false
		}
		off += mins * secondsPerMinute
		if len(s) != 0 && s[0] == ':' {
			var secs int
			if secs, s, ok = tzsetNum(s[1:], 0, 59); !ok {
				return 0, "", false
			}
			off += secs
		}
	}
	if neg {
		off = -off
	}
	return off, s, true
}

// ruleKind is the kinds of rules that can be seen in a tzset string.
type ruleKind int

const (
	ruleJulian ruleKind = iota
	ruleDOY
	ruleMonthWeekDay
)

// rule is a rule read from a tzset string.
type rule struct {
	kind ruleKind
	day  int
	week int
	mon  int
	time int // transition time
}

// tzsetRule parses a rule from a tzset string.
// It returns the rule, and the remainder of the string, and reports success.
func tzsetRule(s string) (rule, string, bool) {
	var r rule
	if len(s) == 0 {
		return rule{}, "", false
	}
	ok := false
	switch s[0] {
	case 'J':
		var jday int
		if jday, s, ok = tzsetNum(s[1:], 1, 365); !ok {
			return rule{}, "", false
		}
		r.kind = ruleJulian
		r.day = jday
	case 'M':
		var mon, week, day int
		if mon, s, ok = tzsetNum(s[1:], 1, 12); !ok || len(s) == 0 || s[0] != '.' {
			return rule{}, "", false
		}
		if week, s, ok = tzsetNum(s[1:], 1, 5); !ok || len(s) == 0 || s[0] != '.' {
			return rule{}, "", false
		}
		if day, s, ok = tzsetNum(s[1:], 0, 6); !ok {
			return rule{}, "", false
		}
		r.kind = ruleMonthWeekDay
		r.day = day
		r.week = week
		r.mon = mon
	default:
		var day int
		if day, s, ok = tzsetNum(s, 0, 365); !ok {
			return rule{}, "", false
		}
		r.kind = ruleDOY
		r.day = day
	}

	if len(s) == 0 || s[0] != '/' {
		r.time = 2 * secondsPerHour // 2am is the default
		return r, s, true
	}

	offset, s, ok := tzsetOffset(s[1:])
	if !ok {
		return rule{}, "", false
	}
	r.time = offset
	return r, s, true
}

// tzsetNum parses a number from a tzset string.
// It returns the number, and the remainder of the string, and reports success.
// The number must be between min and max.
func tzsetNum(s string, min, max int) (num int, rest string, ok bool) {
	if len(s) == 0 {
		return 0, "", false
	}
	for i, r := range s {
		if r < '0' || r > '9' {
			if i == 0 || num < min {
				return 0, "", false
			}
			return num, s[i:], true
		}
		num *= 10
		num += int(r) - '0'
		if num > max {
			return 0, "", false
		}
	}
	if num < min {
		return 0, "", false
	}
	return num, "", true
}

// tzruleTime takes a year, a rule, and a timezone offset,
// and returns the number of seconds since the start of the year
// that the rule takes effect.
func tzruleTime(year int, r rule, off int) int {
	var s int
	switch r.kind {
	case ruleJulian:
		s = (r.day - 1) * secondsPerDay
		if calendar.IsLeapYear(year) && r.day >= 60 {
			s += secondsPerDay
		}
	case ruleDOY:
		s = r.day * secondsPerDay
	case ruleMonthWeekDay:
		// day-of-month of the first r.day weekday, then the r.week'th one,
		// clamped to the last in the month
		first := calendar.Weekday(calendar.MakeDays(year, r.mon-1, 1))
		d := calendar.Mod(r.day-first, 7)
		for i := 1; i < r.week; i++ {
			if d+7 >= calendar.DaysInMonth(year, r.mon-1) {
				break
			}
			d += 7
		}
		s = (calendar.DayOfYear(year, r.mon-1, d+1) - 1) * secondsPerDay
	}
	return s + r.time - off
}
