package moment

import "github.com/pgaskin/chrono/calendar"

// civil is the broken-down wall time of a Moment. The month is zero-based.
type civil struct {
	year, month, date                 int
	hour, minute, second, millisecond int
}

func civilFromWall(w int64) civil {
	days := floorDiv(w, msPerDay)
	rem := w - days*msPerDay
	y, mo, d := calendar.CivilFromDays(int(days))
	return civil{
		year:        y,
		month:       int(mo) - 1,
		date:        d,
		hour:        int(rem / msPerHour),
		minute:      int(rem / msPerMinute % 60),
		second:      int(rem / msPerSecond % 60),
		millisecond: int(rem % msPerSecond),
	}
}

// wall converts c back to a wall time. Fields may be out of range; they carry
// into the next larger field.
func (c civil) wall() int64 {
	return int64(calendar.MakeDays(c.year, c.month, c.date))*msPerDay +
		int64(c.hour)*msPerHour +
		int64(c.minute)*msPerMinute +
		int64(c.second)*msPerSecond +
		int64(c.millisecond)
}

func (c civil) days() int {
	return calendar.MakeDays(c.year, c.month, c.date)
}

func (c civil) dayOfYear() int {
	return calendar.DayOfYear(c.year, c.month, c.date)
}

func (m Moment) civil() civil {
	if !m.valid {
		return civil{}
	}
	return civilFromWall(m.wall())
}

func (m Moment) withCivil(c civil) Moment {
	return m.withWall(c.wall())
}

// Year returns the year.
func (m Moment) Year() int { return m.civil().year }

// Month returns the zero-based month.
func (m Moment) Month() int { return m.civil().month }

// Date returns the day of the month.
func (m Moment) Date() int { return m.civil().date }

func (m Moment) Hour() int        { return m.civil().hour }
func (m Moment) Minute() int      { return m.civil().minute }
func (m Moment) Second() int      { return m.civil().second }
func (m Moment) Millisecond() int { return m.civil().millisecond }

// Day returns the day of the week, where 0 is Sunday.
func (m Moment) Day() int {
	if !m.valid {
		return 0
	}
	return calendar.Weekday(m.civil().days())
}

// Weekday returns the day of the week according to the locale, where 0 is
// the first day of the week.
func (m Moment) Weekday() int {
	if !m.valid {
		return 0
	}
	return int(mod(int64(m.Day()+7-m.Locale().Week().FirstDay), 7))
}

// ISOWeekday returns the ISO day of the week, where 1 is Monday and 7 is
// Sunday.
func (m Moment) ISOWeekday() int {
	if !m.valid {
		return 0
	}
	if d := m.Day(); d != 0 {
		return d
	}
	return 7
}

// DayOfYear returns the one-based day of the year.
func (m Moment) DayOfYear() int {
	if !m.valid {
		return 0
	}
	return m.civil().dayOfYear()
}

// Quarter returns the quarter of the year (1-4).
func (m Moment) Quarter() int {
	if !m.valid {
		return 0
	}
	return m.civil().month/3 + 1
}

func (m Moment) weekOf(r calendar.WeekRule) (week, weekYear int) {
	if !m.valid {
		return 0, 0
	}
	c := m.civil()
	return r.WeekOfYear(c.year, c.dayOfYear())
}

// Week returns the week of the year according to the locale.
func (m Moment) Week() int {
	w, _ := m.weekOf(m.Locale().Week())
	return w
}

// ISOWeek returns the ISO week of the year.
func (m Moment) ISOWeek() int {
	w, _ := m.weekOf(calendar.ISOWeek)
	return w
}

// WeekYear returns the year the locale week belongs to.
func (m Moment) WeekYear() int {
	_, y := m.weekOf(m.Locale().Week())
	return y
}

// ISOWeekYear returns the year the ISO week belongs to.
func (m Moment) ISOWeekYear() int {
	_, y := m.weekOf(calendar.ISOWeek)
	return y
}

// WeeksInYear returns the number of locale weeks in the year.
func (m Moment) WeeksInYear() int {
	if !m.valid {
		return 0
	}
	return m.Locale().Week().WeeksInYear(m.Year())
}

// ISOWeeksInYear returns the number of ISO weeks in the year.
func (m Moment) ISOWeeksInYear() int {
	if !m.valid {
		return 0
	}
	return calendar.ISOWeek.WeeksInYear(m.Year())
}

// DaysInMonth returns the number of days in the month.
func (m Moment) DaysInMonth() int {
	if !m.valid {
		return 0
	}
	c := m.civil()
	return calendar.DaysInMonth(c.year, c.month)
}

// IsLeapYear reports whether the year is a leap year.
func (m Moment) IsLeapYear() bool {
	return m.valid && calendar.IsLeapYear(m.Year())
}

// Get returns the value of a unit. It returns false if m is invalid or the
// unit can't be read.
func (m Moment) Get(u Unit) (int, bool) {
	if !m.valid {
		return 0, false
	}
	switch u {
	case Millisecond:
		return m.Millisecond(), true
	case Second:
		return m.Second(), true
	case Minute:
		return m.Minute(), true
	case Hour:
		return m.Hour(), true
	case Day:
		return m.Day(), true
	case Date:
		return m.Date(), true
	case Week:
		return m.Week(), true
	case ISOWeek:
		return m.ISOWeek(), true
	case Month:
		return m.Month(), true
	case Quarter:
		return m.Quarter(), true
	case Year:
		return m.Year(), true
	case DayOfYear:
		return m.DayOfYear(), true
	case Weekday:
		return m.Weekday(), true
	case ISOWeekday:
		return m.ISOWeekday(), true
	case WeekYear:
		return m.WeekYear(), true
	case ISOWeekYear:
		return m.ISOWeekYear(), true
	}
	return 0, false
}

// Set returns m with a unit changed. Unknown units leave m unchanged.
func (m Moment) Set(u Unit, v int) Moment {
	switch u {
	case Millisecond:
		return m.SetMillisecond(v)
	case Second:
		return m.SetSecond(v)
	case Minute:
		return m.SetMinute(v)
	case Hour:
		return m.SetHour(v)
	case Day:
		return m.SetDay(v)
	case Date:
		return m.SetDate(v)
	case Week:
		return m.SetWeek(v)
	case ISOWeek:
		return m.SetISOWeek(v)
	case Month:
		return m.SetMonth(v)
	case Quarter:
		return m.SetQuarter(v)
	case Year:
		return m.SetYear(v)
	case DayOfYear:
		return m.SetDayOfYear(v)
	case Weekday:
		return m.SetWeekday(v)
	case ISOWeekday:
		return m.SetISOWeekday(v)
	case WeekYear:
		return m.SetWeekYear(v)
	case ISOWeekYear:
		return m.SetISOWeekYear(v)
	}
	return m
}

// SetYear sets the year. February 29 becomes February 28 if the new year
// isn't a leap year.
func (m Moment) SetYear(v int) Moment {
	if !m.valid {
		return m
	}
	c := m.civil()
	if c.month == 1 && c.date == 29 {
		c.date = calendar.DaysInMonth(v, 1)
	}
	c.year = v
	return m.withCivil(c)
}

// SetMonth sets the zero-based month, which may overflow into other years.
// The day of the month is clamped to the length of the new month.
func (m Moment) SetMonth(v int) Moment {
	if !m.valid {
		return m
	}
	c := m.civil()
	c.date = min(c.date, calendar.DaysInMonth(c.year, v))
	c.month = v
	return m.withCivil(c)
}

// SetMonthName sets the month by its name in the locale. Unknown names leave
// m unchanged.
func (m Moment) SetMonthName(name string) Moment {
	if v, ok := m.Locale().MonthsParse(name, "MMMM", false); ok {
		return m.SetMonth(v)
	}
	return m
}

// SetDate sets the day of the month, which may overflow into other months.
func (m Moment) SetDate(v int) Moment {
	c := m.civil()
	c.date = v
	return m.withCivil(c)
}

func (m Moment) SetHour(v int) Moment {
	c := m.civil()
	c.hour = v
	return m.withCivil(c)
}

func (m Moment) SetMinute(v int) Moment {
	c := m.civil()
	c.minute = v
	return m.withCivil(c)
}

func (m Moment) SetSecond(v int) Moment {
	c := m.civil()
	c.second = v
	return m.withCivil(c)
}

func (m Moment) SetMillisecond(v int) Moment {
	c := m.civil()
	c.millisecond = v
	return m.withCivil(c)
}

// addDays moves the wall date by n days, keeping the wall time.
func (m Moment) addDays(n int) Moment {
	if n == 0 || !m.valid {
		return m
	}
	c := m.civil()
	c.date += n
	return m.withCivil(c)
}

// SetDay sets the day of the week (0 = Sunday) within the current Sunday to
// Saturday week. Values outside 0-6 move into other weeks.
func (m Moment) SetDay(v int) Moment {
	return m.addDays(v - m.Day())
}

// SetDayName sets the day of the week by its name in the locale. Unknown
// names leave m unchanged.
func (m Moment) SetDayName(name string) Moment {
	if v, ok := m.Locale().WeekdaysParse(name, "dddd", false); ok {
		return m.SetDay(v)
	}
	return m
}

// SetWeekday sets the locale day of the week.
func (m Moment) SetWeekday(v int) Moment {
	return m.addDays(v - m.Weekday())
}

// SetISOWeekday sets the ISO day of the week (1 = Monday, 7 = Sunday).
func (m Moment) SetISOWeekday(v int) Moment {
	if !m.valid {
		return m
	}
	if m.Day() == 0 {
		v -= 7
	}
	return m.SetDay(v)
}

// SetDayOfYear sets the one-based day of the year.
func (m Moment) SetDayOfYear(v int) Moment {
	return m.addDays(v - m.DayOfYear())
}

// SetQuarter sets the quarter, keeping the month within the quarter.
func (m Moment) SetQuarter(v int) Moment {
	if !m.valid {
		return m
	}
	return m.SetMonth((v-1)*3 + m.Month()%3)
}

// SetWeek sets the locale week of the year.
func (m Moment) SetWeek(v int) Moment {
	return m.addDays((v - m.Week()) * 7)
}

// SetISOWeek sets the ISO week of the year.
func (m Moment) SetISOWeek(v int) Moment {
	return m.addDays((v - m.ISOWeek()) * 7)
}

// SetWeekYear sets the locale week year, keeping the week (clamped to the
// number of weeks in the new year) and the day of the week.
func (m Moment) SetWeekYear(v int) Moment {
	if !m.valid {
		return m
	}
	r := m.Locale().Week()
	return m.setWeekAll(r, v, m.Week(), m.Weekday()+r.FirstDay)
}

// SetISOWeekYear sets the ISO week year.
func (m Moment) SetISOWeekYear(v int) Moment {
	if !m.valid {
		return m
	}
	return m.setWeekAll(calendar.ISOWeek, v, m.ISOWeek(), m.ISOWeekday())
}

func (m Moment) setWeekAll(r calendar.WeekRule, weekYear, week, weekday int) Moment {
	week = min(week, r.WeeksInYear(weekYear))
	y, doy := r.DayOfYearFromWeeks(weekYear, week, weekday)
	d := calendar.DateFromDays(calendar.MakeDays(y, 0, doy))
	c := m.civil()
	c.year, c.month, c.date = d.Year, int(d.Month)-1, d.Day
	return m.withCivil(c)
}

// ToArray returns [year, month, date, hour, minute, second, millisecond].
func (m Moment) ToArray() []int {
	c := m.civil()
	return []int{c.year, c.month, c.date, c.hour, c.minute, c.second, c.millisecond}
}

// ToObject returns the fields by their plural names (with "date" for the day
// of the month).
func (m Moment) ToObject() map[string]int {
	c := m.civil()
	return map[string]int{
		"years":        c.year,
		"months":       c.month,
		"date":         c.date,
		"hours":        c.hour,
		"minutes":      c.minute,
		"seconds":      c.second,
		"milliseconds": c.millisecond,
	}
}
