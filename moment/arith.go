package moment

// Add returns m with n units added. Years, quarters and months are rounded
// and keep the day of the month (clamped to the length of the new month).
// Weeks and days are rounded and keep the wall time. Smaller units are added
// to the instant.
func (m Moment) Add(n float64, u Unit) Moment {
	return m.AddDuration(NewDuration(n, u))
}

// Subtract returns m with n units subtracted.
func (m Moment) Subtract(n float64, u Unit) Moment {
	return m.SubtractDuration(NewDuration(n, u))
}

// AddDuration returns m with d added, first the months, then the days and
// then the milliseconds.
func (m Moment) AddDuration(d Duration) Moment {
	return m.addSubtract(d, 1)
}

// SubtractDuration returns m with d subtracted.
func (m Moment) SubtractDuration(d Duration) Moment {
	return m.addSubtract(d, -1)
}

func (m Moment) addSubtract(d Duration, sign int) Moment {
	if !m.valid || !d.IsValid() {
		return m
	}
	if months := int(toInt(absRound(d.months))); months != 0 {
		m = m.addMonths(months * sign)
	}
	if days := int(toInt(absRound(d.days))); days != 0 {
		m = m.addDays(days * sign)
	}
	if ms := toInt(d.ms); ms != 0 {
		m = m.withInstant(m.ms + ms*int64(sign))
	}
	return m
}

// addMonths moves the wall date by n months, clamping the day of the month.
func (m Moment) addMonths(n int) Moment {
	if n == 0 || !m.valid {
		return m
	}
	return m.SetMonth(m.Month() + n)
}

// StartOf returns the first millisecond of the unit m is in. Week uses the
// locale's first day of the week. Units smaller than a day are truncated on
// the wall clock.
func (m Moment) StartOf(u Unit) Moment {
	if !m.valid {
		return m
	}
	c := m.civil()
	switch u {
	case Year:
		return m.atDate(c.year, 0, 1)
	case Quarter:
		return m.atDate(c.year, c.month-c.month%3, 1)
	case Month:
		return m.atDate(c.year, c.month, 1)
	case Week:
		return m.atDate(c.year, c.month, c.date-m.Weekday())
	case ISOWeek:
		return m.atDate(c.year, c.month, c.date-(m.ISOWeekday()-1))
	case Day, Date:
		return m.atDate(c.year, c.month, c.date)
	case Hour:
		return m.withInstant(m.ms - mod(m.wall(), msPerHour))
	case Minute:
		return m.withInstant(m.ms - mod(m.ms, msPerMinute))
	case Second:
		return m.withInstant(m.ms - mod(m.ms, msPerSecond))
	}
	return m
}

// EndOf returns the last millisecond of the unit m is in.
func (m Moment) EndOf(u Unit) Moment {
	if !m.valid {
		return m
	}
	c := m.civil()
	switch u {
	case Year:
		return m.beforeDate(c.year+1, 0, 1)
	case Quarter:
		return m.beforeDate(c.year, c.month-c.month%3+3, 1)
	case Month:
		return m.beforeDate(c.year, c.month+1, 1)
	case Week:
		return m.beforeDate(c.year, c.month, c.date-m.Weekday()+7)
	case ISOWeek:
		return m.beforeDate(c.year, c.month, c.date-(m.ISOWeekday()-1)+7)
	case Day, Date:
		return m.beforeDate(c.year, c.month, c.date+1)
	case Hour:
		return m.withInstant(m.ms + msPerHour - mod(m.wall(), msPerHour) - 1)
	case Minute:
		return m.withInstant(m.ms + msPerMinute - mod(m.ms, msPerMinute) - 1)
	case Second:
		return m.withInstant(m.ms + msPerSecond - mod(m.ms, msPerSecond) - 1)
	}
	return m
}

// atDate returns midnight at the start of a date in m's frame.
func (m Moment) atDate(year, month, date int) Moment {
	return m.withCivil(civil{year: year, month: month, date: date})
}

// beforeDate returns the millisecond before midnight at the start of a date.
func (m Moment) beforeDate(year, month, date int) Moment {
	n := m.atDate(year, month, date)
	return n.withInstant(n.ms - 1)
}
