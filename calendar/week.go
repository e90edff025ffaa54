package calendar

// WeekRule describes how weeks are numbered.
//
// FirstDay is the weekday (0 = Sunday) weeks start on. AnchorDay is the day of
// January (1-7) which is always part of week 1 of its year.
type WeekRule struct {
	FirstDay  int
	AnchorDay int
}

// ISOWeek is the ISO-8601 week rule: weeks start on Monday and week 1 is the
// week containing January 4th.
var ISOWeek = WeekRule{FirstDay: 1, AnchorDay: 4}

// USWeek is the week rule used in the United States: weeks start on Sunday and
// week 1 is the week containing January 1st.
var USWeek = WeekRule{FirstDay: 0, AnchorDay: 1}

// Doy returns the anchor in the "7 + dow - janX" form used by CLDR-derived
// locale data.
func (r WeekRule) Doy() int {
	return 7 + r.FirstDay - r.AnchorDay
}

// WeekRuleFromDoy converts a dow/doy pair to a WeekRule.
func WeekRuleFromDoy(dow, doy int) WeekRule {
	return WeekRule{FirstDay: dow, AnchorDay: 7 + dow - doy}
}

// FirstWeekOffset returns the day-of-year offset (possibly negative) of the
// first day of week 1 of year, relative to January 1st minus one.
func (r WeekRule) FirstWeekOffset(year int) int {
	fwd := r.AnchorDay
	fwdlw := Mod(7+Weekday(MakeDays(year, 0, fwd))-r.FirstDay, 7)
	return -fwdlw + fwd - 1
}

// DayOfYearFromWeeks returns the year and one-based day of year for weekday
// (0 = Sunday, values past 6 carry into the following week) of week in
// weekYear.
func (r WeekRule) DayOfYearFromWeeks(weekYear, week, weekday int) (year, dayOfYear int) {
	localWeekday := Mod(7+weekday-r.FirstDay, 7)
	dayOfYear = 1 + 7*(week-1) + localWeekday + r.FirstWeekOffset(weekYear)
	switch {
	case dayOfYear <= 0:
		year = weekYear - 1
		dayOfYear += DaysInYear(year)
	case dayOfYear > DaysInYear(weekYear):
		year = weekYear + 1
		dayOfYear -= DaysInYear(weekYear)
	default:
		year = weekYear
	}
	return
}

// WeekOfYear returns the week number and week-numbering year of the one-based
// dayOfYear in year.
func (r WeekRule) WeekOfYear(year, dayOfYear int) (week, weekYear int) {
	week = FloorDiv(dayOfYear-r.FirstWeekOffset(year)-1, 7) + 1
	switch {
	case week < 1:
		weekYear = year - 1
		week += r.WeeksInYear(weekYear)
	case week > r.WeeksInYear(year):
		week -= r.WeeksInYear(year)
		weekYear = year + 1
	default:
		weekYear = year
	}
	return
}

// WeeksInYear returns the number of weeks in the week-numbering year.
func (r WeekRule) WeeksInYear(year int) int {
	return (DaysInYear(year) - r.FirstWeekOffset(year) + r.FirstWeekOffset(year+1)) / 7
}

// Week is a convenience wrapper around WeekOfYear for a Date.
func (r WeekRule) Week(d Date) (week, weekYear int) {
	return r.WeekOfYear(d.Year, d.YearDay())
}
