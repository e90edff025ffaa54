package moment

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/pgaskin/chrono/tz"
)

// utc creates a value in UTC from array fields.
func utc(a ...int) Moment {
	return FromArray(a, UTC(), WithLocale("en"))
}

func newYork(t *testing.T, a ...int) Moment {
	t.Helper()
	z, err := tz.Default().Lookup("America/New_York")
	if err != nil {
		t.Fatalf("lookup zone: %v", err)
	}
	return FromArray(a, InZone(z), WithLocale("en"))
}

func TestCreate(t *testing.T) {
	exp := time.Date(2006, 1, 2, 15, 4, 5, 123e6, time.UTC)
	for name, m := range map[string]Moment{
		"FromArray":  utc(2006, 0, 2, 15, 4, 5, 123),
		"UnixMilli":  UnixMilli(exp.UnixMilli(), UTC()),
		"FromTime":   FromTime(exp, UTC()),
		"Now":        Now(UTC(), WithClock(func() time.Time { return exp })),
		"FromFields": FromFields(map[Unit]int{Year: 2006, Month: 0, Date: 2, Hour: 15, Minute: 4, Second: 5, Millisecond: 123}, UTC()),
	} {
		if !m.IsValid() {
			t.Errorf("%s: expected valid", name)
			continue
		}
		if act := m.ValueOf(); act != exp.UnixMilli() {
			t.Errorf("%s: expected %d, got %d", name, exp.UnixMilli(), act)
		}
		if act := m.Time(); !act.Equal(exp) {
			t.Errorf("%s: expected time %s, got %s", name, exp, act)
		}
	}
	if act := Unix(1136214245).ValueOf(); act != 1136214245000 {
		t.Errorf("unexpected unix value %d", act)
	}
	if act := Unix(1136214245).Unix(); act != 1136214245 {
		t.Errorf("unexpected unix seconds %d", act)
	}
	if UnixMilli(maxTime + 1).IsValid() {
		t.Errorf("expected instant past the supported range to be invalid")
	}
	if !UnixMilli(-maxTime).IsValid() {
		t.Errorf("expected smallest supported instant to be valid")
	}
}

func TestInvalid(t *testing.T) {
	for name, m := range map[string]Moment{
		"zero":      {},
		"Invalid":   Invalid(),
		"overflow":  FromArray([]int{2024, 1, 30}, UTC()),
		"badMonth":  FromArray([]int{2024, 12, 1}, UTC()),
		"badMinute": FromArray([]int{2024, 0, 1, 10, 60}, UTC()),
	} {
		if m.IsValid() {
			t.Errorf("%s: expected invalid", name)
		}
		if act := m.Format("YYYY-MM-DD"); act != "Invalid date" {
			t.Errorf("%s: expected invalid date string, got %q", name, act)
		}
		if act := m.ToISOString(false); act != "" {
			t.Errorf("%s: expected empty iso string, got %q", name, act)
		}
		if act := m.Year(); act != 0 {
			t.Errorf("%s: expected zero year, got %d", name, act)
		}
		if m.IsBefore(utc(2030), 0) || m.IsAfter(utc(1970), 0) || m.IsSame(m, 0) {
			t.Errorf("%s: invalid values should never compare", name)
		}
		if act := m.Add(1, Day); act.IsValid() {
			t.Errorf("%s: expected arithmetic to stay invalid", name)
		}
	}
	if !Invalid().ParsingFlags().UserInvalidated {
		t.Errorf("expected user invalidated flag")
	}
	for _, tc := range []struct {
		Array []int
		Field Field
	}{
		{[]int{2024, 1, 30}, FieldDate},
		{[]int{2023, 1, 29}, FieldDate},
		{[]int{2024, 12, 1}, FieldMonth},
		{[]int{2024, -1, 1}, FieldMonth},
		{[]int{2024, 0, 0}, FieldDate},
		{[]int{2024, 0, 1, 25}, FieldHour},
		{[]int{2024, 0, 1, 24, 1}, FieldHour},
		{[]int{2024, 0, 1, 0, 60}, FieldMinute},
		{[]int{2024, 0, 1, 0, 0, 60}, FieldSecond},
		{[]int{2024, 0, 1, 0, 0, 0, 1000}, FieldMillisecond},
		{[]int{2024, 1, 29}, NoField},
	} {
		if act := FromArray(tc.Array, UTC()).InvalidAt(); act != tc.Field {
			t.Errorf("%v: expected invalid at %s, got %s", tc.Array, tc.Field, act)
		}
	}
	if m := FromArray([]int{2024, 0, 1, 24}, UTC()); !m.IsValid() || m.Format("YYYY-MM-DD HH:mm") != "2024-01-02 00:00" {
		t.Errorf("expected hour 24 to be the start of the next day, got %s", m.Format(""))
	}
}

func TestFields(t *testing.T) {
	m := utc(2006, 0, 2, 15, 4, 5, 123) // Monday
	for _, tc := range []struct {
		Unit Unit
		Exp  int
	}{
		{Year, 2006},
		{Quarter, 1},
		{Month, 0},
		{Date, 2},
		{Day, 1},
		{Weekday, 1},
		{ISOWeekday, 1},
		{DayOfYear, 2},
		{Week, 1},
		{ISOWeek, 1},
		{WeekYear, 2006},
		{ISOWeekYear, 2006},
		{Hour, 15},
		{Minute, 4},
		{Second, 5},
		{Millisecond, 123},
	} {
		if act, ok := m.Get(tc.Unit); !ok || act != tc.Exp {
			t.Errorf("%s: expected %d, got %d (ok=%t)", tc.Unit, tc.Exp, act, ok)
		}
	}
	if act := m.ToArray(); !slices.Equal(act, []int{2006, 0, 2, 15, 4, 5, 123}) {
		t.Errorf("unexpected array %v", act)
	}
	if act := m.ToObject(); act["years"] != 2006 || act["date"] != 2 || act["milliseconds"] != 123 {
		t.Errorf("unexpected object %v", act)
	}
	if act := m.DaysInMonth(); act != 31 {
		t.Errorf("expected 31 days, got %d", act)
	}
	if utc(2024, 1).DaysInMonth() != 29 || !utc(2024).IsLeapYear() || utc(2100).IsLeapYear() {
		t.Errorf("incorrect leap year handling")
	}
}

func TestWeeks(t *testing.T) {
	for _, tc := range []struct {
		Array       []int
		ISOWeek     int
		ISOWeekYear int
		Week        int
		WeekYear    int
	}{
		{[]int{2021, 0, 1}, 53, 2020, 1, 2021},
		{[]int{2020, 11, 31}, 53, 2020, 1, 2021},
		{[]int{2018, 11, 31}, 1, 2019, 1, 2019},
		{[]int{2017, 0, 1}, 52, 2016, 1, 2017},
		{[]int{2010, 0, 3}, 53, 2009, 2, 2010},
	} {
		m := utc(tc.Array...)
		if act := m.ISOWeek(); act != tc.ISOWeek {
			t.Errorf("%v: expected iso week %d, got %d", tc.Array, tc.ISOWeek, act)
		}
		if act := m.ISOWeekYear(); act != tc.ISOWeekYear {
			t.Errorf("%v: expected iso week year %d, got %d", tc.Array, tc.ISOWeekYear, act)
		}
		if act := m.Week(); act != tc.Week {
			t.Errorf("%v: expected week %d, got %d", tc.Array, tc.Week, act)
		}
		if act := m.WeekYear(); act != tc.WeekYear {
			t.Errorf("%v: expected week year %d, got %d", tc.Array, tc.WeekYear, act)
		}
	}
	if act := utc(2020).ISOWeeksInYear(); act != 53 {
		t.Errorf("expected 53 iso weeks in 2020, got %d", act)
	}
	if act := utc(2021).ISOWeeksInYear(); act != 52 {
		t.Errorf("expected 52 iso weeks in 2021, got %d", act)
	}
}

func TestSetters(t *testing.T) {
	const f = "YYYY-MM-DD HH:mm:ss.SSS"
	base := utc(2006, 0, 2, 15, 4, 5, 123)
	for _, tc := range []struct {
		Name string
		M    Moment
		Exp  string
	}{
		{"SetYear", base.SetYear(2010), "2010-01-02 15:04:05.123"},
		{"SetYearLeap", utc(2020, 1, 29).SetYear(2021), "2021-02-28 00:00:00.000"},
		{"SetMonth", base.SetMonth(5), "2006-06-02 15:04:05.123"},
		{"SetMonthClamp", utc(2021, 0, 31).SetMonth(1), "2021-02-28 00:00:00.000"},
		{"SetMonthOverflow", base.SetMonth(13), "2007-02-02 15:04:05.123"},
		{"SetMonthName", base.SetMonthName("march"), "2006-03-02 15:04:05.123"},
		{"SetDate", base.SetDate(20), "2006-01-20 15:04:05.123"},
		{"SetDateOverflow", base.SetDate(32), "2006-02-01 15:04:05.123"},
		{"SetHour", base.SetHour(0), "2006-01-02 00:04:05.123"},
		{"SetHourOverflow", base.SetHour(25), "2006-01-03 01:04:05.123"},
		{"SetMinute", base.SetMinute(59), "2006-01-02 15:59:05.123"},
		{"SetSecond", base.SetSecond(-1), "2006-01-02 15:03:59.123"},
		{"SetMillisecond", base.SetMillisecond(999), "2006-01-02 15:04:05.999"},
		{"SetDay", base.SetDay(0), "2006-01-01 15:04:05.123"},
		{"SetDayNext", base.SetDay(7), "2006-01-08 15:04:05.123"},
		{"SetDayName", base.SetDayName("Friday"), "2006-01-06 15:04:05.123"},
		{"SetWeekday", base.SetWeekday(6), "2006-01-07 15:04:05.123"},
		{"SetISOWeekday", base.SetISOWeekday(7), "2006-01-08 15:04:05.123"},
		{"SetDayOfYear", base.SetDayOfYear(100), "2006-04-10 15:04:05.123"},
		{"SetQuarter", base.SetQuarter(3), "2006-07-02 15:04:05.123"},
		{"SetISOWeek", base.SetISOWeek(2), "2006-01-09 15:04:05.123"},
		{"SetWeek", base.SetWeek(3), "2006-01-16 15:04:05.123"},
		{"SetISOWeekYear", utc(2021, 0, 1).SetISOWeekYear(2021), "2021-12-31 00:00:00.000"},
		{"SetUnit", base.Set(Hour, 5), "2006-01-02 05:04:05.123"},
		{"SetUnknown", base.Set(Unit(999), 5), "2006-01-02 15:04:05.123"},
	} {
		if act := tc.M.Format(f); act != tc.Exp {
			t.Errorf("%s: expected %s, got %s", tc.Name, tc.Exp, act)
		}
	}
	if act := base.SetMonthName("Smarch").Format(f); act != base.Format(f) {
		t.Errorf("expected unknown month name to be ignored, got %s", act)
	}
}

func TestAdd(t *testing.T) {
	const f = "YYYY-MM-DD HH:mm:ss.SSS"
	for _, tc := range []struct {
		Name string
		M    Moment
		Exp  string
	}{
		{"Month", utc(2021, 0, 31).Add(1, Month), "2021-02-28 00:00:00.000"},
		{"MonthDay", utc(2021, 0, 31).AddDuration(DurationFields(map[Unit]float64{Month: 1, Day: 1})), "2021-03-01 00:00:00.000"},
		{"Year", utc(2020, 1, 29).Add(1, Year), "2021-02-28 00:00:00.000"},
		{"Quarter", utc(2021, 10, 30).Add(1, Quarter), "2022-02-28 00:00:00.000"},
		{"Week", utc(2021, 0, 1).Add(2, Week), "2021-01-15 00:00:00.000"},
		{"Day", utc(2021, 0, 1).Add(-1, Day), "2020-12-31 00:00:00.000"},
		{"Hour", utc(2021, 0, 1).Add(1.5, Hour), "2021-01-01 01:30:00.000"},
		{"Minute", utc(2021, 0, 1).Subtract(1, Minute), "2020-12-31 23:59:00.000"},
		{"Second", utc(2021, 0, 1).Add(90, Second), "2021-01-01 00:01:30.000"},
		{"Millisecond", utc(2021, 0, 1).Add(1, Millisecond), "2021-01-01 00:00:00.001"},
		{"RoundedDays", utc(2021, 0, 1).Add(1.5, Day), "2021-01-03 00:00:00.000"},
		{"RoundedMonths", utc(2021, 0, 1).Add(1.4, Month), "2021-02-01 00:00:00.000"},
		{"SubtractDuration", utc(2021, 2, 1).SubtractDuration(NewDuration(1, Month)), "2021-02-01 00:00:00.000"},
	} {
		if act := tc.M.Format(f); act != tc.Exp {
			t.Errorf("%s: expected %s, got %s", tc.Name, tc.Exp, act)
		}
	}
	if act := utc(2021, 0, 1).AddDuration(InvalidDuration()); act.ValueOf() != utc(2021, 0, 1).ValueOf() {
		t.Errorf("expected invalid duration to be ignored")
	}
}

func TestAddDST(t *testing.T) {
	m := newYork(t, 2021, 2, 13, 12) // day before the spring transition
	if act := m.Format("YYYY-MM-DD HH:mm z Z"); act != "2021-03-13 12:00 EST -05:00" {
		t.Fatalf("unexpected start %s", act)
	}
	day := m.Add(1, Day)
	if act := day.Format("YYYY-MM-DD HH:mm z Z"); act != "2021-03-14 12:00 EDT -04:00" {
		t.Errorf("expected adding a day to keep the wall time, got %s", act)
	}
	if act := day.ValueOf() - m.ValueOf(); act != 23*msPerHour {
		t.Errorf("expected a 23 hour day, got %d", act)
	}
	hours := m.Add(24, Hour)
	if act := hours.Format("YYYY-MM-DD HH:mm z"); act != "2021-03-14 13:00 EDT" {
		t.Errorf("expected adding hours to keep the elapsed time, got %s", act)
	}
	if act := day.Diff(m, Day, false); act != 1 {
		t.Errorf("expected diff of one day across transition, got %g", act)
	}
	if act := day.Diff(m, Hour, false); act != 23 {
		t.Errorf("expected diff of 23 hours across transition, got %g", act)
	}
	if !day.IsDST() || m.IsDST() {
		t.Errorf("incorrect dst flags")
	}
	if act := newYork(t, 2021, 2, 14, 2, 30).Format("HH:mm z"); act != "03:30 EDT" {
		t.Errorf("expected non-existent time to move forward, got %s", act)
	}
}

func TestPolicy(t *testing.T) {
	z, err := tz.Default().Lookup("America/New_York")
	if err != nil {
		t.Fatalf("lookup zone: %v", err)
	}
	forward := tz.Policy{MoveAmbiguousForward: true, MoveInvalidForward: true}
	for _, tc := range []struct {
		Name string
		M    Moment
		Exp  string
	}{
		{"AmbiguousDefault", FromArray([]int{2021, 10, 7, 1, 30}, InZone(z)), "2021-11-07T05:30:00.000Z"},
		{"AmbiguousForward", FromArray([]int{2021, 10, 7, 1, 30}, InZone(z), WithPolicy(forward)), "2021-11-07T06:30:00.000Z"},
		{"InvalidBackward", FromArray([]int{2021, 2, 14, 2, 30}, InZone(z), WithPolicy(tz.Policy{})), "2021-03-14T06:30:00.000Z"},
		{"Parse", ParseFormat("2021-11-07 01:30", "YYYY-MM-DD HH:mm", InZone(z), WithPolicy(forward)), "2021-11-07T06:30:00.000Z"},
		{"KeepLocalTime", utc(2021, 10, 7, 1, 30).WithPolicy(forward).InZone(z, true), "2021-11-07T06:30:00.000Z"},
	} {
		if act := tc.M.ToISOString(false); act != tc.Exp {
			t.Errorf("%s: expected %s, got %s", tc.Name, tc.Exp, act)
		}
	}
}

func TestStartEndOf(t *testing.T) {
	const f = "YYYY-MM-DD HH:mm:ss.SSS"
	m := utc(2021, 5, 16, 13, 45, 30, 500) // Wednesday
	for _, tc := range []struct {
		Unit  Unit
		Start string
		End   string
	}{
		{Year, "2021-01-01 00:00:00.000", "2021-12-31 23:59:59.999"},
		{Quarter, "2021-04-01 00:00:00.000", "2021-06-30 23:59:59.999"},
		{Month, "2021-06-01 00:00:00.000", "2021-06-30 23:59:59.999"},
		{Week, "2021-06-13 00:00:00.000", "2021-06-19 23:59:59.999"},
		{ISOWeek, "2021-06-14 00:00:00.000", "2021-06-20 23:59:59.999"},
		{Day, "2021-06-16 00:00:00.000", "2021-06-16 23:59:59.999"},
		{Date, "2021-06-16 00:00:00.000", "2021-06-16 23:59:59.999"},
		{Hour, "2021-06-16 13:00:00.000", "2021-06-16 13:59:59.999"},
		{Minute, "2021-06-16 13:45:00.000", "2021-06-16 13:45:59.999"},
		{Second, "2021-06-16 13:45:30.000", "2021-06-16 13:45:30.999"},
		{Millisecond, "2021-06-16 13:45:30.500", "2021-06-16 13:45:30.500"},
	} {
		if act := m.StartOf(tc.Unit).Format(f); act != tc.Start {
			t.Errorf("start of %s: expected %s, got %s", tc.Unit, tc.Start, act)
		}
		if act := m.EndOf(tc.Unit).Format(f); act != tc.End {
			t.Errorf("end of %s: expected %s, got %s", tc.Unit, tc.End, act)
		}
	}
	if act := m.SetLocale("en-gb").StartOf(Week).Format(f); act != "2021-06-14 00:00:00.000" {
		t.Errorf("expected monday week start for en-gb, got %s", act)
	}
	if act := newYork(t, 2021, 2, 14, 12).StartOf(Day).Format("HH:mm Z"); act != "00:00 -05:00" {
		t.Errorf("unexpected start of transition day %s", act)
	}
}

func TestCompare(t *testing.T) {
	a := utc(2021, 5, 16, 12)
	b := utc(2021, 5, 20)
	if !a.IsBefore(b, 0) || a.IsAfter(b, 0) || !b.IsAfter(a, 0) {
		t.Errorf("incorrect ordering")
	}
	if !a.IsSame(b, Month) || a.IsSame(b, Day) || !a.IsSame(b, Year) {
		t.Errorf("incorrect IsSame")
	}
	if a.IsBefore(utc(2021, 5, 16, 23), Day) || a.IsAfter(utc(2021, 5, 16), Day) {
		t.Errorf("expected same day with unit not to be before or after")
	}
	if !a.IsSameOrBefore(utc(2021, 5, 16), Day) || !a.IsSameOrAfter(b, Month) || a.IsSameOrAfter(b, Day) {
		t.Errorf("incorrect IsSameOr*")
	}
	for _, tc := range []struct {
		Inclusivity string
		M           Moment
		Exp         bool
	}{
		{"()", a, false},
		{"[)", a, true},
		{"(]", a, false},
		{"[]", b, true},
		{"()", utc(2021, 5, 18), true},
		{"", b, false},
	} {
		if act := tc.M.IsBetween(a, b, 0, tc.Inclusivity); act != tc.Exp {
			t.Errorf("%s between %q: expected %t, got %t", tc.M.Format(""), tc.Inclusivity, tc.Exp, act)
		}
	}
	if Min(b, a).ValueOf() != a.ValueOf() || Max(a, b).ValueOf() != b.ValueOf() {
		t.Errorf("incorrect min/max")
	}
	if Min(a, Invalid(), b).IsValid() {
		t.Errorf("expected min with an invalid value to be invalid")
	}
}

func TestDiff(t *testing.T) {
	for _, tc := range []struct {
		A, B  Moment
		Unit  Unit
		Float bool
		Exp   float64
	}{
		{utc(2021, 2, 15), utc(2021, 0, 15), Month, false, 2},
		{utc(2021, 0, 15), utc(2021, 2, 15), Month, false, -2},
		{utc(2021, 2, 1), utc(2021, 0, 31), Month, false, 1},
		{utc(2022, 0, 15), utc(2021, 0, 15), Year, false, 1},
		{utc(2022, 6, 15), utc(2021, 0, 15), Quarter, false, 6},
		{utc(2021, 0, 8), utc(2021, 0, 1), Day, false, 7},
		{utc(2021, 0, 8), utc(2021, 0, 1), Week, false, 1},
		{utc(2021, 0, 1, 12), utc(2021, 0, 1), Day, true, 0.5},
		{utc(2021, 0, 1, 12), utc(2021, 0, 1), Day, false, 0},
		{utc(2021, 0, 1), utc(2021, 0, 1, 12), Hour, false, -12},
		{utc(2021, 0, 1, 0, 1), utc(2021, 0, 1), Second, false, 60},
		{utc(2021, 0, 1, 0, 1), utc(2021, 0, 1), 0, false, 60000},
		{utc(2021, 1, 15), utc(2021, 0, 15), Month, true, 1},
	} {
		if act := tc.A.Diff(tc.B, tc.Unit, tc.Float); act != tc.Exp {
			t.Errorf("%s - %s in %s: expected %g, got %g", tc.A.Format(""), tc.B.Format(""), tc.Unit, tc.Exp, act)
		}
	}
	for _, u := range []Unit{Year, Month, Week, Day, Hour, Minute, Second} {
		a, b := utc(2020, 1, 29, 6), utc(2021, 7, 3, 18)
		if x, y := a.Diff(b, u, true), b.Diff(a, u, true); x != -y {
			t.Errorf("%s: expected symmetric diff, got %g and %g", u, x, y)
		}
	}
	if act := Invalid().Diff(utc(2020), Day, false); !math.IsNaN(act) {
		t.Errorf("expected NaN diff, got %g", act)
	}
}

func TestOffsets(t *testing.T) {
	m := UnixMilli(0, UTC())
	if !m.IsUTC() || m.IsLocal() || m.UTCOffset() != 0 {
		t.Errorf("expected utc")
	}
	if act := m.WithUTCOffset(5, false).Format("YYYY-MM-DD HH:mm Z"); act != "1970-01-01 05:00 +05:00" {
		t.Errorf("expected hours offset, got %s", act)
	}
	if act := m.WithUTCOffset(-90, false).Format("HH:mm ZZ"); act != "22:30 -0130" {
		t.Errorf("expected minutes offset, got %s", act)
	}
	if act := m.WithUTCOffset(120, true).ValueOf(); act != -2*msPerHour {
		t.Errorf("expected wall time to be kept, got %d", act)
	}
	for _, tc := range []struct {
		In  string
		Exp int
		OK  bool
	}{
		{"+05:30", 330, true},
		{"-0800", -480, true},
		{"+03", 180, true},
		{"Z", 0, true},
		{"2013-02-08T09:30:00-02:00", -120, true},
		{"nope", 0, false},
	} {
		n, ok := m.WithUTCOffsetString(tc.In, false)
		if ok != tc.OK || (ok && n.UTCOffset() != tc.Exp) {
			t.Errorf("%q: expected (%d, %t), got (%d, %t)", tc.In, tc.Exp, tc.OK, n.UTCOffset(), ok)
		}
	}
	if act := m.ZoneAbbr(); act != "UTC" {
		t.Errorf("unexpected utc abbr %q", act)
	}
	if act := m.ZoneName(); act != "Coordinated Universal Time" {
		t.Errorf("unexpected utc name %q", act)
	}
	if m.WithUTCOffset(1, false).ZoneAbbr() != "" {
		t.Errorf("expected no abbr for fixed offset")
	}
	if m.Local(false).ValueOf() != 0 || !m.Local(false).IsLocal() {
		t.Errorf("expected local to keep the instant")
	}
}

func TestTz(t *testing.T) {
	m := utc(2021, 5, 16, 12)
	ny, err := m.Tz("America/New_York", false)
	if err != nil {
		t.Fatalf("tz: %v", err)
	}
	if act := ny.Format("YYYY-MM-DD HH:mm z Z"); act != "2021-06-16 08:00 EDT -04:00" {
		t.Errorf("unexpected converted time %s", act)
	}
	if ny.ValueOf() != m.ValueOf() {
		t.Errorf("expected the instant to be kept")
	}
	if act := ny.ZoneName(); act != "America/New_York" {
		t.Errorf("unexpected zone name %q", act)
	}
	if z, ok := ny.Zone(); !ok || z.Name != "America/New_York" {
		t.Errorf("expected zone")
	}
	if !ny.IsDST() || !ny.IsUTCOffset() || ny.IsUTC() {
		t.Errorf("incorrect zone flags")
	}
	kept, err := m.Tz("America/New_York", true)
	if err != nil {
		t.Fatalf("tz: %v", err)
	}
	if act := kept.ToISOString(false); act != "2021-06-16T16:00:00.000Z" {
		t.Errorf("expected wall time to be kept, got %s", act)
	}
	winter, _ := utc(2021, 0, 16, 12).Tz("US/Eastern", false)
	if act := winter.Format("HH:mm z"); act != "07:00 EST" || winter.IsDST() {
		t.Errorf("unexpected winter time %s", act)
	}
	if _, err := m.Tz("Nope/Nope", false); !errors.Is(err, tz.ErrUnknownZone) {
		t.Errorf("expected unknown zone error, got %v", err)
	}
}

func TestUnits(t *testing.T) {
	for _, tc := range []struct {
		In  string
		Exp Unit
		OK  bool
	}{
		{"M", Month, true},
		{"m", Minute, true},
		{"months", Month, true},
		{"Month", Month, true},
		{"isoWeek", ISOWeek, true},
		{"W", ISOWeek, true},
		{"ms", Millisecond, true},
		{"D", Date, true},
		{"fortnight", 0, false},
	} {
		if act, ok := ParseUnit(tc.In); act != tc.Exp || ok != tc.OK {
			t.Errorf("%q: expected (%s, %t), got (%s, %t)", tc.In, tc.Exp, tc.OK, act, ok)
		}
	}
}
