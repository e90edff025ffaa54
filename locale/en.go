package locale

import "strconv"

// baseSpec is the root of every locale. Locales without a parent inherit
// anything they don't define from it.
var baseSpec = Spec{
	Months:        []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	MonthsShort:   []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Weekdays:      []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	WeekdaysShort: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	WeekdaysMin:   []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	LongDateFormat: map[string]string{
		"LTS":  "h:mm:ss A",
		"LT":   "h:mm A",
		"L":    "MM/DD/YYYY",
		"LL":   "MMMM D, YYYY",
		"LLL":  "MMMM D, YYYY h:mm A",
		"LLLL": "dddd, MMMM D, YYYY h:mm A",
	},
	Calendar: map[string]string{
		"sameDay":  "[Today at] LT",
		"nextDay":  "[Tomorrow at] LT",
		"nextWeek": "dddd [at] LT",
		"lastDay":  "[Yesterday at] LT",
		"lastWeek": "[Last] dddd [at] LT",
		"sameElse": "L",
	},
	RelativeTime: map[string]string{
		"future": "in %s",
		"past":   "%s ago",
		"s":      "a few seconds",
		"ss":     "%d seconds",
		"m":      "a minute",
		"mm":     "%d minutes",
		"h":      "an hour",
		"hh":     "%d hours",
		"d":      "a day",
		"dd":     "%d days",
		"w":      "a week",
		"ww":     "%d weeks",
		"M":      "a month",
		"MM":     "%d months",
		"y":      "a year",
		"yy":     "%d years",
	},
	Ordinal:       "%d",
	AM:            "AM",
	PM:            "PM",
	MeridiemParse: `[ap]\.?m?\.?`,
	Week:          &Week{Dow: 0, Doy: 6},
	InvalidDate:   "Invalid date",
}

var builtins = []struct {
	Tag  string
	Spec Spec
}{
	{"en", Spec{
		OrdinalParse: `\d{1,2}(th|st|nd|rd)`,
		OrdinalFunc:  englishOrdinal,
	}},
	{"en-gb", Spec{
		Parent: "en",
		LongDateFormat: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "D MMMM YYYY HH:mm",
			"LLLL": "dddd, D MMMM YYYY HH:mm",
		},
		Week: &Week{Dow: 1, Doy: 4},
	}},
}

func englishOrdinal(n int, _ string) string {
	s := strconv.Itoa(n)
	if n < 0 {
		n = -n
	}
	if (n%100)/10 == 1 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	}
	return s + "th"
}
