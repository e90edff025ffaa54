package locale

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/pgaskin/chrono/calendar"
	"github.com/pgaskin/chrono/testdata"
)

func TestEnglish(t *testing.T) {
	l, ok := NewRegistry().Get("en")
	if !ok {
		t.Fatalf("en not defined")
	}
	for _, tc := range []struct {
		N   int
		Exp string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {101, "101st"}, {111, "111th"},
	} {
		if act := l.Ordinal(tc.N, "Do"); act != tc.Exp {
			t.Errorf("ordinal %d: expected %q, got %q", tc.N, tc.Exp, act)
		}
	}
	if act := l.Meridiem(13, 0, false); act != "PM" {
		t.Errorf("expected PM, got %q", act)
	}
	if act := l.Meridiem(11, 59, true); act != "am" {
		t.Errorf("expected am, got %q", act)
	}
	if !l.IsPM("p.m.") || l.IsPM("AM") {
		t.Errorf("incorrect IsPM")
	}
	if act := l.RelativeTime(5, false, "mm", true); act != "5 minutes" {
		t.Errorf("expected 5 minutes, got %q", act)
	}
	if act := l.PastFuture(1, "5 minutes"); act != "in 5 minutes" {
		t.Errorf("expected future, got %q", act)
	}
	if act := l.PastFuture(-1, "a day"); act != "a day ago" {
		t.Errorf("expected past, got %q", act)
	}
	if l.Week() != calendar.USWeek {
		t.Errorf("expected US week rule, got %+v", l.Week())
	}
	if f, _ := l.LongDateFormat("LLLL"); f != "dddd, MMMM D, YYYY h:mm A" {
		t.Errorf("unexpected LLLL %q", f)
	}
	if act := l.Calendar("bogus"); act != "L" {
		t.Errorf("expected sameElse fallback, got %q", act)
	}
	if l.InvalidDate() != "Invalid date" {
		t.Errorf("unexpected invalid date string")
	}
}

func TestNameParsing(t *testing.T) {
	l, _ := NewRegistry().Get("en")
	for _, tc := range []struct {
		Token  string
		Strict bool
		Input  string
		Match  string
		Index  int
	}{
		{"MMM", false, "september", "september", 8},
		{"MMM", false, "Sep", "Sep", 8},
		{"MMM", true, "Sep", "Sep", 8},
		{"MMM", true, "September", "Sep", 8},
		{"MMMM", true, "may", "may", 4},
		{"MMMM", true, "Jan", "", -1},
	} {
		m := l.MonthsRegexp(tc.Token, tc.Strict).FindString(tc.Input)
		if m != tc.Match {
			t.Errorf("%s %q (strict=%t): expected match %q, got %q", tc.Token, tc.Input, tc.Strict, tc.Match, m)
			continue
		}
		if m == "" {
			continue
		}
		if i, ok := l.MonthsParse(m, tc.Token, tc.Strict); !ok || i != tc.Index {
			t.Errorf("%s %q (strict=%t): expected month %d, got %d", tc.Token, tc.Input, tc.Strict, tc.Index, i)
		}
	}
	if i, ok := l.WeekdaysParse("thursday", "dddd", false); !ok || i != 4 {
		t.Errorf("expected thursday to be 4, got %d", i)
	}
	if m := l.WeekdaysRegexp("dd", true).FindString("Tuesday"); m != "Tu" {
		t.Errorf("expected min weekday match, got %q", m)
	}
	if m := l.OrdinalRegexp(true).FindString("22nd"); m != "22nd" {
		t.Errorf("expected strict ordinal match, got %q", m)
	}
	if m := l.OrdinalRegexp(false).FindString("22"); m != "22" {
		t.Errorf("expected lenient ordinal match, got %q", m)
	}
	if m := l.MeridiemRegexp().FindString("11 P.M."); m != "P.M." {
		t.Errorf("expected meridiem match, got %q", m)
	}
}

func TestChoose(t *testing.T) {
	r := NewRegistry()
	for _, tc := range []struct {
		Tags []string
		Exp  string
	}{
		{[]string{"en"}, "en"},
		{[]string{"EN_GB"}, "en-gb"},
		{[]string{"en-GB-oxendict"}, "en-gb"},
		{[]string{"en-au"}, "en"},
		{[]string{"xx", "en-gb"}, "en-gb"},
		{[]string{"xx"}, "en"},
	} {
		if act := r.Resolve(tc.Tags...).Tag(); act != tc.Exp {
			t.Errorf("%q: expected %s, got %s", tc.Tags, tc.Exp, act)
		}
	}
	if _, ok := r.Get("xx"); ok {
		t.Errorf("expected xx to be undefined")
	}
}

func TestDefine(t *testing.T) {
	r := NewRegistry()
	if err := r.Define("", Spec{}); !errors.Is(err, ErrEmptyTag) {
		t.Errorf("expected ErrEmptyTag, got %v", err)
	}

	// child before parent
	if err := r.Define("fr-ca", Spec{
		Parent:         "fr",
		LongDateFormat: map[string]string{"L": "YYYY-MM-DD"},
	}); err != nil {
		t.Fatalf("define fr-ca: %v", err)
	}
	if _, ok := r.Get("fr-ca"); ok {
		t.Fatalf("fr-ca should be deferred")
	}
	if p := r.Pending(); !slices.Equal(p["fr"], []string{"fr-ca"}) {
		t.Errorf("expected fr-ca to be pending on fr, got %v", p)
	}
	if err := r.Define("fr", Spec{
		Months:         []string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		MonthsShort:    []string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		Ordinal:        "%d",
		LongDateFormat: map[string]string{"LT": "HH:mm", "L": "DD/MM/YYYY"},
		Week:           &Week{Dow: 1, Doy: 4},
	}); err != nil {
		t.Fatalf("define fr: %v", err)
	}
	if len(r.Pending()) != 0 {
		t.Errorf("expected no pending locales")
	}
	frca, ok := r.Get("fr-ca")
	if !ok || frca.Tag() != "fr-ca" || frca.Parent() != "fr" {
		t.Fatalf("expected fr-ca to be defined")
	}
	if act, _ := frca.LongDateFormat("L"); act != "YYYY-MM-DD" {
		t.Errorf("expected own L, got %q", act)
	}
	if act, _ := frca.LongDateFormat("LT"); act != "HH:mm" {
		t.Errorf("expected inherited LT, got %q", act)
	}
	if act, _ := frca.LongDateFormat("LLLL"); act != "dddd, MMMM D, YYYY h:mm A" {
		t.Errorf("expected base LLLL, got %q", act)
	}
	if act := frca.Months(1); act != "février" {
		t.Errorf("expected inherited month names, got %q", act)
	}
	if i, ok := frca.MonthsParse("FÉVRIER", "MMMM", true); !ok || i != 1 {
		t.Errorf("expected case-insensitive match, got %d", i)
	}
	if act := frca.Ordinal(1, "Do"); act != "1" {
		t.Errorf("expected numeric ordinal, got %q", act)
	}
	if frca.Week() != calendar.ISOWeek {
		t.Errorf("expected ISO week rule, got %+v", frca.Week())
	}
	if r.Current().Tag() != "en" {
		t.Errorf("defining a locale should not change the current locale")
	}

	if err := r.Define("bad", Spec{Months: []string{"a"}}); err == nil {
		t.Errorf("expected error for bad month names")
	}
}

func TestUpdate(t *testing.T) {
	r := NewRegistry()
	if err := r.Update("en", &Spec{InvalidDate: "bad"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if act := r.Current().InvalidDate(); act != "bad" {
		t.Errorf("expected updated current locale, got %q", act)
	}
	if act := r.Current().Ordinal(2, "Do"); act != "2nd" {
		t.Errorf("expected ordinal to be kept, got %q", act)
	}
	if err := r.Update("en", nil); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if act := r.Current().InvalidDate(); act != "Invalid date" {
		t.Errorf("expected reverted locale, got %q", act)
	}
	if err := r.Update("zz", &Spec{InvalidDate: "zz"}); err != nil {
		t.Fatalf("update new: %v", err)
	}
	if l, ok := r.Get("zz"); !ok || l.Months(0) != "January" {
		t.Errorf("expected new locale based on base config")
	}
	if err := r.Update("zz", nil); err != nil {
		t.Fatalf("revert new: %v", err)
	}
	if _, ok := r.Get("zz"); ok {
		t.Errorf("expected zz to be removed")
	}
}

func TestSetCurrent(t *testing.T) {
	r := NewRegistry()
	if act := r.SetCurrent("en_GB").Tag(); act != "en-gb" {
		t.Errorf("expected en-gb, got %s", act)
	}
	if act := r.SetCurrent("xx").Tag(); act != "en-gb" {
		t.Errorf("expected unchanged locale, got %s", act)
	}
	if act := r.Resolve("xx").Tag(); act != "en-gb" {
		t.Errorf("expected fallback to current, got %s", act)
	}
}

func TestLoadFS(t *testing.T) {
	r := NewRegistry()
	n, err := r.LoadFS(testdata.Locales())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 locales, got %d", n)
	}
	if act := r.Tags(); !slices.Equal(act, []string{"de", "de-at", "en", "en-gb", "fr", "nl"}) {
		t.Errorf("unexpected tags %q", act)
	}
	deat, _ := r.Get("de-at")
	if act := deat.Months(0); act != "Jänner" {
		t.Errorf("expected own month, got %q", act)
	}
	if act := deat.Ordinal(3, "Do"); act != "3." {
		t.Errorf("expected inherited ordinal, got %q", act)
	}
	if m := deat.OrdinalRegexp(true).FindString("3."); m != "3." {
		t.Errorf("expected ordinal parse, got %q", m)
	}
	if act, _ := deat.LongDateFormat("L"); act != "DD.MM.YYYY" {
		t.Errorf("expected inherited L, got %q", act)
	}
	nl, _ := r.Get("nl")
	if act := nl.PastFuture(-1, "een dag"); act != "een dag geleden" {
		t.Errorf("unexpected past %q", act)
	}
	if act := nl.RelativeTime(3, false, "dd", false); act != "3 days" {
		t.Errorf("expected base relative time, got %q", act)
	}
	if nl.Week() != calendar.ISOWeek {
		t.Errorf("expected ISO week from json")
	}
	fr, _ := r.Get("fr")
	if m, ok := fr.MonthsParse("août", "MMMM", true); !ok || m != 7 {
		t.Errorf("expected august, got %d", m)
	}
	if act := fr.InvalidDate(); act != "Date invalide" {
		t.Errorf("unexpected invalid date %q", act)
	}
}

func TestLoadFSMissingParent(t *testing.T) {
	r := NewRegistry()
	n, err := r.LoadFS(fstest.MapFS{
		"xx-yy.yaml": {Data: []byte("parentLocale: xx\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 locale, got %d", n)
	}
	if _, ok := r.Get("xx-yy"); ok {
		t.Errorf("expected child to wait for its parent")
	}
	if p := r.Pending(); !slices.Equal(p["xx"], []string{"xx-yy"}) {
		t.Errorf("unexpected pending %q", p)
	}
}

func TestParseFileErrors(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Data string
	}{
		{"x.yaml", "bogus: 1\n"},
		{"x.toml", "bogus = 1\n"},
		{"x.json", `{"bogus": 1}`},
		{"x.json", `{"months": "x"}`},
		{"x.json", `{`},
		{"x.ini", ``},
	} {
		if _, err := ParseFile(tc.Name, []byte(tc.Data)); err == nil {
			t.Errorf("%s %q: expected error", tc.Name, tc.Data)
		}
	}
}

func TestLongDateFormatLowercase(t *testing.T) {
	l, _ := NewRegistry().Get("en")
	for _, tc := range []struct {
		Key string
		Exp string
	}{
		{"l", "M/D/YYYY"},
		{"ll", "MMM D, YYYY"},
		{"lll", "MMM D, YYYY h:mm A"},
		{"llll", "ddd, MMM D, YYYY h:mm A"},
	} {
		if act, ok := l.LongDateFormat(tc.Key); !ok || act != tc.Exp {
			t.Errorf("%s: expected %q, got %q", tc.Key, tc.Exp, act)
		}
	}
	if _, ok := l.LongDateFormat("LLLLL"); ok {
		t.Errorf("expected unknown key to be missing")
	}
}
