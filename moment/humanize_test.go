package moment

import (
	"math"
	"testing"
)

func TestHumanize(t *testing.T) {
	for _, tc := range []struct {
		D      Duration
		Suffix bool
		Exp    string
	}{
		{NewDuration(10, Second), false, "a few seconds"},
		{NewDuration(44, Second), false, "a few seconds"},
		{NewDuration(45, Second), false, "a minute"},
		{NewDuration(90, Second), false, "2 minutes"},
		{NewDuration(44, Minute), false, "44 minutes"},
		{NewDuration(45, Minute), false, "an hour"},
		{NewDuration(5, Hour), false, "5 hours"},
		{NewDuration(22, Hour), false, "a day"},
		{NewDuration(3, Day), false, "3 days"},
		{NewDuration(3, Day), true, "in 3 days"},
		{NewDuration(-3, Day), true, "3 days ago"},
		{NewDuration(45, Day), false, "a month"},
		{NewDuration(100, Day), false, "3 months"},
		{NewDuration(400, Day), false, "a year"},
		{NewDuration(730, Day), false, "2 years"},
		{InvalidDuration(), false, "Invalid date"},
	} {
		if act := tc.D.HumanizeWith(tc.Suffix, DefaultThresholds); act != tc.Exp {
			t.Errorf("%s: expected %q, got %q", tc.D, tc.Exp, act)
		}
	}
}

func TestHumanizeWeeks(t *testing.T) {
	th := DefaultThresholds
	th.D, th.W = 7, 4
	for _, tc := range []struct {
		D   Duration
		Exp string
	}{
		{NewDuration(6, Day), "6 days"},
		{NewDuration(7, Day), "a week"},
		{NewDuration(14, Day), "2 weeks"},
		{NewDuration(30, Day), "a month"},
	} {
		if act := tc.D.HumanizeWith(false, th); act != tc.Exp {
			t.Errorf("%s: expected %q, got %q", tc.D, tc.Exp, act)
		}
	}
	if act := NewDuration(14, Day).HumanizeWith(false, DefaultThresholds); act != "14 days" {
		t.Errorf("expected weeks to be disabled by default, got %q", act)
	}
}

func TestRelativeTimeSettings(t *testing.T) {
	t.Cleanup(func() {
		SetRelativeTimeThresholds(DefaultThresholds)
		SetRelativeTimeRounding(nil)
	})
	if SetRelativeTimeThreshold("x", 1) {
		t.Errorf("expected unknown threshold to be rejected")
	}
	if !SetRelativeTimeThreshold("s", 30) {
		t.Fatalf("expected threshold to be set")
	}
	if th := RelativeTimeThresholds(); th.S != 30 || th.SS != 29 {
		t.Errorf("unexpected thresholds %+v", th)
	}
	if act := NewDuration(35, Second).Humanize(false); act != "a minute" {
		t.Errorf("expected custom threshold to apply, got %q", act)
	}
	SetRelativeTimeThresholds(DefaultThresholds)

	SetRelativeTimeRounding(math.Floor)
	if act := NewDuration(90, Second).Humanize(false); act != "a minute" {
		t.Errorf("expected custom rounding to apply, got %q", act)
	}
	SetRelativeTimeRounding(nil)
	if act := NewDuration(90, Second).Humanize(false); act != "2 minutes" {
		t.Errorf("expected default rounding, got %q", act)
	}
}

func TestFromTo(t *testing.T) {
	a, b := utc(2021, 5, 13), utc(2021, 5, 16)
	if act := b.From(a, false); act != "in 3 days" {
		t.Errorf("unexpected from %q", act)
	}
	if act := a.From(b, false); act != "3 days ago" {
		t.Errorf("unexpected from %q", act)
	}
	if act := b.From(a, true); act != "3 days" {
		t.Errorf("unexpected from without suffix %q", act)
	}
	if act := a.To(b, false); act != "in 3 days" {
		t.Errorf("unexpected to %q", act)
	}
	if act := a.From(Invalid(), false); act != "Invalid date" {
		t.Errorf("expected invalid date, got %q", act)
	}
}

func TestCalendar(t *testing.T) {
	ref := utc(2021, 5, 16, 10) // Wednesday
	for _, tc := range []struct {
		M   Moment
		Key string
		Exp string
	}{
		{utc(2021, 5, 16, 14, 30), "sameDay", "Today at 2:30 PM"},
		{utc(2021, 5, 17, 12), "nextDay", "Tomorrow at 12:00 PM"},
		{utc(2021, 5, 15, 12), "lastDay", "Yesterday at 12:00 PM"},
		{utc(2021, 5, 19, 12), "nextWeek", "Saturday at 12:00 PM"},
		{utc(2021, 5, 12, 9), "lastWeek", "Last Saturday at 9:00 AM"},
		{utc(2021, 5, 26), "sameElse", "06/26/2021"},
	} {
		if act := tc.M.CalendarFormat(ref); act != tc.Key {
			t.Errorf("%s: expected key %q, got %q", tc.M.Format(""), tc.Key, act)
		}
		if act := tc.M.Calendar(ref, nil); act != tc.Exp {
			t.Errorf("%s: expected %q, got %q", tc.M.Format(""), tc.Exp, act)
		}
	}
	if act := utc(2021, 5, 16, 14).Calendar(ref, map[string]string{"sameDay": "[later today]"}); act != "later today" {
		t.Errorf("expected format override, got %q", act)
	}
}
