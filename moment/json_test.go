package moment

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalJSON(t *testing.T) {
	type event struct {
		When   Moment   `json:"when"`
		Length Duration `json:"length"`
	}
	buf, err := json.Marshal(event{utc(2013, 1, 8, 9, 30, 26, 123), NewDuration(90, Minute)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act := string(buf); act != `{"when":"2013-02-08T09:30:26.123Z","length":"PT1H30M"}` {
		t.Errorf("unexpected json %s", act)
	}
	buf, err = json.Marshal(Invalid())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act := string(buf); act != "null" {
		t.Errorf("expected null for an invalid date, got %s", act)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	exp := utc(2013, 1, 8, 9, 30, 26, 123).ValueOf()
	for _, in := range []string{`"2013-02-08T09:30:26.123Z"`, `"2013-02-08T11:30:26.123+02:00"`, `1360315826123`} {
		var m Moment
		if err := m.UnmarshalJSON([]byte(in)); err != nil {
			t.Errorf("%s: unexpected error: %v", in, err)
			continue
		}
		if act := m.ValueOf(); act != exp {
			t.Errorf("%s: expected %d, got %d", in, exp, act)
		}
	}

	var m Moment
	if err := m.UnmarshalJSON([]byte("null")); err != nil {
		t.Errorf("null: unexpected error: %v", err)
	}
	if m.IsValid() || !m.ParsingFlags().NullInput {
		t.Errorf("null: expected an invalid null input")
	}

	if err := m.UnmarshalJSON([]byte(`"not a date"`)); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected invalid date error, got %v", err)
	}
	for _, in := range []string{`{`, `true`, `[1]`} {
		if err := m.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}

	var ev struct {
		When Moment `json:"when"`
	}
	if err := json.Unmarshal([]byte(`{"when":"2013-02-08T09:30:26.123Z"}`), &ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act := ev.When.ValueOf(); act != exp {
		t.Errorf("expected %d, got %d", exp, act)
	}
}

func TestMarshalText(t *testing.T) {
	buf, err := utc(2013, 1, 8).MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act := string(buf); act != "2013-02-08T00:00:00.000Z" {
		t.Errorf("unexpected text %q", act)
	}
	if _, err := Invalid().MarshalText(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected invalid date error, got %v", err)
	}

	var d Duration
	if err := d.UnmarshalText([]byte("P1DT12H")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Days() != 1 || d.Hours() != 12 {
		t.Errorf("unexpected duration %s", d)
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Errorf("expected error for an invalid duration")
	}
	if _, err := InvalidDuration().MarshalText(); err == nil {
		t.Errorf("expected error for an invalid duration")
	}
}
