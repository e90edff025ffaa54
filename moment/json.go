package moment

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	_ json.Marshaler           = Moment{}
	_ json.Unmarshaler         = (*Moment)(nil)
	_ encoding.TextMarshaler   = Moment{}
	_ encoding.TextUnmarshaler = (*Moment)(nil)
	_ encoding.TextMarshaler   = Duration{}
	_ encoding.TextUnmarshaler = (*Duration)(nil)
)

// ErrInvalidDate is returned when marshaling an invalid value as text.
var ErrInvalidDate = errors.New("invalid date")

// MarshalJSON encodes m as an ISO 8601 string in UTC, or null if m is
// invalid.
func (m Moment) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.ToISOString(false))
}

// UnmarshalJSON decodes null as an invalid value, a number as milliseconds
// since the epoch, and a string like Parse.
func (m *Moment) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("unmarshal date: invalid json")
	}
	switch v := gjson.ParseBytes(b); v.Type {
	case gjson.Null:
		p := newParser("", buildOptions(nil))
		p.flags.NullInput = true
		*m = p.build()
		return nil
	case gjson.Number:
		*m = UnixMilli(v.Int())
		return nil
	case gjson.String:
		return m.UnmarshalText([]byte(v.Str))
	default:
		return fmt.Errorf("unmarshal date: unexpected json %s", v.Type)
	}
}

// MarshalText encodes m as an ISO 8601 string in UTC.
func (m Moment) MarshalText() ([]byte, error) {
	if !m.valid {
		return nil, fmt.Errorf("marshal date: %w", ErrInvalidDate)
	}
	return []byte(m.ToISOString(false)), nil
}

// UnmarshalText parses b like Parse. If it isn't valid, m is set to the
// invalid value and an error is returned.
func (m *Moment) UnmarshalText(b []byte) error {
	*m = Parse(string(b))
	if !m.valid {
		return fmt.Errorf("unmarshal date %q: %w", b, ErrInvalidDate)
	}
	return nil
}

// MarshalText encodes d as an ISO 8601 duration.
func (d Duration) MarshalText() ([]byte, error) {
	if d.invalid {
		return nil, fmt.Errorf("marshal duration: invalid duration")
	}
	return []byte(d.ToISOString()), nil
}

// UnmarshalText parses b like ParseDuration.
func (d *Duration) UnmarshalText(b []byte) error {
	v, ok := ParseDuration(string(b))
	if !ok || !v.IsValid() {
		return fmt.Errorf("unmarshal duration %q: invalid duration", b)
	}
	*d = v
	return nil
}
