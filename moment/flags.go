package moment

import (
	"maps"
	"slices"
)

// ParsingFlags describes how a value was parsed and why it may be invalid.
type ParsingFlags struct {
	Empty           bool     // nothing in the input matched the format
	UnusedTokens    []string // format tokens not found in the input
	UnusedInput     []string // input skipped over while matching
	Overflow        Field    // first field out of range, or NoField
	CharsLeftOver   int      // number of input characters not consumed
	NullInput       bool     // the input was empty
	InvalidMonth    string   // a month name which didn't parse
	InvalidWeekday  string   // a weekday name which didn't parse
	InvalidFormat   bool     // no formats were given
	UserInvalidated bool     // created with Invalid
	ISO             bool     // the input was ISO 8601
	RFC2822         bool     // the input was RFC 2822
	WeekdayMismatch bool     // a parsed weekday doesn't match the date
	BigHour         bool     // a 12-hour token held a value over 12
	Meridiem        string   // the parsed meridiem, if any

	// ParsedDateParts holds the array fields which were parsed.
	ParsedDateParts map[Field]int

	overflowDayOfYear bool
	overflowWeeks     bool
	overflowWeekday   bool
}

func defaultFlags() ParsingFlags {
	return ParsingFlags{Overflow: NoField}
}

func (f ParsingFlags) clone() ParsingFlags {
	f.UnusedTokens = slices.Clone(f.UnusedTokens)
	f.UnusedInput = slices.Clone(f.UnusedInput)
	f.ParsedDateParts = maps.Clone(f.ParsedDateParts)
	return f
}

// valid reports whether the flags allow a value to be valid, ignoring the
// instant itself.
func (f ParsingFlags) valid(strict bool) bool {
	ok := f.Overflow < 0 &&
		!f.Empty &&
		f.InvalidMonth == "" &&
		f.InvalidWeekday == "" &&
		!f.WeekdayMismatch &&
		!f.NullInput &&
		!f.InvalidFormat &&
		!f.UserInvalidated &&
		(f.Meridiem == "" || len(f.ParsedDateParts) != 0)
	if strict {
		ok = ok && f.CharsLeftOver == 0 && len(f.UnusedTokens) == 0 && !f.BigHour
	}
	return ok
}

// CreationData describes the input a value was created from.
type CreationData struct {
	Input   string
	Formats []string // formats tried, if any
	Format  string   // format which was used, if any
	Locale  string
	IsUTC   bool
	Strict  bool
}

type parseInfo struct {
	flags   ParsingFlags
	created CreationData
}

// ParsingFlags returns a copy of the parsing diagnostics. Values which weren't
// parsed have the default flags.
func (m Moment) ParsingFlags() ParsingFlags {
	if m.info == nil {
		return defaultFlags()
	}
	return m.info.flags.clone()
}

// InvalidAt returns the first array field which overflowed, or NoField.
func (m Moment) InvalidAt() Field {
	if m.info == nil {
		return NoField
	}
	return m.info.flags.Overflow
}

// CreationData returns how m was created, or false if it wasn't parsed.
func (m Moment) CreationData() (CreationData, bool) {
	if m.info == nil {
		return CreationData{}, false
	}
	c := m.info.created
	c.Formats = slices.Clone(c.Formats)
	return c, true
}
