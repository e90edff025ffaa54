package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrEmptyTag is returned when defining or updating a locale without a tag.
var ErrEmptyTag = errors.New("empty locale tag")

// Error is returned for invalid locale definitions.
type Error struct {
	Tag string
	Err error
}

func errorf(tag, format string, a ...any) error {
	return &Error{Tag: tag, Err: fmt.Errorf(format, a...)}
}

func (e *Error) Error() string {
	return "locale " + e.Tag + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// language returns the BCP 47 tag used for case mapping.
func (l *Locale) language() language.Tag {
	t, err := language.Parse(l.tag)
	if err != nil {
		return language.Und
	}
	return t
}
