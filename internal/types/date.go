package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Date is a calendar day in UTC. It has no time-of-day semantics, the
// upstream API transmits it as a "YYYY-MM-DD" string.
type Date time.Time

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date a time instant falls on, in UTC.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return NewDate(year, month, day)
}

// ParseDate parses a string in RFC3339 full-date format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// Day returns the day of the month, starting at 1.
func (d Date) Day() int {
	return time.Time(d).Day()
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Before reports whether the date d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Time returns the first instant of the day in UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// A date that does not parse is replaced by the zero value instead of
// failing the whole payload. One bad field from upstream must not blank
// the budget, the warning is surfaced in the log.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Soft-deleted timestamps and some upstream exports use full
		// RFC3339 instants
		t, err = time.Parse(time.RFC3339, value)
	}

	if err != nil {
		log.Warn().Str("date", value).Msg("unparsable date from upstream, defaulting to zero date")
		*d = Date{}
		return nil
	}

	*d = DateOf(t)
	return nil
}
