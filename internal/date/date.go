// Package date parses and formats the calendar dates attached to deadline tasks.
package date

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const displayLayout = "Jan 02 2006"

// FormatError reports a date literal that is not an ISO calendar date.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: want yyyy-mm-dd", e.Input)
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Date is a calendar day with no time or zone.
type Date struct {
	d civil.Date
}

// Parse reads a YYYY-MM-DD literal. Surrounding whitespace is ignored.
func Parse(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	d, err := civil.ParseDate(trimmed)
	if err != nil {
		return Date{}, &FormatError{Input: trimmed, Err: err}
	}
	return Date{d: d}, nil
}

// New builds a Date from its parts. It panics if the parts do not form a valid day.
func New(year int, month time.Month, day int) Date {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		panic(fmt.Sprintf("date: invalid day %04d-%02d-%02d", year, month, day))
	}
	return Date{d: d}
}

// IsZero reports whether d was never set.
func (d Date) IsZero() bool {
	return d.d.IsZero()
}

// String returns the ISO form used in storage.
func (d Date) String() string {
	return d.d.String()
}

// Display returns the human-readable form, e.g. "Mar 03 2025".
func (d Date) Display() string {
	return d.d.In(time.UTC).Format(displayLayout)
}
