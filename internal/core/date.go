package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// dateLayout is the wire and storage format for dates.
const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day component, normalized to
// midnight UTC. The zero Date means "unknown" and is a legal value for
// optional fields such as a contract's start or end date.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO date (2006-01-02). Empty or whitespace-only input
// yields the zero Date without error; anything else malformed is an error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

// AddMonths shifts the date by n calendar months, clamping to the last day
// of the target month when the day would overflow (Jan 31 + 1 month is
// Feb 28/29, never Mar 2).
func (d Date) AddMonths(n int) Date {
	y, m, day := d.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// DaysUntil returns the signed number of days from now to d, rounding any
// fractional remainder up so partial days still count.
func (d Date) DaysUntil(now Date) int {
	diff := d.Sub(now.Time)
	return int(math.Ceil(diff.Hours() / 24))
}

// Year returns the calendar year, or 0 for the zero Date.
func (d Date) Year() int {
	if d.IsZero() {
		return 0
	}
	return d.Time.Year()
}

// MonthOf returns the month as 1..12, or 0 for the zero Date.
func (d Date) MonthOf() int {
	if d.IsZero() {
		return 0
	}
	return int(d.Time.Month())
}

// String renders the ISO form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as an ISO string, the zero Date as "".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO string or "" for the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
