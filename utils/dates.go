package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ParseDateTime parses an RFC 3339 timestamp, fractional seconds allowed.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// DateKey returns the calendar day of t as seen in loc, as UTC midnight.
// Day documents are keyed by this value.
func DateKey(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPastDate reports whether the calendar day key lies strictly before the
// current day in loc. Time of day is ignored.
func IsPastDate(day time.Time, now time.Time, loc *time.Location) bool {
	return day.Before(DateKey(now, loc))
}

// FormatDate renders a day key as "YYYY-MM-DD".
func FormatDate(day time.Time) string {
	return day.UTC().Format(dateLayout)
}
