package shared

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates. The tracker has no
// time-of-day semantics: every comparison truncates to midnight.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date strictly. Malformed input is rejected
// with ErrValidation rather than coerced to a sentinel date.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, value)
	}
	return Midnight(t), nil
}

// Midnight truncates a timestamp to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns ceil(|today-then| / 1 day) over midnight-truncated
// dates, so a sale made any time yesterday counts as one day ago
// independent of clock drift within the day.
func DaysSince(today, then time.Time) int {
	diff := Midnight(today).Sub(Midnight(then))
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
