package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the layout of date-only fields such as service dates.
	DateLayout = "2006-01-02"
	// TimestampLayout matches JavaScript's toISOString output.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// Timestamp renders t as a UTC ISO-8601 instant.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseDate parses an ISO-8601 date or date-time string. Values without a
// zone are interpreted in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// DaysInclusive counts calendar days from start to end in loc, both ends
// included, so a rental from Jan 1 to Jan 3 spans three days. Times of day
// are ignored.
func DaysInclusive(start, end string, loc *time.Location) (int, error) {
	if loc == nil {
		loc = time.UTC
	}
	from, err := ParseDate(start, loc)
	if err != nil {
		return 0, fmt.Errorf("start date: %w", err)
	}
	to, err := ParseDate(end, loc)
	if err != nil {
		return 0, fmt.Errorf("end date: %w", err)
	}
	return int(calendarDate(to, loc).Sub(calendarDate(from, loc)).Hours()/24) + 1, nil
}

// calendarDate maps t to midnight UTC of its date in loc. UTC days are all
// 24 hours long, so differences are exact multiples of a day.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
