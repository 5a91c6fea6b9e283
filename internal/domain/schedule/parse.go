// Package schedule turns the free-form date and time strings stored on
// bookings into comparable instants.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseDateTime combines a date and a wall-clock time in loc. A date that is
// already a full RFC 3339 timestamp is returned as is and clock is ignored.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if date == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return ts, nil
	}

	day, err := parseFirst(dateLayouts, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if clock == "" {
		return time.Time{}, fmt.Errorf("time is empty")
	}
	tod, err := parseFirst(clockLayouts, clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", clock, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
}

func parseFirst(layouts []string, value string, loc *time.Location) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		ts, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
