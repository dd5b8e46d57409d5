package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the persisted and exchanged calendar date format.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
)

// TimeOfDay is a wall-clock time expressed in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded 24-hour "HH:MM" string.
// "9:00" and "24:00" are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	return TimeOfDay(h*60 + m), nil
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
	}
	return d, nil
}

// DateOnly truncates t to its calendar date in UTC, discarding the clock
// and the location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Interval is a scheduled date with an optional time range.
// An all-day interval carries no Start/End.
type Interval struct {
	Date   time.Time
	AllDay bool
	Start  TimeOfDay
	End    TimeOfDay
}

// NormalizeInterval validates raw date/start/end input. When either time is
// blank the result is all-day. It does not check that start precedes end:
// degenerate intervals still take part in overlap checks.
func NormalizeInterval(date, start, end string) (Interval, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Interval{}, err
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Interval{Date: d, AllDay: true}, nil
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Date: d, Start: s, End: e}, nil
}

// Overlaps reports whether two timed intervals on the same date intersect
// under half-open semantics. Touching endpoints do not overlap and all-day
// intervals never overlap anything.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.AllDay || other.AllDay {
		return false
	}
	if !iv.Date.Equal(other.Date) {
		return false
	}
	return !(iv.End <= other.Start || iv.Start >= other.End)
}

// Label renders the time range, e.g. "09:00-12:00".
func (iv Interval) Label() string {
	if iv.AllDay {
		return "all day"
	}
	return iv.Start.String() + "-" + iv.End.String()
}
