package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DaysPerWeek is the number of day cells in every task row, Monday first.
const DaysPerWeek = 7

// DateLayout is the calendar date format used in keys and exports.
const DateLayout = "2006-01-02"

// keySeparator joins employee and week start in the store key.
const keySeparator = "::"

// ErrInvalidWeekKey is returned when a week key cannot be built or parsed.
var ErrInvalidWeekKey = errors.New("invalid week key")

// WeekKey identifies one employee's sheet for one week. WeekStart is always
// the Monday of the week as a calendar date (midnight UTC).
type WeekKey struct {
	Employee  string
	WeekStart time.Time
}

// NewWeekKey builds a key for the week containing date. The calendar date is
// read in date's own location before normalizing to Monday.
func NewWeekKey(employee string, date time.Time) (WeekKey, error) {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return WeekKey{}, fmt.Errorf("%w: employee is required", ErrInvalidWeekKey)
	}
	if date.IsZero() {
		return WeekKey{}, fmt.Errorf("%w: date is required", ErrInvalidWeekKey)
	}
	return WeekKey{Employee: employee, WeekStart: MondayOf(date)}, nil
}

// ParseWeekKey parses the "employee::YYYY-MM-DD" store key format. Non-Monday
// dates are normalized.
func ParseWeekKey(s string) (WeekKey, error) {
	idx := strings.LastIndex(s, keySeparator)
	if idx < 0 {
		return WeekKey{}, fmt.Errorf("%w: %q has no %q separator", ErrInvalidWeekKey, s, keySeparator)
	}
	date, err := time.Parse(DateLayout, s[idx+len(keySeparator):])
	if err != nil {
		return WeekKey{}, fmt.Errorf("%w: %v", ErrInvalidWeekKey, err)
	}
	return NewWeekKey(s[:idx], date)
}

// String returns the store key, e.g. "Ritu Das::2026-10-12".
func (k WeekKey) String() string {
	return k.Employee + keySeparator + k.WeekStartString()
}

// WeekStartString returns the Monday as YYYY-MM-DD.
func (k WeekKey) WeekStartString() string {
	return k.WeekStart.Format(DateLayout)
}

// Date returns the calendar date of the given day index (0 = Monday).
func (k WeekKey) Date(dayIndex int) time.Time {
	return k.WeekStart.AddDate(0, 0, dayIndex)
}

// DayIndexOf returns the day index that today falls on within this week.
// The second result is false when today is outside the week.
func (k WeekKey) DayIndexOf(today time.Time) (int, bool) {
	d := civilDate(today)
	days := int(d.Sub(k.WeekStart).Hours() / 24)
	if days < 0 || days >= DaysPerWeek {
		return 0, false
	}
	return days, true
}

// MondayOf returns the Monday of the ISO week containing t as a calendar date.
func MondayOf(t time.Time) time.Time {
	d := civilDate(t)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the ISO week
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// civilDate drops the clock and zone of t, keeping the calendar date it
// shows in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
