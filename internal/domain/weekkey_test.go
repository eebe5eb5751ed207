package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWeekKey_NormalizesToMonday(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday", date(2026, 10, 12), "2026-10-12"},
		{"wednesday", date(2026, 10, 14), "2026-10-12"},
		{"sunday", date(2026, 10, 18), "2026-10-12"},
		{"next monday", date(2026, 10, 19), "2026-10-19"},
		{"across year", date(2027, 1, 1), "2026-12-28"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := NewWeekKey("Ritu Das", tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, k.WeekStartString())
			assert.Equal(t, time.Monday, k.WeekStart.Weekday())
		})
	}
}

func TestNewWeekKey_UsesCalendarDateOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// Monday 06:00 local is still Sunday in UTC.
	k, err := NewWeekKey("A", time.Date(2026, 10, 12, 6, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-12", k.WeekStartString())
}

func TestNewWeekKey_RejectsEmptyEmployee(t *testing.T) {
	_, err := NewWeekKey("  ", date(2026, 10, 12))
	assert.ErrorIs(t, err, ErrInvalidWeekKey)
}

func TestParseWeekKey_RoundTrip(t *testing.T) {
	k, err := ParseWeekKey("Ritu Das::2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, "Ritu Das", k.Employee)
	assert.Equal(t, "Ritu Das::2026-10-12", k.String())

	_, err = ParseWeekKey("no-separator")
	assert.ErrorIs(t, err, ErrInvalidWeekKey)
	_, err = ParseWeekKey("A::not-a-date")
	assert.ErrorIs(t, err, ErrInvalidWeekKey)
}

func TestWeekKey_DayIndexOf(t *testing.T) {
	k, err := NewWeekKey("A", date(2026, 10, 12))
	require.NoError(t, err)

	idx, ok := k.DayIndexOf(time.Date(2026, 10, 14, 23, 59, 0, 0, time.Local))
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = k.DayIndexOf(date(2026, 10, 19))
	assert.False(t, ok, "next monday is outside the week")
	_, ok = k.DayIndexOf(date(2026, 10, 11))
	assert.False(t, ok, "previous sunday is outside the week")

	assert.Equal(t, "2026-10-18", k.Date(6).Format(DateLayout))
}
