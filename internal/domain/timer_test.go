package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_RejectsStartOnOtherDay(t *testing.T) {
	monday := date(2026, 10, 12)
	now := monday.Add(10 * time.Hour)
	w := newSheet(t)
	w.AddRow("A", "")

	tr := w.Toggle(0, 2, monday, now)
	assert.Equal(t, ToggleIgnored, tr.Outcome)
	d, _ := w.Day(0, 2)
	assert.False(t, d.Running())

	tr = w.Toggle(0, 0, monday, now)
	assert.Equal(t, ToggleStarted, tr.Outcome)
	d, _ = w.Day(0, 0)
	assert.True(t, d.Running())
	require.NotNil(t, w.Active)
	assert.Equal(t, Cell{Row: 0, Day: 0}, *w.Active)
}

func TestToggle_RejectsStartOutsideWeek(t *testing.T) {
	w := newSheet(t)
	w.AddRow("A", "")
	nextWeek := date(2026, 10, 19)
	assert.Equal(t, ToggleIgnored, w.Toggle(0, 0, nextWeek, nextWeek).Outcome)
}

func TestToggle_StopProducesSession(t *testing.T) {
	monday := date(2026, 10, 12)
	t0 := monday.Add(9 * time.Hour)
	w := newSheet(t)
	w.AddRow("A", "")

	require.Equal(t, ToggleStarted, w.Toggle(0, 0, monday, t0).Outcome)
	tr := w.Toggle(0, 0, monday, t0.Add(90*time.Minute))
	assert.Equal(t, ToggleStopped, tr.Outcome)
	assert.Equal(t, []Cell{{Row: 0, Day: 0}}, tr.Stopped)

	d, _ := w.Day(0, 0)
	require.Len(t, d.Sessions, 1)
	assert.Equal(t, Session{Start: t0, End: t0.Add(90 * time.Minute)}, d.Sessions[0])
	assert.Nil(t, d.RunningStart)
	assert.Nil(t, w.Active)
}

func TestToggle_StopAllowedOnPastDay(t *testing.T) {
	monday := date(2026, 10, 12)
	w := newSheet(t)
	w.AddRow("A", "")
	w.Toggle(0, 0, monday, monday.Add(23*time.Hour))

	tuesday := monday.AddDate(0, 0, 1)
	assert.Equal(t, ToggleStopped, w.Toggle(0, 0, tuesday, tuesday.Add(time.Hour)).Outcome)
}

func TestToggle_AutoStopsOtherTimer(t *testing.T) {
	monday := date(2026, 10, 12)
	t0 := monday.Add(9 * time.Hour)
	w := newSheet(t)
	w.AddRow("A", "")
	w.AddRow("B", "")

	w.Toggle(0, 0, monday, t0)
	tr := w.Toggle(1, 0, monday, t0.Add(30*time.Minute))
	assert.Equal(t, ToggleStarted, tr.Outcome)
	assert.Equal(t, []Cell{{Row: 0, Day: 0}}, tr.Stopped)
	assert.Equal(t, []Cell{{Row: 1, Day: 0}}, w.RunningCells())
	require.Len(t, w.Rows[0].Days[0].Sessions, 1)
	assert.Equal(t, 30*time.Minute, w.Rows[0].Days[0].Sessions[0].Duration())
}

func TestToggle_OutOfRangeIsNoop(t *testing.T) {
	monday := date(2026, 10, 12)
	w := newSheet(t)
	w.AddRow("A", "")
	before := w.Clone()

	for _, c := range []Cell{{1, 0}, {-1, 0}, {0, 7}, {0, -1}} {
		assert.Equal(t, ToggleIgnored, w.Toggle(c.Row, c.Day, monday, monday).Outcome)
	}
	assert.Equal(t, before, w)
}

func TestToggle_SubmittedSheetRefusesStartButAllowsStop(t *testing.T) {
	monday := date(2026, 10, 12)
	w := newSheet(t)
	w.AddRow("A", "")
	w.AddRow("B", "")
	w.Toggle(0, 0, monday, monday.Add(time.Hour))
	w.MarkSubmitted(SubmissionStatus{SubmissionID: "s"})

	assert.Equal(t, ToggleIgnored, w.Toggle(1, 0, monday, monday.Add(2*time.Hour)).Outcome)
	assert.True(t, w.Rows[0].Days[0].Running(), "refused start must not auto-stop")
	assert.Equal(t, ToggleStopped, w.Toggle(0, 0, monday, monday.Add(2*time.Hour)).Outcome)
}

func TestStopActive(t *testing.T) {
	monday := date(2026, 10, 12)
	w := newSheet(t)
	w.AddRow("A", "")

	_, ok := w.StopActive(monday)
	assert.False(t, ok)

	w.Toggle(0, 0, monday, monday.Add(time.Hour))
	c, ok := w.StopActive(monday.Add(2 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 0, Day: 0}, c)
	assert.Empty(t, w.RunningCells())
	assert.Nil(t, w.Active)
}

// TestToggle_Invariant_AtMostOneOpenTimer drives random toggle/delete
// sequences and checks that at most one cell is ever open and that the
// active pointer always matches it.
func TestToggle_Invariant_AtMostOneOpenTimer(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	monday := date(2026, 10, 12)

	for trial := 0; trial < 100; trial++ {
		w := newSheet(t)
		rows := rng.Intn(4) + 1
		for i := 0; i < rows; i++ {
			w.AddRow("Task", "")
		}
		now := monday.Add(8 * time.Hour)

		for step := 0; step < 60; step++ {
			now = now.Add(time.Duration(rng.Intn(90)) * time.Minute)
			today := monday.AddDate(0, 0, rng.Intn(7))
			switch rng.Intn(10) {
			case 0:
				w.DeleteRow(rng.Intn(len(w.Rows) + 1))
			case 1:
				w.AddRow("Task", "")
			default:
				w.Toggle(rng.Intn(len(w.Rows)+1), rng.Intn(8), today, now)
			}

			running := w.RunningCells()
			require.LessOrEqual(t, len(running), 1, "trial %d step %d", trial, step)
			if len(running) == 1 {
				require.NotNil(t, w.Active, "trial %d step %d", trial, step)
				assert.Equal(t, running[0], *w.Active)
			} else {
				assert.Nil(t, w.Active, "trial %d step %d", trial, step)
			}
		}
	}
}
