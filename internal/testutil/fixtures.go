package testutil

import (
	"sync"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// TestMonday is the Monday most fixtures are anchored to.
var TestMonday = time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)

// SheetOption customizes a sheet built by NewTestSheet.
type SheetOption func(*domain.WeekSheet)

// WithRow appends a task row.
func WithRow(task, subtask string) SheetOption {
	return func(w *domain.WeekSheet) {
		w.Rows = append(w.Rows, domain.NewTaskRow(task, subtask))
	}
}

// WithSession records a closed session of d starting at start on an existing row.
func WithSession(row, day int, start time.Time, d time.Duration) SheetOption {
	return func(w *domain.WeekSheet) {
		rec := &w.Rows[row].Days[day]
		rec.Sessions = append(rec.Sessions, domain.NewSession(start, start.Add(d)))
	}
}

// WithRunning marks a cell as running since start and makes it the active cell.
func WithRunning(row, day int, start time.Time) SheetOption {
	return func(w *domain.WeekSheet) {
		s := start
		w.Rows[row].Days[day].RunningStart = &s
		w.Active = &domain.Cell{Row: row, Day: day}
	}
}

func WithNotes(row, day int, text string) SheetOption {
	return func(w *domain.WeekSheet) {
		w.Rows[row].Days[day].Notes = text
	}
}

func WithSubmitted() SheetOption {
	return func(w *domain.WeekSheet) {
		w.Submitted = true
	}
}

// NewTestSheet builds a sheet for employee in the week of date.
func NewTestSheet(employee string, date time.Time, opts ...SheetOption) *domain.WeekSheet {
	key, err := domain.NewWeekKey(employee, date)
	if err != nil {
		panic(err)
	}
	w := domain.NewWeekSheet(key)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FakeClock is a settable time source safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
