package domain

import (
	"strings"
	"time"
)

// Cell addresses one day record inside a sheet.
type Cell struct {
	Row int
	Day int
}

// WeekSheet is the editable record for one WeekKey. Active points at the
// cell whose timer is open and is kept in step with the RunningStart fields.
type WeekSheet struct {
	Key            WeekKey
	Rows           []TaskRow
	Submitted      bool
	Active         *Cell
	LastSubmission *SubmissionStatus
}

// NewWeekSheet returns an open, empty sheet for key.
func NewWeekSheet(key WeekKey) *WeekSheet {
	return &WeekSheet{Key: key, Rows: []TaskRow{}}
}

// Clone returns a deep copy of the sheet.
func (w *WeekSheet) Clone() *WeekSheet {
	out := &WeekSheet{
		Key:       w.Key,
		Rows:      make([]TaskRow, len(w.Rows)),
		Submitted: w.Submitted,
	}
	for i, r := range w.Rows {
		out.Rows[i] = r.clone()
	}
	if w.Active != nil {
		c := *w.Active
		out.Active = &c
	}
	if w.LastSubmission != nil {
		s := *w.LastSubmission
		out.LastSubmission = &s
	}
	return out
}

// Day returns the day record at (row, day), or false when out of range.
func (w *WeekSheet) Day(row, day int) (*DayRecord, bool) {
	if row < 0 || row >= len(w.Rows) || day < 0 || day >= DaysPerWeek {
		return nil, false
	}
	return &w.Rows[row].Days[day], true
}

// AddRow appends a row for task/subtask. An empty task is ignored.
func (w *WeekSheet) AddRow(task, subtask string) bool {
	task = strings.TrimSpace(task)
	if task == "" {
		return false
	}
	w.Rows = append(w.Rows, NewTaskRow(task, strings.TrimSpace(subtask)))
	return true
}

// DeleteRow removes a row. The active pointer is cleared when it referenced
// the removed row and shifted when it referenced a later one.
func (w *WeekSheet) DeleteRow(row int) bool {
	if row < 0 || row >= len(w.Rows) {
		return false
	}
	w.Rows = append(w.Rows[:row], w.Rows[row+1:]...)
	if w.Active != nil {
		switch {
		case w.Active.Row == row:
			w.Active = nil
		case w.Active.Row > row:
			w.Active.Row--
		}
	}
	return true
}

// SetNotes overwrites the notes of one day, leaving its sessions untouched.
func (w *WeekSheet) SetNotes(row, day int, text string) bool {
	d, ok := w.Day(row, day)
	if !ok || d.Notes == text {
		return false
	}
	d.Notes = text
	return true
}

// RunningCells lists every cell with an open interval, in row/day order.
func (w *WeekSheet) RunningCells() []Cell {
	var cells []Cell
	for r := range w.Rows {
		for d := range w.Rows[r].Days {
			if w.Rows[r].Days[d].Running() {
				cells = append(cells, Cell{Row: r, Day: d})
			}
		}
	}
	return cells
}

// Reconcile makes Active agree with the persisted RunningStart fields, which
// are authoritative. If several cells are open, the most recently started
// one stays open and the others are closed at now. It reports whether the
// sheet changed.
func (w *WeekSheet) Reconcile(now time.Time) bool {
	running := w.RunningCells()
	if len(running) == 0 {
		if w.Active == nil {
			return false
		}
		w.Active = nil
		return true
	}

	keep := running[0]
	for _, c := range running[1:] {
		if w.Rows[c.Row].Days[c.Day].RunningStart.After(*w.Rows[keep.Row].Days[keep.Day].RunningStart) {
			keep = c
		}
	}

	changed := false
	for _, c := range running {
		if c != keep {
			w.Rows[c.Row].Days[c.Day].stop(now)
			changed = true
		}
	}
	if w.Active == nil || *w.Active != keep {
		w.Active = &Cell{Row: keep.Row, Day: keep.Day}
		changed = true
	}
	return changed
}

// MarkSubmitted moves the sheet to the Submitted state. There is no way back.
func (w *WeekSheet) MarkSubmitted(status SubmissionStatus) {
	w.Submitted = true
	w.LastSubmission = &status
}
