package domain

import "time"

// ToggleOutcome describes what a toggle request did.
type ToggleOutcome int

const (
	// ToggleIgnored means the request was accepted but changed nothing.
	ToggleIgnored ToggleOutcome = iota
	ToggleStarted
	ToggleStopped
)

func (o ToggleOutcome) String() string {
	switch o {
	case ToggleStarted:
		return "started"
	case ToggleStopped:
		return "stopped"
	default:
		return "ignored"
	}
}

// Transition is the result of one timer state machine step.
type Transition struct {
	Outcome ToggleOutcome
	// Stopped lists every cell closed by this step, including auto-stops.
	Stopped []Cell
	Started *Cell
}

// Changed reports whether the step mutated the sheet.
func (t Transition) Changed() bool {
	return t.Outcome != ToggleIgnored
}

// Toggle starts or stops the timer on (row, day).
//
// A running cell is always stopped. A start is only allowed on an open sheet
// when today is the cell's calendar date; any other open timer is closed
// first so at most one interval is open. Out-of-range cells and disallowed
// starts leave the sheet unchanged.
func (w *WeekSheet) Toggle(row, day int, today, now time.Time) Transition {
	target, ok := w.Day(row, day)
	if !ok {
		return Transition{Outcome: ToggleIgnored}
	}
	cell := Cell{Row: row, Day: day}

	if target.Running() {
		target.stop(now)
		if w.Active != nil && *w.Active == cell {
			w.Active = nil
		}
		return Transition{Outcome: ToggleStopped, Stopped: []Cell{cell}}
	}

	if w.Submitted {
		return Transition{Outcome: ToggleIgnored}
	}
	if idx, inWeek := w.Key.DayIndexOf(today); !inWeek || idx != day {
		return Transition{Outcome: ToggleIgnored}
	}

	var stopped []Cell
	for _, c := range w.RunningCells() {
		w.Rows[c.Row].Days[c.Day].stop(now)
		stopped = append(stopped, c)
	}
	target.start(now)
	w.Active = &Cell{Row: row, Day: day}
	return Transition{Outcome: ToggleStarted, Stopped: stopped, Started: &cell}
}

// StopActive closes whichever timer is open on the sheet.
func (w *WeekSheet) StopActive(now time.Time) (Cell, bool) {
	w.Reconcile(now)
	if w.Active == nil {
		return Cell{}, false
	}
	c := *w.Active
	w.Rows[c.Row].Days[c.Day].stop(now)
	w.Active = nil
	return c, true
}
