package domain

import "time"

// DayRecord holds one calendar day of a task row: closed sessions, at most
// one open interval and free-text notes.
type DayRecord struct {
	Sessions     []Session
	RunningStart *time.Time
	Notes        string
}

// Running reports whether the day has an open interval.
func (d *DayRecord) Running() bool {
	return d.RunningStart != nil
}

// IsEmpty reports whether the day has no sessions, no open interval and no notes.
func (d *DayRecord) IsEmpty() bool {
	return len(d.Sessions) == 0 && d.RunningStart == nil && d.Notes == ""
}

func (d *DayRecord) start(now time.Time) {
	t := now
	d.RunningStart = &t
}

// stop materializes the open interval as a session. It reports false when
// nothing was running.
func (d *DayRecord) stop(now time.Time) bool {
	if d.RunningStart == nil {
		return false
	}
	d.Sessions = append(d.Sessions, NewSession(*d.RunningStart, now))
	d.RunningStart = nil
	return true
}

func (d DayRecord) clone() DayRecord {
	out := DayRecord{Notes: d.Notes}
	if len(d.Sessions) > 0 {
		out.Sessions = append([]Session(nil), d.Sessions...)
	}
	if d.RunningStart != nil {
		t := *d.RunningStart
		out.RunningStart = &t
	}
	return out
}
