package httpapi

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/aggregate"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SheetView is the JSON form of a sheet with its derived totals at one instant.
type SheetView struct {
	Employee       string          `json:"employee"`
	WeekStart      string          `json:"week_start"`
	Submitted      bool            `json:"submitted"`
	Active         *CellView       `json:"active"`
	Rows           []RowView       `json:"rows"`
	DayTotals      []float64       `json:"day_totals"`
	WeekTotalHours float64         `json:"week_total_hours"`
	WeekTotal      string          `json:"week_total"`
	LastSubmission *SubmissionView `json:"last_submission,omitempty"`
	ComputedAt     time.Time       `json:"computed_at"`
}

type CellView struct {
	Row int `json:"row"`
	Day int `json:"day"`
}

type RowView struct {
	Index      int       `json:"index"`
	Task       string    `json:"task"`
	Subtask    string    `json:"subtask"`
	Days       []DayView `json:"days"`
	TotalHours float64   `json:"total_hours"`
	Total      string    `json:"total"`
}

type DayView struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Display  string  `json:"display"`
	Running  bool    `json:"running"`
	Sessions int     `json:"sessions"`
	Notes    string  `json:"notes"`
}

type SubmissionView struct {
	SubmissionID string    `json:"submission_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	RecordCount  int       `json:"record_count"`
	ExportPath   string    `json:"export_path"`
	Remote       struct {
		Attempted  bool   `json:"attempted"`
		OK         bool   `json:"ok"`
		StatusCode int    `json:"status_code,omitempty"`
		Error      string `json:"error,omitempty"`
	} `json:"remote"`
}

// NewSheetView renders w with live totals at now.
func NewSheetView(w *domain.WeekSheet, now time.Time) SheetView {
	sum := aggregate.Summarize(w, now)
	v := SheetView{
		Employee:       w.Key.Employee,
		WeekStart:      w.Key.WeekStartString(),
		Submitted:      w.Submitted,
		Rows:           make([]RowView, 0, len(w.Rows)),
		DayTotals:      make([]float64, domain.DaysPerWeek),
		WeekTotalHours: aggregate.RoundHours(sum.WeekTotal),
		WeekTotal:      aggregate.FormatHHMM(sum.WeekTotal),
		ComputedAt:     now,
	}
	if w.Active != nil {
		v.Active = &CellView{Row: w.Active.Row, Day: w.Active.Day}
	}
	for d, h := range sum.DayTotals {
		v.DayTotals[d] = aggregate.RoundHours(h)
	}
	for r := range w.Rows {
		row := &w.Rows[r]
		rv := RowView{
			Index:      r,
			Task:       row.Task,
			Subtask:    row.Subtask,
			Days:       make([]DayView, domain.DaysPerWeek),
			TotalHours: aggregate.RoundHours(sum.RowTotals[r]),
			Total:      aggregate.FormatHHMM(sum.RowTotals[r]),
		}
		for d := range row.Days {
			day := &row.Days[d]
			h := aggregate.DayTotalHours(day, now)
			rv.Days[d] = DayView{
				Date:     w.Key.Date(d).Format(domain.DateLayout),
				Hours:    aggregate.RoundHours(h),
				Display:  aggregate.FormatHHMM(h),
				Running:  day.Running(),
				Sessions: len(day.Sessions),
				Notes:    day.Notes,
			}
		}
		v.Rows = append(v.Rows, rv)
	}
	if s := w.LastSubmission; s != nil {
		sv := &SubmissionView{
			SubmissionID: s.SubmissionID,
			SubmittedAt:  s.SubmittedAt,
			RecordCount:  s.RecordCount,
			ExportPath:   s.ExportPath,
		}
		sv.Remote.Attempted = s.Remote.Attempted
		sv.Remote.OK = s.Remote.OK
		sv.Remote.StatusCode = s.Remote.StatusCode
		sv.Remote.Error = s.Remote.Error
		v.LastSubmission = sv
	}
	return v
}
