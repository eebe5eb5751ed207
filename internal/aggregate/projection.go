package aggregate

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ExportRecords flattens a sheet into one record per (row, day) cell that has
// logged time or notes. Hours are rounded to two decimals.
func ExportRecords(w *domain.WeekSheet, department string, now time.Time) []domain.ExportRecord {
	var out []domain.ExportRecord
	for r := range w.Rows {
		row := &w.Rows[r]
		for d := range row.Days {
			day := &row.Days[d]
			hours := DayTotalHours(day, now)
			if hours <= 0 && day.Notes == "" {
				continue
			}
			out = append(out, domain.ExportRecord{
				Employee:   w.Key.Employee,
				Department: department,
				WeekStart:  w.Key.WeekStartString(),
				Date:       w.Key.Date(d).Format(domain.DateLayout),
				Task:       row.Task,
				Subtask:    row.Subtask,
				Hours:      RoundHours(hours),
				Notes:      day.Notes,
			})
		}
	}
	return out
}
