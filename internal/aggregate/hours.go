// Package aggregate derives hour totals from week sheets. Every function is
// pure and recomputes live time from the supplied now on each call.
package aggregate

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ElapsedHours returns the length of a closed session in hours.
func ElapsedHours(s domain.Session) float64 {
	return s.Duration().Hours()
}

// LiveElapsedHours returns the hours of the open interval, or 0 when the day
// is not running. A start after now counts as zero.
func LiveElapsedHours(d *domain.DayRecord, now time.Time) float64 {
	if d.RunningStart == nil || now.Before(*d.RunningStart) {
		return 0
	}
	return now.Sub(*d.RunningStart).Hours()
}

// DayTotalHours sums closed sessions plus time still in flight.
func DayTotalHours(d *domain.DayRecord, now time.Time) float64 {
	var total float64
	for _, s := range d.Sessions {
		total += ElapsedHours(s)
	}
	return total + LiveElapsedHours(d, now)
}

// RowTotalHours sums the seven days of a row.
func RowTotalHours(r *domain.TaskRow, now time.Time) float64 {
	var total float64
	for i := range r.Days {
		total += DayTotalHours(&r.Days[i], now)
	}
	return total
}

// WeekTotalHours sums every row of the sheet.
func WeekTotalHours(w *domain.WeekSheet, now time.Time) float64 {
	var total float64
	for i := range w.Rows {
		total += RowTotalHours(&w.Rows[i], now)
	}
	return total
}

// DayColumnTotals returns the per-weekday totals across all rows.
func DayColumnTotals(w *domain.WeekSheet, now time.Time) [domain.DaysPerWeek]float64 {
	var totals [domain.DaysPerWeek]float64
	for r := range w.Rows {
		for d := range w.Rows[r].Days {
			totals[d] += DayTotalHours(&w.Rows[r].Days[d], now)
		}
	}
	return totals
}
