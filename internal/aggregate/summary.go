package aggregate

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Summary holds every derived total of a sheet at one instant.
type Summary struct {
	RowTotals []float64
	DayTotals [domain.DaysPerWeek]float64
	WeekTotal float64
}

// Summarize computes row, day-column and week totals in one pass.
func Summarize(w *domain.WeekSheet, now time.Time) Summary {
	s := Summary{RowTotals: make([]float64, len(w.Rows))}
	for r := range w.Rows {
		for d := range w.Rows[r].Days {
			h := DayTotalHours(&w.Rows[r].Days[d], now)
			s.RowTotals[r] += h
			s.DayTotals[d] += h
			s.WeekTotal += h
		}
	}
	return s
}
