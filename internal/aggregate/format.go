package aggregate

import (
	"fmt"
	"math"
)

// FormatHHMM renders hours as zero-padded HH:MM, rounding to the nearest
// minute. HH has no upper bound.
func FormatHHMM(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	total := int64(math.Round(hours * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// RoundHours rounds hours to two decimal places for export.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
