package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. The zero value means "not set".
type dateValue struct {
	t time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	d.t = t
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

func (d *dateValue) Time() time.Time {
	return d.t
}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// parseRow converts a 1-based row number into an index.
func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("row must be a positive number, got %q", s)
	}
	return n - 1, nil
}

// parseDay accepts 1-7 (Monday first) or a weekday name or prefix of at
// least three letters.
func parseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > domain.DaysPerWeek {
			return 0, fmt.Errorf("day must be 1-7, got %d", n)
		}
		return n - 1, nil
	}
	if len(s) >= 3 {
		for i, name := range weekdayNames {
			if strings.HasPrefix(name, s) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q (use 1-7 or mon..sun)", s)
}

// parseCell parses the <row> <day> argument pair.
func parseCell(args []string) (int, int, error) {
	row, err := parseRow(args[0])
	if err != nil {
		return 0, 0, err
	}
	day, err := parseDay(args[1])
	if err != nil {
		return 0, 0, err
	}
	return row, day, nil
}
