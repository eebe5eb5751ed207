package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/aggregate"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

// RunningMark prefixes the display of a cell whose timer is open.
const RunningMark = "●"

// NotesMark suffixes the display of a cell that carries notes.
const NotesMark = "*"

// DayLabel renders the column heading for one weekday of the week.
func DayLabel(key domain.WeekKey, day int) string {
	return key.Date(day).Format("Mon 02")
}

// WeekTitle renders "<employee> · week of <monday>".
func WeekTitle(key domain.WeekKey) string {
	return fmt.Sprintf("%s · week of %s", key.Employee, key.WeekStartString())
}

// FormatWeek renders the sheet grid with live totals at now. When cursor is
// set that cell is highlighted.
func FormatWeek(w *domain.WeekSheet, now time.Time, cursor *domain.Cell) string {
	var b strings.Builder
	b.WriteString(Header(WeekTitle(w.Key)))
	b.WriteString("\n")
	b.WriteString(StatusPill(w.Submitted))
	b.WriteString("\n\n")

	if len(w.Rows) == 0 {
		b.WriteString(Dim("No rows yet. Add one with `timesheet row add`."))
		b.WriteString("\n")
		return b.String()
	}

	sum := aggregate.Summarize(w, now)

	headers := []string{"#", "TASK", "SUBTASK"}
	for d := 0; d < domain.DaysPerWeek; d++ {
		headers = append(headers, strings.ToUpper(DayLabel(w.Key, d)))
	}
	headers = append(headers, "TOTAL")

	right := map[int]bool{0: true}
	for i := 3; i < len(headers); i++ {
		right[i] = true
	}

	rows := make([][]string, 0, len(w.Rows))
	for r := range w.Rows {
		row := &w.Rows[r]
		line := []string{strconv.Itoa(r + 1), row.Task, dash(row.Subtask)}
		for d := range row.Days {
			cell := formatCell(&row.Days[d], now)
			if cursor != nil && cursor.Row == r && cursor.Day == d {
				cell = StyleCursor.Render(cell)
			}
			line = append(line, cell)
		}
		line = append(line, Bold(aggregate.FormatHHMM(sum.RowTotals[r])))
		rows = append(rows, line)
	}

	footer := []string{"", Bold("Total"), ""}
	for _, h := range sum.DayTotals {
		footer = append(footer, aggregate.FormatHHMM(h))
	}
	footer = append(footer, Bold(aggregate.FormatHHMM(sum.WeekTotal)))

	b.WriteString(Table{Headers: headers, Rows: rows, Footer: footer, RightAlign: right}.Render())

	if w.Active != nil {
		row := w.Rows[w.Active.Row]
		b.WriteString("\n")
		b.WriteString(StyleGreen.Render(fmt.Sprintf("%s Running: %s on %s",
			RunningMark, row.Label(), DayLabel(w.Key, w.Active.Day))))
		b.WriteString("\n")
	}
	if w.LastSubmission != nil {
		b.WriteString("\n")
		b.WriteString(FormatSubmission(w.LastSubmission))
	}
	return b.String()
}

func formatCell(d *domain.DayRecord, now time.Time) string {
	hours := aggregate.DayTotalHours(d, now)
	text := aggregate.FormatHHMM(hours)
	if hours == 0 && !d.Running() {
		text = Dim(text)
	}
	if d.Notes != "" {
		text += NotesMark
	}
	if d.Running() {
		text = StyleGreen.Render(RunningMark + text)
	}
	return text
}

func dash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}

// FormatSubmission summarizes the last submission of a week.
func FormatSubmission(s *domain.SubmissionStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s · %d records\n",
		Bold("Submitted"), s.SubmittedAt.Format("2006-01-02 15:04"), s.RecordCount)
	fmt.Fprintf(&b, "  %s %s\n", Dim("ID:    "), s.SubmissionID)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Export:"), s.ExportPath)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Remote:"), RemoteLabel(s.Remote))
	return b.String()
}

// RemoteLabel describes the outcome of the remote post.
func RemoteLabel(r domain.RemoteResult) string {
	switch {
	case !r.Attempted:
		return Dim("not configured")
	case r.OK:
		return StyleGreen.Render(fmt.Sprintf("ok (%d)", r.StatusCode))
	case r.StatusCode != 0:
		return StyleRed.Render(fmt.Sprintf("rejected (%d)", r.StatusCode))
	default:
		return StyleRed.Render("failed: " + r.Error)
	}
}

// FormatWeekList renders the stored weeks of one employee, newest first.
func FormatWeekList(employee string, weeks []repository.WeekSummary) string {
	if len(weeks) == 0 {
		return Dim(fmt.Sprintf("No weeks recorded for %s.", employee)) + "\n"
	}
	rows := make([][]string, 0, len(weeks))
	for _, wk := range weeks {
		rows = append(rows, []string{
			wk.Key.WeekStartString(),
			StatusPill(wk.Submitted),
			wk.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return Header(employee) + "\n" + RenderTable([]string{"WEEK", "STATUS", "UPDATED"}, rows)
}
