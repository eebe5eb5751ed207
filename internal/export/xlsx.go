// Package export writes submission records to spreadsheet files.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds the submission records.
const SheetName = "Submission"

// Columns is the header row, in the order record fields are written.
var Columns = []string{"Employee", "Department", "Week Start", "Day", "Task", "Subtask", "Hours", "Notes"}

// XLSXExporter writes one workbook per submission into Dir.
type XLSXExporter struct {
	Dir string
}

func NewXLSXExporter(dir string) *XLSXExporter {
	return &XLSXExporter{Dir: dir}
}

// FileName returns Submission_<employee>_<monday>.xlsx with spaces and path
// separators in the employee name replaced by underscores.
func FileName(key domain.WeekKey) string {
	name := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(key.Employee)
	return fmt.Sprintf("Submission_%s_%s.xlsx", name, key.WeekStartString())
}

// Export writes records to Dir and returns the file path. An existing file
// for the same week is replaced atomically.
func (e *XLSXExporter) Export(ctx context.Context, key domain.WeekKey, records []domain.ExportRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("naming worksheet: %w", err)
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := []any{r.Employee, r.Department, r.WeekStart, r.Date, r.Task, r.Subtask, r.Hours, r.Notes}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return "", fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	path := filepath.Join(e.Dir, FileName(key))
	tmp, err := os.CreateTemp(e.Dir, ".submission-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing workbook: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("renaming workbook: %w", err)
	}
	return path, nil
}
