package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

// WeekSheetService loads sheets and edits their rows and notes. Every
// mutation reports whether the sheet changed; validation failures are
// reported as unchanged, never as errors.
type WeekSheetService interface {
	LoadOrCreate(ctx context.Context, employee string, date time.Time) (*domain.WeekSheet, error)
	Get(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, error)
	ListWeeks(ctx context.Context, employee string) ([]repository.WeekSummary, error)
	AddRow(ctx context.Context, key domain.WeekKey, task, subtask string) (*domain.WeekSheet, bool, error)
	DeleteRow(ctx context.Context, key domain.WeekKey, row int) (*domain.WeekSheet, bool, error)
	SetNotes(ctx context.Context, key domain.WeekKey, row, day int, text string) (*domain.WeekSheet, bool, error)
}

// TimerService drives the single running timer of a sheet.
type TimerService interface {
	Toggle(ctx context.Context, key domain.WeekKey, row, day int) (*domain.WeekSheet, domain.Transition, error)
	StopActive(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, *domain.Cell, error)
}

// SubmissionService freezes a week and hands its records to the exporter
// and the remote sink.
type SubmissionService interface {
	Submit(ctx context.Context, key domain.WeekKey) (*SubmitResult, error)
}

// ImportService loads sheets from the flat JSON file of earlier versions.
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}

// Exporter writes one submission artifact and returns where it went.
type Exporter interface {
	Export(ctx context.Context, key domain.WeekKey, records []domain.ExportRecord) (string, error)
}

// DepartmentLookup resolves the department recorded on export rows.
type DepartmentLookup interface {
	Department(employee string) (string, error)
}

// SubmitResult is returned by Submit. Submitted is false when the week had
// nothing to export and was left untouched.
type SubmitResult struct {
	Sheet     *domain.WeekSheet
	Submitted bool
	Records   []domain.ExportRecord
	Status    *domain.SubmissionStatus
}

// ImportResult counts what an import did. Skipped maps unreadable entries
// to the reason they were dropped.
type ImportResult struct {
	Imported int
	Existing int
	Skipped  map[string]error
}
