package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/timesheet/internal/aggregate"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/remote"
	"github.com/google/uuid"
)

type submissionService struct {
	store       *SheetStore
	exporter    Exporter
	sink        remote.Sink
	departments DepartmentLookup
	clock       Clock
	observer    UseCaseObserver
}

// NewSubmissionService wires the submit workflow. sink and departments may
// be nil: a nil sink skips the remote post, a nil lookup leaves the
// department blank.
func NewSubmissionService(
	store *SheetStore,
	exporter Exporter,
	sink remote.Sink,
	departments DepartmentLookup,
	clock Clock,
	observers ...UseCaseObserver,
) SubmissionService {
	return &submissionService{
		store:       store,
		exporter:    exporter,
		sink:        sink,
		departments: departments,
		clock:       clock,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Submit exports the week's non-empty cells, posts them to the sink and
// marks the sheet submitted. The export must succeed; the post may fail and
// is only recorded. A week with nothing to export is left untouched.
//
// The week's lock is held from the snapshot until the commit, so other writes
// to the same week may wait up to the sink's timeout. Once the export exists
// the post and the commit ignore ctx cancellation, so an exported week is
// always marked submitted.
func (s *submissionService) Submit(ctx context.Context, key domain.WeekKey) (result *SubmitResult, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	defer func() {
		if result != nil {
			fields["submitted"] = result.Submitted
			fields["record_count"] = len(result.Records)
			if result.Status != nil {
				fields["remote_ok"] = result.Status.Remote.OK
			}
		}
		observeUseCase(ctx, s.observer, "submit-week", startedAt, fields, err)
	}()

	unlock := s.store.locks.lock(key.String())
	defer unlock()

	sheet, version, err := s.store.snapshot(ctx, key)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	records := aggregate.ExportRecords(sheet, s.department(key.Employee), now)
	if len(records) == 0 {
		return &SubmitResult{Sheet: sheet}, nil
	}

	id := uuid.New().String()
	path, err := s.exporter.Export(ctx, key, records)
	if err != nil {
		return nil, fmt.Errorf("exporting submission: %w", err)
	}

	persistCtx := context.WithoutCancel(ctx)
	status := domain.SubmissionStatus{
		SubmissionID: id,
		SubmittedAt:  now,
		RecordCount:  len(records),
		ExportPath:   path,
		Remote:       s.post(persistCtx, id, records),
	}
	sheet.MarkSubmitted(status)
	if err := s.store.commit(persistCtx, sheet, version); err != nil {
		return nil, fmt.Errorf("saving submitted week: %w", err)
	}
	return &SubmitResult{Sheet: sheet, Submitted: true, Records: records, Status: &status}, nil
}

func (s *submissionService) department(employee string) string {
	if s.departments == nil {
		return ""
	}
	dept, err := s.departments.Department(employee)
	if err != nil {
		return ""
	}
	return dept
}

// post sends records to the sink and folds any failure into the result.
func (s *submissionService) post(ctx context.Context, id string, records []domain.ExportRecord) domain.RemoteResult {
	if s.sink == nil {
		return domain.RemoteResult{}
	}
	receipt, err := s.sink.Submit(ctx, remote.Submission{ID: id, Records: records})
	if err != nil {
		res := domain.RemoteResult{Attempted: true, Error: err.Error()}
		var se *remote.StatusError
		if errors.As(err, &se) {
			res.StatusCode = se.StatusCode
		}
		slog.WarnContext(ctx, "remote submission failed", "submission_id", id, "error", err)
		return res
	}
	return domain.RemoteResult{Attempted: true, OK: true, StatusCode: receipt.StatusCode}
}
