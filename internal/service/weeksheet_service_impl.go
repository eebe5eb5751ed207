package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type weekSheetService struct {
	store    *SheetStore
	clock    Clock
	observer UseCaseObserver
}

func NewWeekSheetService(store *SheetStore, clock Clock, observers ...UseCaseObserver) WeekSheetService {
	return &weekSheetService{store: store, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *weekSheetService) LoadOrCreate(ctx context.Context, employee string, date time.Time) (sheet *domain.WeekSheet, err error) {
	startedAt := time.Now()
	fields := map[string]any{"employee": employee, "date": date.Format(domain.DateLayout)}
	defer func() { observeUseCase(ctx, s.observer, "load-or-create", startedAt, fields, err) }()

	key, err := domain.NewWeekKey(employee, date)
	if err != nil {
		return nil, err
	}
	fields["week_start"] = key.WeekStartString()
	return s.store.loadOrCreate(ctx, key)
}

func (s *weekSheetService) Get(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, error) {
	return s.store.read(ctx, key)
}

func (s *weekSheetService) ListWeeks(ctx context.Context, employee string) ([]repository.WeekSummary, error) {
	return s.store.sheets.ListByEmployee(ctx, employee)
}

func (s *weekSheetService) AddRow(ctx context.Context, key domain.WeekKey, task, subtask string) (sheet *domain.WeekSheet, changed bool, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	fields["task"] = task
	defer func() {
		fields["changed"] = changed
		observeUseCase(ctx, s.observer, "add-row", startedAt, fields, err)
	}()

	return s.store.mutate(ctx, key, s.clock.now(), func(w *domain.WeekSheet) bool {
		return w.AddRow(task, subtask)
	})
}

func (s *weekSheetService) DeleteRow(ctx context.Context, key domain.WeekKey, row int) (sheet *domain.WeekSheet, changed bool, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	fields["row"] = row
	defer func() {
		fields["changed"] = changed
		observeUseCase(ctx, s.observer, "delete-row", startedAt, fields, err)
	}()

	return s.store.mutate(ctx, key, s.clock.now(), func(w *domain.WeekSheet) bool {
		return w.DeleteRow(row)
	})
}

func (s *weekSheetService) SetNotes(ctx context.Context, key domain.WeekKey, row, day int, text string) (sheet *domain.WeekSheet, changed bool, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	fields["row"] = row
	fields["day"] = day
	defer func() {
		fields["changed"] = changed
		observeUseCase(ctx, s.observer, "set-notes", startedAt, fields, err)
	}()

	return s.store.mutate(ctx, key, s.clock.now(), func(w *domain.WeekSheet) bool {
		return w.SetNotes(row, day, text)
	})
}
