package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

type timerService struct {
	store    *SheetStore
	clock    Clock
	observer UseCaseObserver
}

func NewTimerService(store *SheetStore, clock Clock, observers ...UseCaseObserver) TimerService {
	return &timerService{store: store, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *timerService) Toggle(ctx context.Context, key domain.WeekKey, row, day int) (sheet *domain.WeekSheet, tr domain.Transition, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	fields["row"] = row
	fields["day"] = day
	defer func() {
		fields["outcome"] = tr.Outcome.String()
		fields["auto_stopped"] = autoStopped(tr)
		observeUseCase(ctx, s.observer, "toggle-timer", startedAt, fields, err)
	}()

	now := s.clock.now()
	today := s.clock.today(now)
	var result domain.Transition
	sheet, _, err = s.store.mutate(ctx, key, now, func(w *domain.WeekSheet) bool {
		result = w.Toggle(row, day, today, now)
		return result.Changed()
	})
	if err != nil {
		return nil, domain.Transition{}, err
	}
	return sheet, result, nil
}

func (s *timerService) StopActive(ctx context.Context, key domain.WeekKey) (sheet *domain.WeekSheet, stopped *domain.Cell, err error) {
	startedAt := time.Now()
	fields := keyFields(key)
	defer func() {
		fields["stopped"] = stopped != nil
		observeUseCase(ctx, s.observer, "stop-timer", startedAt, fields, err)
	}()

	now := s.clock.now()
	var cell *domain.Cell
	sheet, _, err = s.store.mutate(ctx, key, now, func(w *domain.WeekSheet) bool {
		c, ok := w.StopActive(now)
		if ok {
			cell = &c
		}
		return ok
	})
	if err != nil {
		return nil, nil, err
	}
	return sheet, cell, nil
}

// autoStopped counts the cells a start closed besides the toggled one.
func autoStopped(tr domain.Transition) int {
	if tr.Outcome != domain.ToggleStarted {
		return 0
	}
	return len(tr.Stopped)
}
