package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

// SheetStore serializes the load-mutate-persist cycle per week key. All
// services sharing a database must share one SheetStore.
type SheetStore struct {
	sheets repository.WeekSheetRepo
	uow    db.UnitOfWork
	locks  *keyLocks
}

// NewSheetStore wraps repo for reads outside a transaction and uow for the
// serialized read-modify-write cycles.
func NewSheetStore(sheets repository.WeekSheetRepo, uow db.UnitOfWork) *SheetStore {
	return &SheetStore{sheets: sheets, uow: uow, locks: newKeyLocks()}
}

// load reads key through repo. A missing sheet is returned as a fresh empty
// one at version 0; a corrupt one is logged and treated as empty.
func load(ctx context.Context, repo repository.WeekSheetRepo, key domain.WeekKey) (*domain.WeekSheet, int, error) {
	stored, err := repo.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewWeekSheet(key), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	if stored.Corrupt {
		slog.WarnContext(ctx, "corrupt week sheet document treated as empty",
			"key", key.String(), "version", stored.Version)
	}
	return stored.Sheet, stored.Version, nil
}

// save writes sheet over version, inserting it when version is 0.
func save(ctx context.Context, repo repository.WeekSheetRepo, sheet *domain.WeekSheet, version int) error {
	if version == 0 {
		created, err := repo.Create(ctx, sheet)
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("week sheet %s: %w", sheet.Key, repository.ErrVersionConflict)
		}
		return nil
	}
	_, err := repo.Put(ctx, sheet, version)
	return err
}

// read returns the stored sheet or an unsaved empty one. It never writes.
func (s *SheetStore) read(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, error) {
	sheet, _, err := load(ctx, s.sheets, key)
	return sheet, err
}

// loadOrCreate returns the stored sheet, inserting an empty one when absent.
func (s *SheetStore) loadOrCreate(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, error) {
	unlock := s.locks.lock(key.String())
	defer unlock()

	var sheet *domain.WeekSheet
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWeekSheetRepo(tx)
		var (
			version int
			err     error
		)
		sheet, version, err = load(ctx, repo, key)
		if err != nil {
			return err
		}
		if version == 0 {
			return save(ctx, repo, sheet, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// mutate applies fn to the sheet stored under key and persists the result
// when fn, or reconciling the timer state at now, changed it. An absent
// sheet is created only if something changed.
func (s *SheetStore) mutate(ctx context.Context, key domain.WeekKey, now time.Time, fn func(w *domain.WeekSheet) bool) (*domain.WeekSheet, bool, error) {
	unlock := s.locks.lock(key.String())
	defer unlock()

	var (
		sheet   *domain.WeekSheet
		changed bool
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWeekSheetRepo(tx)
		w, version, err := load(ctx, repo, key)
		if err != nil {
			return err
		}
		reconciled := w.Reconcile(now)
		changed = fn(w)
		if changed || reconciled {
			if err := save(ctx, repo, w, version); err != nil {
				return err
			}
		}
		sheet = w
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return sheet, changed, nil
}

// snapshot reads key and its version inside a transaction. Callers hold the
// key lock.
func (s *SheetStore) snapshot(ctx context.Context, key domain.WeekKey) (*domain.WeekSheet, int, error) {
	var (
		sheet   *domain.WeekSheet
		version int
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		sheet, version, err = load(ctx, repository.NewSQLiteWeekSheetRepo(tx), key)
		return err
	})
	return sheet, version, err
}

// commit writes sheet over version inside a transaction. Callers hold the
// key lock.
func (s *SheetStore) commit(ctx context.Context, sheet *domain.WeekSheet, version int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return save(ctx, repository.NewSQLiteWeekSheetRepo(tx), sheet, version)
	})
}

// insertIfAbsent stores sheet unless its key exists and reports whether it did.
func (s *SheetStore) insertIfAbsent(ctx context.Context, sheet *domain.WeekSheet) (bool, error) {
	unlock := s.locks.lock(sheet.Key.String())
	defer unlock()

	var created bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		created, err = repository.NewSQLiteWeekSheetRepo(tx).Create(ctx, sheet)
		return err
	})
	return created, err
}
