package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

var (
	// ErrNotFound is returned when no sheet is stored under a key.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when a sheet changed between load and put.
	ErrVersionConflict = errors.New("week sheet was modified concurrently")
)

// StoredSheet is a sheet as loaded from the store. Corrupt is set when the
// stored document could not be decoded; Sheet is then an empty sheet for the
// key and Version still identifies the stored row so it can be overwritten.
type StoredSheet struct {
	Sheet   *domain.WeekSheet
	Version int
	Corrupt bool
}

// WeekSummary is a listing entry that does not require decoding the document.
type WeekSummary struct {
	Key       domain.WeekKey
	Submitted bool
	Version   int
	UpdatedAt time.Time
}

// WeekSheetRepo is the keyed store for week sheets. Put replaces the whole
// record and only succeeds when expectedVersion matches the stored one.
type WeekSheetRepo interface {
	Get(ctx context.Context, key domain.WeekKey) (*StoredSheet, error)
	Create(ctx context.Context, sheet *domain.WeekSheet) (bool, error)
	Put(ctx context.Context, sheet *domain.WeekSheet, expectedVersion int) (int, error)
	ListByEmployee(ctx context.Context, employee string) ([]WeekSummary, error)
}
