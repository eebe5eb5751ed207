package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLiteWeekSheetRepo implements WeekSheetRepo on the week_sheets table.
// Each row holds one JSON document plus the columns needed for listing.
type SQLiteWeekSheetRepo struct {
	db db.DBTX
}

// NewSQLiteWeekSheetRepo creates a repo on a database or an open transaction.
func NewSQLiteWeekSheetRepo(db db.DBTX) *SQLiteWeekSheetRepo {
	return &SQLiteWeekSheetRepo{db: db}
}

func (r *SQLiteWeekSheetRepo) Get(ctx context.Context, key domain.WeekKey) (*StoredSheet, error) {
	query := `SELECT document, version FROM week_sheets WHERE key = ?`
	var (
		document string
		version  int
	)
	err := r.db.QueryRowContext(ctx, query, key.String()).Scan(&document, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("week sheet %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading week sheet %s: %w", key, err)
	}

	sheet, err := DecodeSheet(key, []byte(document))
	if err != nil {
		return &StoredSheet{Sheet: domain.NewWeekSheet(key), Version: version, Corrupt: true}, nil
	}
	return &StoredSheet{Sheet: sheet, Version: version}, nil
}

// Create stores sheet at version 1 unless its key already exists. It reports
// whether a row was written.
func (r *SQLiteWeekSheetRepo) Create(ctx context.Context, sheet *domain.WeekSheet) (bool, error) {
	document, err := EncodeSheet(sheet)
	if err != nil {
		return false, err
	}
	now := nowUTC()
	query := `INSERT OR IGNORE INTO week_sheets (key, employee, week_start, document, version, submitted, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		sheet.Key.String(),
		sheet.Key.Employee,
		sheet.Key.WeekStartString(),
		string(document),
		boolToInt(sheet.Submitted),
		now,
		now,
	)
	if err != nil {
		return false, fmt.Errorf("inserting week sheet %s: %w", sheet.Key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting week sheet %s: %w", sheet.Key, err)
	}
	return n == 1, nil
}

// Put replaces the stored document when its version equals expectedVersion
// and returns the new version.
func (r *SQLiteWeekSheetRepo) Put(ctx context.Context, sheet *domain.WeekSheet, expectedVersion int) (int, error) {
	document, err := EncodeSheet(sheet)
	if err != nil {
		return 0, err
	}
	query := `UPDATE week_sheets SET document = ?, submitted = ?, version = version + 1, updated_at = ?
		WHERE key = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(document),
		boolToInt(sheet.Submitted),
		nowUTC(),
		sheet.Key.String(),
		expectedVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("updating week sheet %s: %w", sheet.Key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("updating week sheet %s: %w", sheet.Key, err)
	}
	if n == 0 {
		if _, getErr := r.Get(ctx, sheet.Key); errors.Is(getErr, ErrNotFound) {
			return 0, getErr
		}
		return 0, fmt.Errorf("week sheet %s at version %d: %w", sheet.Key, expectedVersion, ErrVersionConflict)
	}
	return expectedVersion + 1, nil
}

// ListByEmployee returns the employee's weeks, most recent first.
func (r *SQLiteWeekSheetRepo) ListByEmployee(ctx context.Context, employee string) ([]WeekSummary, error) {
	query := `SELECT employee, week_start, submitted, version, updated_at
		FROM week_sheets WHERE employee = ? ORDER BY week_start DESC`
	rows, err := r.db.QueryContext(ctx, query, employee)
	if err != nil {
		return nil, fmt.Errorf("listing week sheets: %w", err)
	}
	defer rows.Close()

	var weeks []WeekSummary
	for rows.Next() {
		var (
			emp, weekStart, updatedAt string
			submitted, version        int
		)
		if err := rows.Scan(&emp, &weekStart, &submitted, &version, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning week sheet: %w", err)
		}
		start, err := time.Parse(domain.DateLayout, weekStart)
		if err != nil {
			return nil, fmt.Errorf("parsing week_start %q: %w", weekStart, err)
		}
		key, err := domain.NewWeekKey(emp, start)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, WeekSummary{
			Key:       key,
			Submitted: intToBool(submitted),
			Version:   version,
			UpdatedAt: parseTime(updatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating week sheets: %w", err)
	}
	return weeks, nil
}
