package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/timesheet/internal/db"
)

// FailingSheetWriteUoW runs transactions against DB but fails the FailOn-th
// write to the week_sheets table with Err. Writes are counted from 1 across
// every transaction the UoW opens, so FailOn 2 lets the first sheet write
// through and rejects the next one. Reads and writes to other tables pass
// through uncounted.
type FailingSheetWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// SheetWrites reports how many week_sheets writes were attempted, including
// the rejected one.
func (u *FailingSheetWriteUoW) SheetWrites() int {
	return int(u.writes.Load())
}

func (u *FailingSheetWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &sheetWriteGate{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type sheetWriteGate struct {
	db.DBTX
	uow *FailingSheetWriteUoW
}

func (g *sheetWriteGate) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, "week_sheets") && g.uow.writes.Add(1) == g.uow.FailOn {
		return nil, g.uow.Err
	}
	return g.DBTX.ExecContext(ctx, query, args...)
}
