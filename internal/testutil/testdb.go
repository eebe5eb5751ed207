package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/timesheet/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when
// the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountSheets returns how many weeks are stored for employee, read straight
// from the table so callers can check persistence without a repository.
func CountSheets(t *testing.T, database *sql.DB, employee string) int {
	t.Helper()
	var n int
	err := database.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM week_sheets WHERE employee = ?`, employee).Scan(&n)
	if err != nil {
		t.Fatalf("counting sheets: %v", err)
	}
	return n
}
