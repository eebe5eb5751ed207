package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list re-runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per WeekKey. document holds the whole sheet as JSON and is
	// replaced wholesale; version guards against lost updates.
	`CREATE TABLE IF NOT EXISTS week_sheets (
		key         TEXT PRIMARY KEY,
		employee    TEXT NOT NULL,
		week_start  TEXT NOT NULL,
		document    TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1 CHECK(version > 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_week_sheets_employee ON week_sheets(employee, week_start)`,

	// Denormalized lock flag for listing weeks without decoding documents.
	`ALTER TABLE week_sheets ADD COLUMN submitted INTEGER NOT NULL DEFAULT 0`,
}
