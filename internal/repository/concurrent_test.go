package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func TestConcurrentCreate_SingleWinner(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteWeekSheetRepo(database)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Create(ctx, testutil.NewTestSheet("Ritu Das", testutil.TestMonday))
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	weeks, err := repo.ListByEmployee(ctx, "Ritu Das")
	require.NoError(t, err)
	assert.Len(t, weeks, 1)
}

func TestConcurrentPut_OnlyOneWriterPerVersion(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteWeekSheetRepo(database)
	ctx := context.Background()

	_, err := repo.Create(ctx, testutil.NewTestSheet("Ritu Das", testutil.TestMonday))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sheet := testutil.NewTestSheet("Ritu Das", testutil.TestMonday, testutil.WithRow("Task", ""))
			_, err := repo.Put(ctx, sheet, 1)
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, ErrVersionConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(5), conflicts.Load())
	stored, err := repo.Get(ctx, testutil.NewTestSheet("Ritu Das", testutil.TestMonday).Key)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
}
