package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekSheetRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	mon := testutil.TestMonday
	start := mon.Add(9 * time.Hour)
	sheet := testutil.NewTestSheet("Ritu Das", mon,
		testutil.WithRow("Development", "Backend"),
		testutil.WithSession(0, 0, start, 90*time.Minute),
		testutil.WithNotes(0, 0, "API"),
	)

	created, err := repo.Create(ctx, sheet)
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := repo.Get(ctx, sheet.Key)
	require.NoError(t, err)
	assert.False(t, stored.Corrupt)
	assert.Equal(t, 1, stored.Version)
	require.Len(t, stored.Sheet.Rows, 1)
	row := stored.Sheet.Rows[0]
	assert.Equal(t, "Development", row.Task)
	assert.Equal(t, "Backend", row.Subtask)
	require.Len(t, row.Days[0].Sessions, 1)
	assert.True(t, start.Equal(row.Days[0].Sessions[0].Start))
	assert.Equal(t, 90*time.Minute, row.Days[0].Sessions[0].Duration())
	assert.Equal(t, "API", row.Days[0].Notes)
}

func TestWeekSheetRepo_CreateIsInsertIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	first := testutil.NewTestSheet("Ritu Das", testutil.TestMonday, testutil.WithRow("A", ""))
	created, err := repo.Create(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	second := testutil.NewTestSheet("Ritu Das", testutil.TestMonday.AddDate(0, 0, 3))
	created, err = repo.Create(ctx, second)
	require.NoError(t, err)
	assert.False(t, created, "same week key must not be inserted twice")

	stored, err := repo.Get(ctx, first.Key)
	require.NoError(t, err)
	assert.Len(t, stored.Sheet.Rows, 1)
}

func TestWeekSheetRepo_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)

	key, err := domain.NewWeekKey("Nobody", testutil.TestMonday)
	require.NoError(t, err)
	_, err = repo.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeekSheetRepo_PutBumpsVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	sheet := testutil.NewTestSheet("Ritu Das", testutil.TestMonday)
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)

	sheet.AddRow("Testing", "Manual")
	sheet.Submitted = true
	v, err := repo.Put(ctx, sheet, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	stored, err := repo.Get(ctx, sheet.Key)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
	assert.True(t, stored.Sheet.Submitted)
	assert.Len(t, stored.Sheet.Rows, 1)
}

func TestWeekSheetRepo_PutStaleVersionConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	sheet := testutil.NewTestSheet("Ritu Das", testutil.TestMonday)
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)
	_, err = repo.Put(ctx, sheet, 1)
	require.NoError(t, err)

	_, err = repo.Put(ctx, sheet, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestWeekSheetRepo_PutMissingKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)

	sheet := testutil.NewTestSheet("Ghost", testutil.TestMonday)
	_, err := repo.Put(context.Background(), sheet, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeekSheetRepo_CorruptDocumentLoadsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	sheet := testutil.NewTestSheet("Ritu Das", testutil.TestMonday, testutil.WithRow("A", ""))
	_, err := repo.Create(ctx, sheet)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `UPDATE week_sheets SET document = '{not json' WHERE key = ?`, sheet.Key.String())
	require.NoError(t, err)

	stored, err := repo.Get(ctx, sheet.Key)
	require.NoError(t, err)
	assert.True(t, stored.Corrupt)
	assert.Empty(t, stored.Sheet.Rows)
	assert.Equal(t, sheet.Key, stored.Sheet.Key)

	// The corrupt row can still be overwritten through its version.
	_, err = repo.Put(ctx, stored.Sheet, stored.Version)
	require.NoError(t, err)
	stored, err = repo.Get(ctx, sheet.Key)
	require.NoError(t, err)
	assert.False(t, stored.Corrupt)
}

func TestWeekSheetRepo_ListByEmployee(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekSheetRepo(db)
	ctx := context.Background()

	for _, offset := range []int{0, 7, -7} {
		_, err := repo.Create(ctx, testutil.NewTestSheet("Ritu Das", testutil.TestMonday.AddDate(0, 0, offset)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, testutil.NewTestSheet("Aarav Mehta", testutil.TestMonday))
	require.NoError(t, err)

	submitted := testutil.NewTestSheet("Ritu Das", testutil.TestMonday, testutil.WithSubmitted())
	_, err = repo.Put(ctx, submitted, 1)
	require.NoError(t, err)

	weeks, err := repo.ListByEmployee(ctx, "Ritu Das")
	require.NoError(t, err)
	require.Len(t, weeks, 3)
	assert.Equal(t, "2026-10-19", weeks[0].Key.WeekStartString())
	assert.Equal(t, "2026-10-12", weeks[1].Key.WeekStartString())
	assert.Equal(t, "2026-10-05", weeks[2].Key.WeekStartString())
	assert.True(t, weeks[1].Submitted)
	assert.Equal(t, 2, weeks[1].Version)
	assert.False(t, weeks[0].Submitted)
	assert.Equal(t, "Ritu Das", weeks[0].Key.Employee)
}
