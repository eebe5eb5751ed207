package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, employee string, date time.Time) domain.WeekKey {
	t.Helper()
	key, err := domain.NewWeekKey(employee, date)
	require.NoError(t, err)
	return key
}

func TestRootCmd_ShowsCurrentWeek(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app)
	require.NoError(t, err)
	assert.Contains(t, out, "RITU DAS · WEEK OF 2026-10-12")
	assert.Contains(t, out, "No rows yet")
}

func TestWeekShow_RequiresEmployee(t *testing.T) {
	f := testApp(t)
	f.app.DefaultEmployee = ""

	_, err := executeCmd(t, f.app, "week", "show")
	assert.ErrorIs(t, err, errNoEmployee)
}

func TestWeekShow_WeekFlagSelectsMonday(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "week", "show", "--week", "2026-10-08", "-e", "Aarav Mehta")
	require.NoError(t, err)
	assert.Contains(t, out, "AARAV MEHTA · WEEK OF 2026-10-05")
}

func TestWeekShow_BadWeekFlag(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "week", "show", "--week", "next monday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestWeekList(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "week", "show")
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "week", "show", "--week", "2026-10-05")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "week", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-10-12")
	assert.Contains(t, out, "2026-10-05")
	assert.Contains(t, out, "Open")
}

func TestRowAdd_WithFlags(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign", "--subtask", "Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Added row 1: Campaign / Design")

	out, err = executeCmd(t, f.app, "week", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign")
	assert.Contains(t, out, "Design")
}

func TestRowAdd_NeedsTaskWhenNotInteractive(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "row", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--task is required")
}

func TestRowAdd_BlankTaskIsNoop(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "row", "add", "--task", "   ")
	require.NoError(t, err)
	assert.Contains(t, out, "No row added")
}

func TestRowRemove(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "row", "rm", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "No row 5 in this week.")

	out, err = executeCmd(t, f.app, "row", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed row 1: Campaign")

	_, err = executeCmd(t, f.app, "row", "rm", "zero")
	assert.Error(t, err)
}

func TestTimer_ToggleAndStop(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign", "--subtask", "Design")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "timer", "toggle", "1", "mon")
	require.NoError(t, err)
	assert.Contains(t, out, "Started Campaign / Design on Mon 12")

	f.clock.Advance(30 * time.Minute)

	out, err = executeCmd(t, f.app, "timer", "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped Campaign / Design on Mon 12 (00:30 logged that day)")

	out, err = executeCmd(t, f.app, "timer", "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "No timer running.")
}

func TestTimer_ToggleOtherDayIsRefused(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "timer", "toggle", "1", "tuesday")
	require.NoError(t, err)
	assert.Contains(t, out, "Timer unchanged")
}

func TestTimer_StartingAnotherRowStopsTheFirst(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign")
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "row", "add", "--task", "Reporting")
	require.NoError(t, err)

	_, err = executeCmd(t, f.app, "timer", "toggle", "1", "1")
	require.NoError(t, err)
	f.clock.Advance(time.Hour)

	out, err := executeCmd(t, f.app, "timer", "toggle", "2", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped Campaign on Mon 12 (01:00 logged that day)")
	assert.Contains(t, out, "Started Reporting on Mon 12")

	sheet, err := f.app.Sheets.Get(context.Background(), mustKey(t, "Ritu Das", testutil.TestMonday))
	require.NoError(t, err)
	require.NotNil(t, sheet.Active)
	assert.Equal(t, domain.Cell{Row: 1, Day: 0}, *sheet.Active)
}

func TestTimer_BadDay(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "timer", "toggle", "1", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day must be 1-7")
}

func TestNotesSet(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "notes", "set", "1", "wed", "client", "call")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes saved for Campaign on Wed 14")

	out, err = executeCmd(t, f.app, "notes", "set", "1", "wed", "client", "call")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes unchanged.")

	sheet, err := f.app.Sheets.Get(context.Background(), mustKey(t, "Ritu Das", testutil.TestMonday))
	require.NoError(t, err)
	assert.Equal(t, "client call", sheet.Rows[0].Days[2].Notes)
}

func TestSubmit_EmptyWeek(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to submit")
}

func TestSubmit_WritesExportAndFreezes(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "row", "add", "--task", "Campaign")
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "timer", "toggle", "1", "mon")
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	_, err = executeCmd(t, f.app, "timer", "stop")
	require.NoError(t, err)

	out, err := executeCmd(t, f.app, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted")
	assert.Contains(t, out, "1 records")
	assert.Contains(t, out, "not configured")

	_, err = os.Stat(filepath.Join(f.exportDir, "Submission_Ritu_Das_2026-10-12.xlsx"))
	assert.NoError(t, err)

	out, err = executeCmd(t, f.app, "timer", "toggle", "1", "mon")
	require.NoError(t, err)
	assert.Contains(t, out, "Timer unchanged")

	out, err = executeCmd(t, f.app, "week", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted")
	assert.Contains(t, out, "02:00")
}

func TestCatalogList(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ritu Das")
	assert.Contains(t, out, "Marketing")

	out, err = executeCmd(t, f.app, "catalog", "list", "--department", "Marketing")
	require.NoError(t, err)
	assert.Contains(t, out, "MARKETING")
	assert.Contains(t, out, "SUBTASKS")

	out, err = executeCmd(t, f.app, "catalog", "list", "--department", "Nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "No task groups for Nowhere.")
}

func TestImport(t *testing.T) {
	f := testApp(t)
	path := filepath.Join(t.TempDir(), "timesheet_data.json")
	data := `{
		"Ritu Das::2026-10-12": {"submitted": false,
			"rows": [{"task": "Campaign", "subtask": "", "days": []}]},
		"broken": {"rows": []}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out, err := executeCmd(t, f.app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 weeks (0 already present, 1 skipped)")
	assert.Contains(t, out, "skipped broken")

	out, err = executeCmd(t, f.app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 weeks (1 already present, 1 skipped)")

	out, err = executeCmd(t, f.app, "week", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign")
}

func TestWatch_RequiresTerminal(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
