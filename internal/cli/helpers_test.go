package cli

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/catalog"
	"github.com/alexanderramin/timesheet/internal/export"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

type cliFixture struct {
	app       *App
	clock     *testutil.FakeClock
	exportDir string
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
// The clock starts at 09:00 UTC on TestMonday and there is no remote sink.
func testApp(t *testing.T) *cliFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := service.NewSheetStore(repository.NewSQLiteWeekSheetRepo(database), testutil.NewTestUoW(database))
	fake := testutil.NewFakeClock(testutil.TestMonday.Add(9 * time.Hour))
	clock := service.Clock{Now: fake.Now, Location: time.UTC}
	cat := catalog.Default()
	dir := t.TempDir()

	app := &App{
		Sheets:          service.NewWeekSheetService(store, clock),
		Timers:          service.NewTimerService(store, clock),
		Submit:          service.NewSubmissionService(store, export.NewXLSXExporter(dir), nil, cat, clock),
		Import:          service.NewImportService(store),
		Catalog:         cat,
		Now:             fake.Now,
		Location:        time.UTC,
		DefaultEmployee: "Ritu Das",
		HTTPAddr:        "127.0.0.1:0",
	}
	return &cliFixture{app: app, clock: fake, exportDir: dir}
}

// executeCmd runs a cobra command and captures stdout/stderr with styling
// removed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}
