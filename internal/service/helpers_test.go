package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/remote"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday09 is 09:00 UTC on the Monday the fixtures are anchored to.
var monday09 = testutil.TestMonday.Add(9 * time.Hour)

type services struct {
	db       *sql.DB
	repo     *repository.SQLiteWeekSheetRepo
	store    *SheetStore
	clock    *testutil.FakeClock
	sheets   WeekSheetService
	timers   TimerService
	submit   SubmissionService
	exporter *fakeExporter
	sink     *fakeSink
	events   *recordingObserver
}

type setupOption func(*setupConfig)

type setupConfig struct {
	database *sql.DB
	uow      db.UnitOfWork
	location *time.Location
	noSink   bool
}

func withDB(database *sql.DB) setupOption {
	return func(c *setupConfig) { c.database = database }
}

func withUoW(uow db.UnitOfWork) setupOption {
	return func(c *setupConfig) { c.uow = uow }
}

func withLocation(loc *time.Location) setupOption {
	return func(c *setupConfig) { c.location = loc }
}

func withoutSink() setupOption {
	return func(c *setupConfig) { c.noSink = true }
}

func setupServices(t *testing.T, opts ...setupOption) *services {
	t.Helper()
	cfg := setupConfig{location: time.UTC}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.database == nil {
		cfg.database = testutil.NewTestDB(t)
	}
	if cfg.uow == nil {
		cfg.uow = testutil.NewTestUoW(cfg.database)
	}

	s := &services{
		db:       cfg.database,
		repo:     repository.NewSQLiteWeekSheetRepo(cfg.database),
		clock:    testutil.NewFakeClock(monday09),
		exporter: &fakeExporter{path: "/exports/out.xlsx"},
		sink:     &fakeSink{},
		events:   &recordingObserver{},
	}
	s.store = NewSheetStore(s.repo, cfg.uow)
	clock := Clock{Now: s.clock.Now, Location: cfg.location}
	s.sheets = NewWeekSheetService(s.store, clock, s.events)
	s.timers = NewTimerService(s.store, clock, s.events)
	var sink remote.Sink = s.sink
	if cfg.noSink {
		sink = nil
	}
	s.submit = NewSubmissionService(s.store, s.exporter, sink, staticDepartments{"Ritu Das": "Marketing"}, clock, s.events)
	return s
}

// newFileDB opens a file-backed database so goroutines use separate connections.
func newFileDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "service_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func testKey(t *testing.T) domain.WeekKey {
	t.Helper()
	key, err := domain.NewWeekKey("Ritu Das", testutil.TestMonday)
	require.NoError(t, err)
	return key
}

func (s *services) stored(t *testing.T, key domain.WeekKey) *repository.StoredSheet {
	t.Helper()
	stored, err := s.repo.Get(context.Background(), key)
	require.NoError(t, err)
	return stored
}

type fakeExporter struct {
	mu    sync.Mutex
	path  string
	err   error
	calls [][]domain.ExportRecord
}

func (e *fakeExporter) Export(_ context.Context, _ domain.WeekKey, records []domain.ExportRecord) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, records)
	if e.err != nil {
		return "", e.err
	}
	return e.path, nil
}

type fakeSink struct {
	mu    sync.Mutex
	err   error
	calls []remote.Submission
	// onSubmit runs before the sink answers; a non-nil return is the error.
	onSubmit func(ctx context.Context) error
}

func (f *fakeSink) Submit(ctx context.Context, sub remote.Submission) (*remote.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub)
	if f.onSubmit != nil {
		if err := f.onSubmit(ctx); err != nil {
			return nil, err
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &remote.Receipt{StatusCode: 200, Attempts: 1}, nil
}

type staticDepartments map[string]string

func (d staticDepartments) Department(employee string) (string, error) {
	dept, ok := d[employee]
	if !ok {
		return "", repository.ErrNotFound
	}
	return dept, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
