package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/alexanderramin/timesheet/internal/catalog"
	"github.com/alexanderramin/timesheet/internal/cli"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/export"
	"github.com/alexanderramin/timesheet/internal/remote"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// One store per process so every service shares the per-week locks.
	sheetRepo := repository.NewSQLiteWeekSheetRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	store := service.NewSheetStore(sheetRepo, uow)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	var sink remote.Sink
	if cfg.Sink.Enabled() {
		var observer remote.Observer = remote.NoopObserver{}
		if cfg.Sink.LogCalls {
			observer = remote.NewLogObserver(os.Stderr)
		}
		sink = remote.NewHTTPSink(cfg.Sink, observer)
	}

	clock := service.SystemClock(cfg.Location)
	app := &cli.App{
		Sheets:          service.NewWeekSheetService(store, clock, observers...),
		Timers:          service.NewTimerService(store, clock, observers...),
		Submit:          service.NewSubmissionService(store, export.NewXLSXExporter(cfg.ExportDir), sink, cat, clock, observers...),
		Import:          service.NewImportService(store, observers...),
		Catalog:         cat,
		Location:        cfg.Location,
		DefaultEmployee: cfg.Employee,
		HTTPAddr:        cfg.HTTPAddr,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
