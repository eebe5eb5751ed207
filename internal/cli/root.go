// Package cli implements the timesheet command tree and the live week view.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/catalog"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sheets  service.WeekSheetService
	Timers  service.TimerService
	Submit  service.SubmissionService
	Import  service.ImportService
	Catalog *catalog.Catalog

	// Now and Location decide the current instant and which calendar day is
	// today. Nil values fall back to the wall clock and time.Local.
	Now      func() time.Time
	Location *time.Location

	// DefaultEmployee is used when --employee is not given.
	DefaultEmployee string
	// HTTPAddr is the default listen address of `serve`.
	HTTPAddr string

	IsInteractive func() bool
}

var errNoEmployee = errors.New("no employee: pass --employee or set TIMESHEET_EMPLOYEE")

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	employee string
	week     dateValue
}

// NewRootCmd creates the top-level "timesheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &globalOpts{employee: app.DefaultEmployee}

	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Weekly timesheet with a live task timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showWeek(cmd, app, opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.employee, "employee", "e", opts.employee, "Employee name")
	root.PersistentFlags().VarP(&opts.week, "week", "w", "Any date in the week (YYYY-MM-DD, default today)")

	root.AddCommand(
		newWeekCmd(app, opts),
		newRowCmd(app, opts),
		newTimerCmd(app, opts),
		newNotesCmd(app, opts),
		newSubmitCmd(app, opts),
		newWatchCmd(app, opts),
		newServeCmd(app),
		newCatalogCmd(app),
		newImportCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// weekKey resolves the --employee and --week flags into a key.
func (a *App) weekKey(opts *globalOpts) (domain.WeekKey, error) {
	employee := strings.TrimSpace(opts.employee)
	if employee == "" {
		return domain.WeekKey{}, errNoEmployee
	}
	date := opts.week.Time()
	if date.IsZero() {
		date = a.now().In(a.location())
	}
	return domain.NewWeekKey(employee, date)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(out(cmd), format, args...)
}
