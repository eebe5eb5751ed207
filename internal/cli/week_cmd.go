package cli

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show and list week sheets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the week grid with live totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showWeek(cmd, app, opts)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the stored weeks of an employee",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				employee := strings.TrimSpace(opts.employee)
				if employee == "" {
					return errNoEmployee
				}
				weeks, err := app.Sheets.ListWeeks(cmd.Context(), employee)
				if err != nil {
					return err
				}
				printf(cmd, "%s", formatter.FormatWeekList(employee, weeks))
				return nil
			},
		},
	)

	return cmd
}

// showWeek loads (creating if needed) the selected week and prints it.
func showWeek(cmd *cobra.Command, app *App, opts *globalOpts) error {
	key, err := app.weekKey(opts)
	if err != nil {
		return err
	}
	sheet, err := app.Sheets.LoadOrCreate(cmd.Context(), key.Employee, key.Date(0))
	if err != nil {
		return err
	}
	printf(cmd, "%s", formatter.FormatWeek(sheet, app.now(), nil))
	return nil
}
