package cli

import (
	"github.com/alexanderramin/timesheet/internal/aggregate"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start and stop the week's timer",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle <row> <day>",
			Short: "Start or stop the timer on one cell",
			Long: "Start or stop the timer on one cell. Days are 1-7 or mon..sun. " +
				"A timer can only start on today's date, and starting one stops any other.",
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := app.weekKey(opts)
				if err != nil {
					return err
				}
				row, day, err := parseCell(args)
				if err != nil {
					return err
				}
				sheet, tr, err := app.Timers.Toggle(cmd.Context(), key, row, day)
				if err != nil {
					return err
				}
				printTransition(cmd, app, sheet, row, day, tr)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop whichever timer is running",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := app.weekKey(opts)
				if err != nil {
					return err
				}
				sheet, cell, err := app.Timers.StopActive(cmd.Context(), key)
				if err != nil {
					return err
				}
				if cell == nil {
					printf(cmd, "No timer running.\n")
					return nil
				}
				printStopped(cmd, app, sheet, *cell)
				return nil
			},
		},
	)

	return cmd
}

func printTransition(cmd *cobra.Command, app *App, sheet *domain.WeekSheet, row, day int, tr domain.Transition) {
	switch tr.Outcome {
	case domain.ToggleStarted:
		for _, c := range tr.Stopped {
			printStopped(cmd, app, sheet, c)
		}
		printf(cmd, "%s Started %s on %s\n", formatter.StyleGreen.Render(formatter.RunningMark),
			rowLabel(sheet, row), formatter.DayLabel(sheet.Key, day))
	case domain.ToggleStopped:
		printStopped(cmd, app, sheet, tr.Stopped[0])
	default:
		printf(cmd, "%s\n", formatter.Dim("Timer unchanged: timers start only on today's date in an open week."))
	}
}

func printStopped(cmd *cobra.Command, app *App, sheet *domain.WeekSheet, c domain.Cell) {
	d, _ := sheet.Day(c.Row, c.Day)
	printf(cmd, "Stopped %s on %s (%s logged that day)\n",
		rowLabel(sheet, c.Row), formatter.DayLabel(sheet.Key, c.Day),
		aggregate.FormatHHMM(aggregate.DayTotalHours(d, app.now())))
}
