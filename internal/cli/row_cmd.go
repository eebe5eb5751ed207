package cli

import (
	"errors"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/cobra"
)

func newRowCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Add and remove task rows",
	}

	cmd.AddCommand(
		newRowAddCmd(app, opts),
		newRowRemoveCmd(app, opts),
	)

	return cmd
}

func newRowAddCmd(app *App, opts *globalOpts) *cobra.Command {
	var task, subtask string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task row to the week",
		Long:  "Add a task row. Without --task an interactive picker offers the employee's catalog tasks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.weekKey(opts)
			if err != nil {
				return err
			}
			if task == "" {
				if !app.interactive() || app.Catalog == nil {
					return errors.New("--task is required when not running interactively")
				}
				task, subtask, err = pickTask(app.Catalog, key.Employee)
				if err != nil {
					return err
				}
			}

			sheet, changed, err := app.Sheets.AddRow(cmd.Context(), key, task, subtask)
			if err != nil {
				return err
			}
			if !changed {
				printf(cmd, "No row added: task name is empty.\n")
				return nil
			}
			printf(cmd, "Added row %d: %s\n", len(sheet.Rows), rowLabel(sheet, len(sheet.Rows)-1))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task name")
	cmd.Flags().StringVar(&subtask, "subtask", "", "Subtask name")

	return cmd
}

func newRowRemoveCmd(app *App, opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <row>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a task row and everything logged on it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.weekKey(opts)
			if err != nil {
				return err
			}
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}

			before, err := app.Sheets.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			_, changed, err := app.Sheets.DeleteRow(cmd.Context(), key, row)
			if err != nil {
				return err
			}
			if !changed {
				printf(cmd, "No row %d in this week.\n", row+1)
				return nil
			}
			printf(cmd, "Removed row %d: %s\n", row+1, rowLabel(before, row))
			return nil
		},
	}
}

func rowLabel(sheet *domain.WeekSheet, row int) string {
	if row < 0 || row >= len(sheet.Rows) {
		return ""
	}
	return formatter.Bold(sheet.Rows[row].Label())
}
