package cli

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Edit the notes of a day",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <row> <day> [text...]",
		Short: "Replace the notes of one cell; no text clears them",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.weekKey(opts)
			if err != nil {
				return err
			}
			row, day, err := parseCell(args[:2])
			if err != nil {
				return err
			}
			text := strings.Join(args[2:], " ")
			sheet, changed, err := app.Sheets.SetNotes(cmd.Context(), key, row, day, text)
			if err != nil {
				return err
			}
			if !changed {
				printf(cmd, "Notes unchanged.\n")
				return nil
			}
			printf(cmd, "Notes saved for %s on %s\n", rowLabel(sheet, row), formatter.DayLabel(key, day))
			return nil
		},
	})

	return cmd
}
