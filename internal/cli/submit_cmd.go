package cli

import (
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App, opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Freeze the week and export it",
		Long: "Freeze the week, write the spreadsheet export and post the records to the " +
			"central server when one is configured. A failed post does not undo the submission.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.weekKey(opts)
			if err != nil {
				return err
			}
			result, err := app.Submit.Submit(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !result.Submitted {
				printf(cmd, "%s\n", formatter.Dim("Nothing to submit: the week has no logged time or notes."))
				return nil
			}
			printf(cmd, "%s", formatter.FormatSubmission(result.Status))
			return nil
		},
	}
}
