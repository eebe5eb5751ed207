package cli

import (
	"sort"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import weeks from the flat JSON data file of earlier versions",
		Long:  "Import weeks from a legacy data file. Weeks already in the database are left untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd, "Imported %d weeks (%d already present, %d skipped)\n",
				result.Imported, result.Existing, len(result.Skipped))

			keys := make([]string, 0, len(result.Skipped))
			for k := range result.Skipped {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				printf(cmd, "  %s %s: %v\n", formatter.StyleYellow.Render("skipped"), k, result.Skipped[k])
			}
			return nil
		},
	}
}
