package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App, opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live week grid that refreshes running totals every second",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.weekKey(opts)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return errors.New("watch needs an interactive terminal; use `week show` instead")
			}
			p := tea.NewProgram(newWatchModel(cmd.Context(), app, key),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}
