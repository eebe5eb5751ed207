package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse employees, departments and tasks",
	}

	var department string
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees, or the tasks of one department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog == nil {
				return errors.New("no catalog loaded")
			}
			if department == "" {
				rows := [][]string{}
				for _, name := range app.Catalog.Employees() {
					dept, _ := app.Catalog.Department(name)
					rows = append(rows, []string{name, dept})
				}
				printf(cmd, "%s", formatter.RenderTable([]string{"EMPLOYEE", "DEPARTMENT"}, rows))
				return nil
			}

			groups := app.Catalog.TaskGroups(department)
			if len(groups) == 0 {
				printf(cmd, "%s\n", formatter.Dim("No task groups for "+department+"."))
				return nil
			}
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{g.Name, strings.Join(g.Subtasks, ", ")})
			}
			printf(cmd, "%s\n%s", formatter.Header(department), formatter.RenderTable([]string{"TASK", "SUBTASKS"}, rows))
			return nil
		},
	}
	list.Flags().StringVar(&department, "department", "", "Show the task groups of this department")

	cmd.AddCommand(list)
	return cmd
}
