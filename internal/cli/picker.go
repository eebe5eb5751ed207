package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/catalog"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func timesheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func groupOptions(groups []catalog.TaskGroup) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(groups))
	for _, g := range groups {
		opts = append(opts, huh.NewOption(g.Name, g.Name))
	}
	return opts
}

func subtaskOptions(subtasks []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(subtasks)+1)
	opts = append(opts, huh.NewOption("(none)", ""))
	for _, s := range subtasks {
		opts = append(opts, huh.NewOption(s, s))
	}
	return opts
}

func taskGroupForm(department string, groups []catalog.TaskGroup, task *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Description(department).
				Options(groupOptions(groups)...).
				Value(task),
		),
	).WithTheme(timesheetHuhTheme())
}

func subtaskForm(task string, subtasks []string, subtask *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subtask").
				Description(task).
				Options(subtaskOptions(subtasks)...).
				Value(subtask),
		),
	).WithTheme(timesheetHuhTheme())
}

// pickTask asks for a task group and subtask from the employee's department.
func pickTask(cat *catalog.Catalog, employee string) (task, subtask string, err error) {
	department, err := cat.Department(employee)
	if err != nil {
		return "", "", err
	}
	groups := cat.TaskGroups(department)
	if len(groups) == 0 {
		return "", "", fmt.Errorf("department %q has no task groups; pass --task", department)
	}
	if err := taskGroupForm(department, groups, &task).Run(); err != nil {
		return "", "", err
	}
	if subtasks := cat.Subtasks(department, task); len(subtasks) > 0 {
		if err := subtaskForm(task, subtasks, &subtask).Run(); err != nil {
			return "", "", err
		}
	}
	return task, subtask, nil
}
