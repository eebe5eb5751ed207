package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	c := Default()

	dept, err := c.Department("Ritu Das")
	require.NoError(t, err)
	assert.Equal(t, "Marketing", dept)

	groups := c.TaskGroups("Marketing")
	require.NotEmpty(t, groups)
	assert.Equal(t, "Content Strategy & Ideation", groups[0].Name)
	assert.Equal(t, []string{"Meeting"}, c.Subtasks("Marketing", "Meeting"))
}

func TestDepartment_UnknownEmployee(t *testing.T) {
	_, err := Default().Department("Nobody Here")
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestEmployees_Sorted(t *testing.T) {
	names := Default().Employees()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
}

func TestDepartmentWithoutTasks(t *testing.T) {
	c := Default()
	dept, err := c.Department("Subhasis Marick")
	require.NoError(t, err)
	assert.Equal(t, "Accountant", dept)
	assert.Empty(t, c.TaskGroups(dept))
	assert.Nil(t, c.Subtasks(dept, "Meeting"))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
employees:
  Kim Lee: Support
departments:
  Support:
    - group: Tickets
      subtasks: [Triage, Escalation]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kim Lee"}, c.Employees())
	assert.Equal(t, []string{"Support"}, c.Departments())
	assert.Equal(t, []string{"Triage", "Escalation"}, c.Subtasks("Support", "Tickets"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("employees: [not, a, map]"))
	assert.Error(t, err)

	_, err = Parse([]byte("employees:\n  Kim Lee: \"\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("departments:\n  Support:\n    - subtasks: [a]\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
