// Package catalog holds the static employee, department and task lists an
// employee picks rows from. It is loaded from YAML; an embedded default
// ships with the binary.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrUnknownEmployee is returned when an employee is not in the catalog.
var ErrUnknownEmployee = errors.New("unknown employee")

// TaskGroup is a named task with the subtasks it offers.
type TaskGroup struct {
	Name     string   `yaml:"group" json:"group"`
	Subtasks []string `yaml:"subtasks" json:"subtasks"`
}

type catalogFile struct {
	Employees   map[string]string      `yaml:"employees"`
	Departments map[string][]TaskGroup `yaml:"departments"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	employees   map[string]string
	departments map[string][]TaskGroup
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. Employees must name a department, and
// every task group needs a name; departments without task groups are allowed.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	c := &Catalog{
		employees:   make(map[string]string, len(f.Employees)),
		departments: make(map[string][]TaskGroup, len(f.Departments)),
	}
	for name, dept := range f.Employees {
		name, dept = strings.TrimSpace(name), strings.TrimSpace(dept)
		if name == "" || dept == "" {
			return nil, fmt.Errorf("catalog employee %q: name and department are required", name)
		}
		c.employees[name] = dept
	}
	for dept, groups := range f.Departments {
		for i, g := range groups {
			if strings.TrimSpace(g.Name) == "" {
				return nil, fmt.Errorf("catalog department %q: task group %d has no name", dept, i)
			}
		}
		c.departments[dept] = groups
	}
	return c, nil
}

// Department returns the department an employee belongs to.
func (c *Catalog) Department(employee string) (string, error) {
	dept, ok := c.employees[strings.TrimSpace(employee)]
	if !ok {
		return "", fmt.Errorf("%q: %w", employee, ErrUnknownEmployee)
	}
	return dept, nil
}

// Employees returns all employee names, sorted.
func (c *Catalog) Employees() []string {
	names := make([]string, 0, len(c.employees))
	for name := range c.employees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Departments returns all department names that define task groups, sorted.
func (c *Catalog) Departments() []string {
	names := make([]string, 0, len(c.departments))
	for name := range c.departments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TaskGroups returns the department's task groups in file order.
func (c *Catalog) TaskGroups(department string) []TaskGroup {
	return c.departments[department]
}

// Subtasks returns the subtasks of one task group, or nil when either name
// is unknown.
func (c *Catalog) Subtasks(department, group string) []string {
	for _, g := range c.departments[department] {
		if g.Name == group {
			return g.Subtasks
		}
	}
	return nil
}
