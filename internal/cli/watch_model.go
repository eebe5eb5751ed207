package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval is how often the live view recomputes running totals.
const refreshInterval = time.Second

type watchKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "start/stop")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop timer")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, k.ShortHelp()}
}

// sheetLoadedMsg carries a sheet returned by a service call.
type sheetLoadedMsg struct {
	sheet  *domain.WeekSheet
	status string
	err    error
}

// tickMsg triggers a re-render so running cells advance.
type tickMsg time.Time

// watchModel is the live week grid. Totals are recomputed from the clock on
// every render; the sheet is only reloaded after an action or on request.
type watchModel struct {
	ctx    context.Context
	app    *App
	key    domain.WeekKey
	sheet  *domain.WeekSheet
	cursor domain.Cell
	placed bool
	status string
	err    error
	keys   watchKeyMap
	help   help.Model
}

func newWatchModel(ctx context.Context, app *App, key domain.WeekKey) *watchModel {
	return &watchModel{
		ctx:  ctx,
		app:  app,
		key:  key,
		keys: newWatchKeyMap(),
		help: help.New(),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(""), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *watchModel) load(status string) tea.Cmd {
	return func() tea.Msg {
		sheet, err := m.app.Sheets.LoadOrCreate(m.ctx, m.key.Employee, m.key.Date(0))
		return sheetLoadedMsg{sheet: sheet, status: status, err: err}
	}
}

func (m *watchModel) toggle() tea.Cmd {
	row, day := m.cursor.Row, m.cursor.Day
	return func() tea.Msg {
		sheet, tr, err := m.app.Timers.Toggle(m.ctx, m.key, row, day)
		if err != nil {
			return sheetLoadedMsg{err: err}
		}
		return sheetLoadedMsg{sheet: sheet, status: transitionStatus(sheet, row, day, tr)}
	}
}

func (m *watchModel) stop() tea.Cmd {
	return func() tea.Msg {
		sheet, cell, err := m.app.Timers.StopActive(m.ctx, m.key)
		if err != nil {
			return sheetLoadedMsg{err: err}
		}
		status := "No timer running."
		if cell != nil {
			status = "Stopped " + sheet.Rows[cell.Row].Label() + " on " + formatter.DayLabel(sheet.Key, cell.Day)
		}
		return sheetLoadedMsg{sheet: sheet, status: status}
	}
}

func transitionStatus(sheet *domain.WeekSheet, row, day int, tr domain.Transition) string {
	label := func(c domain.Cell) string {
		return sheet.Rows[c.Row].Label() + " on " + formatter.DayLabel(sheet.Key, c.Day)
	}
	switch tr.Outcome {
	case domain.ToggleStarted:
		s := "Started " + label(domain.Cell{Row: row, Day: day})
		if len(tr.Stopped) > 0 {
			s += fmt.Sprintf(" (stopped %s)", label(tr.Stopped[0]))
		}
		return s
	case domain.ToggleStopped:
		return "Stopped " + label(tr.Stopped[0])
	default:
		return "Timers start only on today's date in an open week."
	}
}

// placeCursor puts the cursor on the running cell, or today's column.
func (m *watchModel) placeCursor() {
	if m.sheet.Active != nil {
		m.cursor = *m.sheet.Active
		return
	}
	if day, ok := m.key.DayIndexOf(m.app.now().In(m.app.location())); ok {
		m.cursor.Day = day
	}
}

func (m *watchModel) clampCursor() {
	if n := len(m.sheet.Rows); m.cursor.Row >= n {
		m.cursor.Row = max(n-1, 0)
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case sheetLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.sheet = msg.sheet
		m.status = msg.status
		if !m.placed {
			m.placeCursor()
			m.placed = true
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load("Reloaded.")
		}
		if m.sheet == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor.Row > 0 {
				m.cursor.Row--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor.Row < len(m.sheet.Rows)-1 {
				m.cursor.Row++
			}
		case key.Matches(msg, m.keys.Left):
			if m.cursor.Day > 0 {
				m.cursor.Day--
			}
		case key.Matches(msg, m.keys.Right):
			if m.cursor.Day < domain.DaysPerWeek-1 {
				m.cursor.Day++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.sheet.Rows) > 0 {
				return m, m.toggle()
			}
		case key.Matches(msg, m.keys.Stop):
			return m, m.stop()
		}
		return m, nil
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	switch {
	case m.sheet == nil && m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.sheet == nil:
		b.WriteString(formatter.Dim("Loading…"))
		b.WriteString("\n")
	default:
		var cursor *domain.Cell
		if len(m.sheet.Rows) > 0 {
			c := m.cursor
			cursor = &c
		}
		b.WriteString(formatter.FormatWeek(m.sheet, m.app.now(), cursor))
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		} else if m.status != "" {
			b.WriteString("\n")
			b.WriteString(m.status)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
