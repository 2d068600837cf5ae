// Package store provides the store tab: persisted view tables, the last
// persistence report and the persist/export actions.
package store

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hotel-booking-tui/internal/app"
	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/exporter"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/components"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/styles"
)

const maxColumnWidth = 28

// keyMap defines the key bindings specific to the store tab.
type keyMap struct {
	Persist   key.Binding
	Export    key.Binding
	NextTable key.Binding
	PrevTable key.Binding
}

// defaultKeyMap returns the default key bindings for the store tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Persist: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "persist views"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export tables"),
		),
		NextTable: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("]/→", "next table"),
		),
		PrevTable: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("[/←", "prev table"),
		),
	}
}

// Model represents the store tab state.
type Model struct {
	state  *app.State
	width  int
	height int
	keys   keyMap

	tables  []string
	index   int
	table   table.Model
	spinner components.LoadingSpinner

	loaded   *db.Table
	loadedAt time.Time
	err      error

	// requested is set while a LoadTableMsg is on its way to the root model.
	requested bool
	// attempted is the last table a load was issued for.
	attempted string
}

// New creates a new store model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(table.Styles{
			Header:   styles.TableHeaderStyle,
			Cell:     styles.TableCellStyle,
			Selected: styles.TableSelectedStyle,
		}),
	)

	return &Model{
		state:   state,
		keys:    defaultKeyMap(),
		tables:  db.TableNames(),
		table:   t,
		spinner: components.NewSpinner("Loading table..."),
	}
}

// Init loads the first table.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles messages for the store tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case app.LoadTableMsg:
		if msg.Name == m.Current() {
			m.requested = false
		}

	case app.TableLoadedMsg:
		m.handleLoaded(msg)

	case app.RefreshMsg:
		m.attempted = ""
		cmds = append(cmds, m.load())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Rows change after a persist even when the result reached another tab.
	if m.needsLoad() {
		cmds = append(cmds, m.load())
	}
	if m.spinner.Active() && !m.requested && !m.state.IsLoading(app.ResourceTable) {
		m.spinner.Stop()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Persist):
		return func() tea.Msg { return app.PersistMsg{} }

	case key.Matches(msg, m.keys.Export):
		return func() tea.Msg { return app.ExportMsg{} }

	case key.Matches(msg, m.keys.NextTable):
		m.index = (m.index + 1) % len(m.tables)
		return m.load()

	case key.Matches(msg, m.keys.PrevTable):
		m.index = (m.index - 1 + len(m.tables)) % len(m.tables)
		return m.load()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) handleLoaded(msg app.TableLoadedMsg) {
	if msg.Name != m.Current() {
		return
	}
	m.requested = false
	m.spinner.Stop()

	if msg.Error != nil {
		m.err = msg.Error
		return
	}
	m.err = nil
	m.loaded = msg.Table
	m.loadedAt = time.Now()
	m.setTable(msg.Table)
}

// load asks the root model to read the current table.
func (m *Model) load() tea.Cmd {
	name := m.Current()
	m.requested = true
	m.attempted = name

	return tea.Batch(
		m.spinner.Start("Loading "+name+"..."),
		func() tea.Msg { return app.LoadTableMsg{Name: name} },
	)
}

func (m *Model) needsLoad() bool {
	if m.requested || m.state.IsLoading(app.ResourceTable) {
		return false
	}
	name := m.Current()
	if m.loaded == nil || m.loaded.Name != name {
		return m.attempted != name
	}
	return m.state.GetLastPersisted().After(m.loadedAt)
}

func (m *Model) setTable(t *db.Table) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}

	rows := make([]table.Row, len(t.Rows))
	for r, values := range t.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = exporter.FormatValue(v)
			if i < len(widths) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		rows[r] = row
	}

	cols := make([]table.Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = table.Column{Title: c, Width: min(widths[i], maxColumnWidth)}
	}

	// Drop the old rows first: rendering indexes columns by row cell.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Current returns the name of the selected table.
func (m *Model) Current() string {
	return m.tables[m.index]
}

// Loaded returns the rows on screen, if any.
func (m *Model) Loaded() *db.Table {
	return m.loaded
}

// SetSize sets the available size for the store tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(max(width-8, 20))
	m.table.SetHeight(max(height-12, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Persist, m.keys.Export, m.keys.NextTable}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Persist, m.keys.Export},
		{m.keys.NextTable, m.keys.PrevTable},
		m.table.KeyMap.ShortHelp(),
	}
}
