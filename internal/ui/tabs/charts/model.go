// Package charts provides the charts tab: one trigger per aggregate view and
// a chart area showing the last requested view.
package charts

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hotel-booking-tui/internal/app"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

// keyMap defines the key bindings specific to the charts tab.
type keyMap struct {
	Trigger key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
}

// defaultKeyMap returns the default key bindings for the charts tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Trigger: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "show chart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show selected"),
		),
	}
}

// Model represents the charts tab state.
type Model struct {
	state  *app.State
	source app.ViewSource
	width  int
	height int
	keys   keyMap

	triggers []views.Metadata
	cursor   int
	current  *views.View

	// monthly booking totals for the sidebar sparkline
	monthly []float64
}

// New creates a new charts model.
func New(state *app.State, src app.ViewSource) *Model {
	m := &Model{
		state:  state,
		source: src,
		keys:   defaultKeyMap(),
	}

	for _, name := range models.ViewNames {
		meta, err := views.MetadataFor(name)
		if err != nil {
			continue
		}
		m.triggers = append(m.triggers, meta)
	}

	if src != nil {
		if v, err := src.GetView(models.ViewMonthlySeasonal); err == nil {
			if seasonal, ok := v.Data.(models.MonthlySeasonalBookings); ok {
				for _, row := range seasonal.Rows {
					m.monthly = append(m.monthly, float64(row.Total()))
				}
			}
		}
	}

	return m
}

// Init initializes the charts tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the charts tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case app.ViewRenderedMsg:
		v := msg.View
		m.current = &v
		if i := m.triggerIndex(v.Meta.Name); i >= 0 {
			m.cursor = i
		}

	case app.RefreshMsg:
		if m.current != nil {
			return m, m.request(m.current.Meta.Name)
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Trigger):
		i := int(msg.Runes[0] - '1')
		if i < 0 || i >= len(m.triggers) {
			return nil
		}
		m.cursor = i
		return m.request(m.triggers[i].Name)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.triggers)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.triggers) > 0 {
			return m.request(m.triggers[m.cursor].Name)
		}
	}
	return nil
}

// request asks the root model to resolve a view. The chart area changes only
// once the view arrives.
func (m *Model) request(name models.ViewName) tea.Cmd {
	return func() tea.Msg {
		return app.RenderViewMsg{Name: name}
	}
}

func (m *Model) triggerIndex(name models.ViewName) int {
	for i, t := range m.triggers {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Current returns the view in the chart area, if any.
func (m *Model) Current() (views.View, bool) {
	if m.current == nil {
		return views.View{}, false
	}
	return *m.current, true
}

// SetSize sets the available size for the charts tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Trigger, m.keys.Select}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Trigger, m.keys.Select},
		{m.keys.Up, m.keys.Down},
	}
}
