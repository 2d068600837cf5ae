// Package info provides the info tab: dataset summary, configuration and
// build information.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hotel-booking-tui/internal/app"
	"github.com/j-veylop/hotel-booking-tui/internal/config"
)

type keyMap struct {
	Scroll key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "k", "down", "j", "pgup", "pgdown"),
			key.WithHelp("↑↓/jk", "scroll"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// Model shows the dataset summary, the active configuration and the
// build in a scrollable viewport.
type Model struct {
	state    *app.State
	config   *config.Config
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates the info tab. cfg may be nil when configuration failed to load.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init implements app.Tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update scrolls the viewport. A refresh returns to the top.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.syncContent()
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case app.RefreshMsg:
		m.viewport.GotoTop()
	}
	return m, nil
}

// Offset returns the scroll position of the viewport.
func (m *Model) Offset() int {
	return m.viewport.YOffset
}

// SetSize implements app.Tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp implements help.KeyMap.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Scroll, m.keys.Top, m.keys.Bottom}
}

// FullHelp implements help.KeyMap.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Scroll},
		{m.keys.Top, m.keys.Bottom},
	}
}
