// Package feed renders the scrollable list of notifications and personal
// pull requests, coloured by the actions queued against each row.
package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/ghn/internal/keys"
)

// Model is the feed view.
type Model struct {
	viewport viewport.Model
	keys     *keys.KeyMap
	data     Data
	width    int
	height   int
}

// New creates a feed of the given size.
func New(km *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{}
	return Model{
		viewport: vp,
		keys:     km,
		width:    width,
		height:   height,
	}
}

// SetData replaces the frame data and re-renders.
func (m *Model) SetData(d Data) {
	m.data = d
	m.render()
}

// Data returns the data of the last rendered frame.
func (m Model) Data() Data {
	return m.data
}

// SetSize updates the feed dimensions and re-renders.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) render() {
	m.viewport.SetContent(Render(m.data, m.width))
}

// Update scrolls the feed. Only the scroll bindings are handled; every
// other key belongs to the command bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ScrollUp):
			m.scroll(-1)
		case key.Matches(msg, m.keys.ScrollDown):
			m.scroll(1)
		case key.Matches(msg, m.keys.PageUp):
			m.scroll(-m.viewport.Height / 2)
		case key.Matches(msg, m.keys.PageDown):
			m.scroll(m.viewport.Height / 2)
		}
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// scroll moves the viewport by delta lines; SetYOffset clamps.
func (m *Model) scroll(delta int) {
	if delta == 0 {
		delta = 1
	}
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
}

// View renders the visible part of the feed.
func (m Model) View() string {
	return m.viewport.View()
}

// YOffset returns the current scroll offset.
func (m Model) YOffset() int {
	return m.viewport.YOffset
}
