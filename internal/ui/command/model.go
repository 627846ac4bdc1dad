// Package command is the single-line command bar at the bottom of the
// screen.
package command

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	cmdlang "github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/keys"
	"github.com/nhle/ghn/internal/theme"
)

// Model is the command bar view.
type Model struct {
	input textinput.Model
	keys  *keys.KeyMap
	width int
}

// New creates a focused command bar.
func New(km *keys.KeyMap, width int) Model {
	ti := textinput.New()
	ti.Placeholder = "3o  1-5d  u r  ?p  mq"
	ti.Prompt = ""
	ti.Focus()
	ti.Width = width - 3

	return Model{
		input: ti,
		keys:  km,
		width: width,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update edits the buffer. Runes outside the command alphabet are
// dropped; submit and clear are handled by the caller.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.ClearLine):
			m.clearToStart()
			return m, nil
		case key.Matches(msg, m.keys.ClearAll):
			m.input.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Home):
			m.input.CursorStart()
			return m, nil
		case key.Matches(msg, m.keys.End):
			m.input.CursorEnd()
			return m, nil
		}

		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			runes := make([]rune, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				if cmdlang.IsCommandRune(r) {
					runes = append(runes, r)
				}
			}
			if msg.Type == tea.KeySpace {
				runes = []rune{' '}
			}
			if len(runes) == 0 {
				return m, nil
			}
			msg.Type = tea.KeyRunes
			msg.Runes = runes
			msg.Paste = false
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// clearToStart deletes everything before the cursor.
func (m *Model) clearToStart() {
	value := []rune(m.input.Value())
	pos := m.input.Position()
	if pos > len(value) {
		pos = len(value)
	}
	m.input.SetValue(string(value[pos:]))
	m.input.SetCursor(0)
}

// Value returns the current command line.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the command line and moves the cursor to its end.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// Reset empties the command line.
func (m *Model) Reset() {
	m.input.Reset()
}

// View renders the prompt and the input.
func (m Model) View() string {
	return theme.PromptStyle.Render("> ") + " " + m.input.View()
}

// SetSize updates the command bar width.
func (m *Model) SetSize(width int) {
	m.width = width
	m.input.Width = width - 3
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
