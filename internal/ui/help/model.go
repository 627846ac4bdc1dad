package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ghn/internal/keys"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/theme"
)

var targetHelp = []struct {
	target rune
	desc   string
}{
	{model.TargetUnread, "unread"},
	{model.TargetReviewRequired, "review required"},
	{model.TargetApproved, "approved"},
	{model.TargetChangesRequested, "changes requested"},
	{model.TargetMerged, "merged"},
	{model.TargetClosed, "closed"},
	{model.TargetDraft, "draft"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// CommandReference is the one-line summary shown in the status bar.
func CommandReference() string {
	var b strings.Builder
	b.WriteString("o open  y yank  r read  d done  q unsub  p review  b branch")
	b.WriteString("  |  1-3, 1 2 3")
	for _, t := range targetHelp {
		b.WriteString(", ")
		b.WriteRune(t.target)
		b.WriteByte(' ')
		b.WriteString(t.desc)
	}
	return b.String()
}

func commandTable() string {
	var b strings.Builder
	for _, a := range model.Actions {
		b.WriteString("  ")
		b.WriteRune(a.Rune())
		b.WriteString("  ")
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	for _, t := range targetHelp {
		b.WriteString("  ")
		b.WriteRune(t.target)
		b.WriteString("  ")
		b.WriteString(t.desc)
		b.WriteByte('\n')
	}
	b.WriteString("\n  3o   open #3\n  1-5d mark 1 through 5 done\n  u r  mark every unread row read\n")
	return b.String()
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Commands")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		commandTable(),
		"    ",
		helpText,
	)
	content := lipgloss.JoinVertical(lipgloss.Left, title, columns)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
