package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ghn/internal/theme"
)

// Layout manages the terminal layout dimensions: header, feed, status
// line and command bar, top to bottom.
type Layout struct {
	Width            int
	Height           int
	HeaderHeight     int
	StatusBarHeight  int
	CommandBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// Header, status line and command bar take one row each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:            width,
		Height:           height,
		HeaderHeight:     1,
		StatusBarHeight:  1,
		CommandBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the feed, never less
// than one row.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight - l.CommandBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// RenderHeader renders the top header bar with a title on the left and
// a status on the right.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the status line, padded to the full width.
func (l Layout) RenderStatusBar(text string) string {
	rendered := theme.StatusBarStyle.
		MaxWidth(l.Width).
		Render(text)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, status line and command bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
	commandBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
		commandBar,
	)
}
