package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/ghn/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#66D9E8", Light: "#0987A0"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top header bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the status line above the command bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps overlay content such as the help screen.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// SectionStyle titles the notifications and pull request sections.
var SectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorCyan)

// IndexStyle renders the row number.
var IndexStyle = lipgloss.NewStyle().Bold(true)

// RepoStyle renders the repository name.
var RepoStyle = lipgloss.NewStyle().Bold(true)

// TimeStyle renders the relative time column.
var TimeStyle = lipgloss.NewStyle().Foreground(ColorGray)

// ReadStyle dims rows for notifications that are already read.
var ReadStyle = lipgloss.NewStyle().Foreground(ColorGray)

// UnreadMarkerStyle renders the unread dot.
var UnreadMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)

// PromptStyle renders the command bar prompt.
var PromptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorSubtle)

// ErrorStyle renders sticky error statuses.
var ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

// ActionColor returns the preview color of a pending action.
func ActionColor(a model.Action) lipgloss.TerminalColor {
	switch a {
	case model.ActionOpen:
		return ColorBlue
	case model.ActionYank, model.ActionPrettyCopy:
		return ColorYellow
	case model.ActionRead:
		return ColorGray
	case model.ActionDone:
		return ColorGreen
	case model.ActionUnsubscribe:
		return ColorRed
	case model.ActionReview:
		return ColorMagenta
	case model.ActionBranch:
		return ColorCyan
	default:
		return lipgloss.NoColor{}
	}
}

// SubjectStatusStyle returns the badge style for a subject status.
func SubjectStatusStyle(s model.SubjectStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch s {
	case model.StatusMerged:
		return base.Foreground(ColorMagenta)
	case model.StatusClosed:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// CIIndicator returns the glyph and style for a CI rollup.
func CIIndicator(s model.CIStatus) (string, lipgloss.Style) {
	base := lipgloss.NewStyle().Bold(true)

	switch s {
	case model.CISuccess:
		return "✓", base.Foreground(ColorGreen)
	case model.CIPending:
		return "↻", base.Foreground(ColorYellow)
	default:
		return "✗", base.Foreground(ColorRed)
	}
}

// ReviewIndicator returns the glyph and style for a review decision.
func ReviewIndicator(r model.ReviewStatus) (string, lipgloss.Style) {
	base := lipgloss.NewStyle().Bold(true)

	switch r {
	case model.ReviewApproved:
		return "A", base.Foreground(ColorGreen)
	case model.ReviewChangesRequested:
		return "X", base.Foreground(ColorRed)
	default:
		return "?", base.Foreground(ColorYellow)
	}
}

// KindStyle returns a color-coded style for a subject kind label.
func KindStyle(kind model.SubjectKind) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch kind {
	case model.KindPullRequest:
		return base.Foreground(ColorMagenta)
	case model.KindIssue:
		return base.Foreground(ColorGreen)
	case model.KindRelease:
		return base.Foreground(ColorOrange)
	case model.KindDiscussion:
		return base.Foreground(ColorCyan)
	case model.KindCommit:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}
