package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/theme"
)

const (
	ellipsis    = "…"
	maxKindCols = 12
	timeCols    = 4
	minRepoCols = 8
)

// Data is everything one frame of the feed depends on.
type Data struct {
	Notifications []model.Notification
	PullRequests  []model.PullRequest
	Pending       command.Pending
	Now           time.Time
}

type row struct {
	index   int
	unread  bool
	read    bool
	subject model.Subject
	repo    string
	updated time.Time
}

// Render draws every entry, notifications first, then the viewer's pull
// requests under their own heading. Indices are global across both.
func Render(d Data, width int) string {
	if width < 20 {
		width = 20
	}
	if len(d.Notifications) == 0 && len(d.PullRequests) == 0 {
		return theme.HelpStyle.Render("Nothing to triage.")
	}

	total := len(d.Notifications) + len(d.PullRequests)
	idxCols := len(strconv.Itoa(total))
	if idxCols < 2 {
		idxCols = 2
	}

	var b strings.Builder
	if len(d.Notifications) > 0 {
		b.WriteString(theme.SectionStyle.Render("Notifications"))
		b.WriteByte('\n')
		for i, n := range d.Notifications {
			r := row{
				index:   i + 1,
				unread:  n.Unread,
				read:    !n.Unread,
				subject: n.Subject,
				repo:    n.Repository.FullName,
				updated: n.UpdatedAt,
			}
			b.WriteString(renderRow(r, d.Pending[r.index], d.Now, idxCols, width))
		}
	}
	if len(d.PullRequests) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(theme.SectionStyle.Render("My pull requests"))
		b.WriteByte('\n')
		for i, pr := range d.PullRequests {
			r := row{
				index:   len(d.Notifications) + i + 1,
				subject: pr.Subject,
				repo:    pr.Repository.FullName,
				updated: pr.UpdatedAt,
			}
			b.WriteString(renderRow(r, d.Pending[r.index], d.Now, idxCols, width))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRow(r row, pending []model.Action, now time.Time, idxCols, width int) string {
	base := lipgloss.NewStyle()
	if r.read {
		base = theme.ReadStyle
	}
	if len(pending) > 0 {
		base = lipgloss.NewStyle().Foreground(theme.ActionColor(pending[len(pending)-1]))
	}

	marker := " "
	if r.unread {
		marker = theme.UnreadMarkerStyle.Render("*")
	}
	prefix := theme.IndexStyle.Render(padLeft(strconv.Itoa(r.index), idxCols)) + "  " + marker + "  "
	prefixCols := idxCols + 5

	var badges []string
	badgeCols := 0
	for _, st := range r.subject.Statuses {
		label := "[" + st.Label() + "]"
		badges = append(badges, theme.SubjectStatusStyle(st).Render(label))
		badgeCols += len(label) + 1
	}

	var meta []string
	metaCols := 0
	if r.subject.CI != nil {
		glyph, style := theme.CIIndicator(*r.subject.CI)
		meta = append(meta, style.Render(glyph))
		metaCols += 2
	}
	if review := r.subject.EffectiveReview(); review != nil {
		glyph, style := theme.ReviewIndicator(*review)
		meta = append(meta, style.Render(glyph))
		metaCols += 2
	}
	kind := truncate.StringWithTail(string(r.subject.Kind), maxKindCols, ellipsis)
	meta = append(meta, theme.KindStyle(r.subject.Kind).Render(kind))
	metaCols += lipgloss.Width(kind) + 1
	when := padLeft(model.FormatRelative(r.updated, now), timeCols)
	meta = append(meta, theme.TimeStyle.Render(when))
	metaCols += timeCols

	repoCols := width - prefixCols - badgeCols - metaCols - 2
	if repoCols < minRepoCols {
		repoCols = minRepoCols
	}
	repo := padding.String(truncate.StringWithTail(r.repo, uint(repoCols), ellipsis), uint(repoCols))

	header := prefix
	if len(badges) > 0 {
		header += strings.Join(badges, " ") + " "
	}
	header += theme.RepoStyle.Render(repo) + "  " + strings.Join(meta, " ")

	titleCols := width - prefixCols
	if titleCols < 1 {
		titleCols = 1
	}
	title := strings.Repeat(" ", prefixCols) +
		truncate.StringWithTail(r.subject.Title, uint(titleCols), ellipsis)

	return base.Render(header) + "\n" + base.Render(title) + "\n"
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
