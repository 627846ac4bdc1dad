package app

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/executor"
	"github.com/nhle/ghn/internal/keys"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/reconcile"
	"github.com/nhle/ghn/internal/source"
	appsync "github.com/nhle/ghn/internal/sync"
	"github.com/nhle/ghn/internal/theme"
	"github.com/nhle/ghn/internal/ui"
	cmdbar "github.com/nhle/ghn/internal/ui/command"
	"github.com/nhle/ghn/internal/ui/feed"
	helpview "github.com/nhle/ghn/internal/ui/help"
)

const tickInterval = 500 * time.Millisecond

const authStatus = "GitHub authentication failed. Run `ghn auth login`."

// Poller is the background refresh loop.
type Poller interface {
	Start() tea.Cmd
	Refresh()
	Stop()
	WaitForNextResult() tea.Cmd
}

// Runner executes a batch of actions against snapshots of both lists.
type Runner interface {
	Run(ctx context.Context, pending command.Pending, ns []model.Notification, prs []model.PullRequest) executor.Summary
}

// Reviewer builds the foreground review process for a pull request.
type Reviewer interface {
	ReviewCommand(repoFullName, url string) (*exec.Cmd, error)
}

// Deps are the collaborators of the root model.
type Deps struct {
	Poller   Poller
	Runner   Runner
	Reviewer Reviewer
	// Editor names the review editor in status messages.
	Editor string
	// State is the initial visible state, including the loaded ignore set.
	State *reconcile.State
	// Status is shown sticky on the first frame, e.g. an ignore-list load
	// failure.
	Status string
}

type tickMsg time.Time

type executedMsg struct {
	summary executor.Summary
}

type reviewFinishedMsg struct {
	err error
}

// Model is the root Bubble Tea model. It is the only owner of the
// visible state: the poller and the executor hand results back as
// messages and never touch it directly.
type Model struct {
	deps  Deps
	state *reconcile.State
	keys  *keys.KeyMap

	layout   ui.Layout
	feed     feed.Model
	input    cmdbar.Model
	helpView helpview.Model
	spinner  spinner.Model

	pending command.Pending
	now     time.Time

	status       string
	statusSticky bool

	loading    bool
	refreshing bool
	executing  int
	spinning   bool
	showHelp   bool
	lastFetch  time.Time
	ready      bool
}

// New creates the root model.
func New(deps Deps) Model {
	km := keys.DefaultKeyMap()
	state := deps.State
	if state == nil {
		state = reconcile.New(false, nil)
	}
	if deps.Editor == "" {
		deps.Editor = "nvim"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deps:     deps,
		state:    state,
		keys:     km,
		layout:   ui.NewLayout(80, 24),
		feed:     feed.New(km, 80, 21),
		input:    cmdbar.New(km, 80),
		helpView: helpview.New(km, 80, 21),
		spinner:  sp,
		pending:  command.Pending{},
		now:      time.Now(),
		loading:  true,
		spinning: true,
	}
	if deps.Status != "" {
		m.setStatus(deps.Status, true)
	}
	m.syncFeed()
	return m
}

// Init starts the poller, the relative-time tick and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.deps.Poller.Start(),
		tick(),
		m.input.Init(),
		m.spinner.Tick,
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages. It never blocks: network, file and process
// work runs inside returned commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.feed.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.input.SetSize(m.layout.ContentWidth())
		m.helpView.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.syncFeed()
		return m, tick()

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appsync.RefreshResultMsg:
		m.handleRefresh(msg)
		return m, m.deps.Poller.WaitForNextResult()

	case executedMsg:
		m.handleExecuted(msg.summary)
		return m, nil

	case reviewFinishedMsg:
		if msg.err != nil {
			log.Warn("review exited with error", "err", msg.err)
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus("ReviewPR finished", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.deps.Poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.deps.Poller.Refresh()
		m.refreshing = true
		m.setStatus("Refreshing...", false)
		return m, m.startSpinner()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.clearCommands()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updatePending()
	return m, cmd
}

// submit turns the command line into work: review goes to the
// foreground, everything else is applied optimistically and dispatched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	ns, prs := m.state.Notifications, m.state.PullRequests
	pending := command.Build(m.input.Value(), ns, prs)
	if len(pending) == 0 {
		m.setStatus("No commands to run", false)
		m.clearCommands()
		return m, nil
	}

	review, pending, err := command.SplitReview(pending, ns, prs)
	if err != nil {
		m.setStatus(err.Error(), true)
		m.clearCommands()
		return m, nil
	}

	var cmds []tea.Cmd
	if review != nil {
		cmds = append(cmds, m.reviewCmd(review))
	}

	if len(pending) == 0 {
		m.setStatus(fmt.Sprintf("Opening ReviewPR in %s...", m.deps.Editor), false)
		m.clearCommands()
		return m, tea.Batch(cmds...)
	}

	snapNs, snapPRs := m.state.Snapshot()
	total := pending.Count()
	m.state.Apply(pending)
	m.setStatus(fmt.Sprintf("Executing %d actions...", total), false)
	m.clearCommands()
	m.executing++

	runner := m.deps.Runner
	cmds = append(cmds, func() tea.Msg {
		return executedMsg{summary: runner.Run(context.Background(), pending, snapNs, snapPRs)}
	}, m.startSpinner())

	return m, tea.Batch(cmds...)
}

func (m Model) reviewCmd(req *command.ReviewRequest) tea.Cmd {
	c, err := m.deps.Reviewer.ReviewCommand(req.RepoFullName, req.URL)
	if err != nil {
		return func() tea.Msg { return reviewFinishedMsg{err: err} }
	}
	log.Info("launching review", "repo", req.RepoFullName, "url", req.URL, "dir", c.Dir)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return reviewFinishedMsg{err: err}
	})
}

func (m *Model) handleRefresh(msg appsync.RefreshResultMsg) {
	m.loading = false
	m.refreshing = false

	if msg.Err != nil {
		switch {
		case source.IsAuthError(msg.Err):
			log.Error("refresh rejected", "err", msg.Err)
			m.setStatus(authStatus, true)
		case source.IsRateLimited(msg.Err):
			m.setStatus(executor.CleanErrorMessage(msg.Err.Error()), false)
		default:
			m.setStatus(executor.CleanErrorMessage(msg.Err.Error()), true)
		}
		return
	}

	m.state.SetData(msg.Notifications, msg.PullRequests)
	m.lastFetch = msg.At
	if !m.statusSticky {
		m.status = ""
	}
	m.updatePending()
}

func (m *Model) handleExecuted(s executor.Summary) {
	if m.executing > 0 {
		m.executing--
	}
	text, refresh, sticky := s.Status()
	m.setStatus(text, sticky)
	if refresh {
		m.deps.Poller.Refresh()
	}
}

func (m *Model) setStatus(text string, sticky bool) {
	m.status = text
	m.statusSticky = sticky
}

func (m *Model) clearCommands() {
	m.input.Reset()
	m.pending = command.Pending{}
	m.syncFeed()
}

// updatePending recomputes the live preview from the current buffer.
func (m *Model) updatePending() {
	m.pending = command.Build(m.input.Value(), m.state.Notifications, m.state.PullRequests)
	m.syncFeed()
}

func (m *Model) syncFeed() {
	m.feed.SetData(feed.Data{
		Notifications: m.state.Notifications,
		PullRequests:  m.state.PullRequests,
		Pending:       m.pending,
		Now:           m.now,
	})
}

func (m Model) busy() bool {
	return m.loading || m.refreshing || m.executing > 0
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := "ghn"
	if n := m.state.UnreadCount(); n > 0 {
		title = fmt.Sprintf("ghn [%d unread]", n)
	}
	header := m.layout.RenderHeader(title, m.headerStatus())

	content := m.feed.View()
	if m.showHelp {
		content = m.helpView.View()
	}

	statusLine := helpview.CommandReference()
	if m.status != "" {
		status := m.status
		if m.statusSticky {
			status = theme.ErrorStyle.Render(status)
		}
		statusLine += "  |  " + status
	}

	return m.layout.RenderWithFrame(
		header,
		content,
		m.layout.RenderStatusBar(statusLine),
		m.input.View(),
	)
}

func (m Model) headerStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " loading"
	case m.executing > 0:
		return m.spinner.View() + " executing"
	case m.refreshing:
		return m.spinner.View() + " refreshing"
	case !m.lastFetch.IsZero():
		return "updated " + model.FormatRelative(m.lastFetch, m.now) + " ago"
	default:
		return ""
	}
}
