// Package sync runs the background refresh loop that feeds fresh
// notifications and pull requests into the UI.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/source"
)

// RefreshResultMsg is a tea.Msg carrying one completed fetch.
type RefreshResultMsg struct {
	Notifications []model.Notification
	PullRequests  []model.PullRequest
	Err           error
	At            time.Time
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

const (
	resultBuffer  = 4
	defaultPeriod = 60 * time.Second
)

// Poller fetches on a fixed interval or when asked to, whichever comes
// first. Only one fetch is ever in flight.
type Poller struct {
	fetcher     source.Fetcher
	includeRead bool
	interval    time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	stopped bool
}

// New creates a Poller. A non-positive interval means 60 seconds.
func New(fetcher source.Fetcher, interval time.Duration, includeRead bool) *Poller {
	if interval <= 0 {
		interval = defaultPeriod
	}
	return &Poller{
		fetcher:     fetcher,
		includeRead: includeRead,
		interval:    interval,
		resultCh:    make(chan RefreshResultMsg, resultBuffer),
		triggerCh:   make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a tea.Cmd that waits
// for the first result. Calling Start twice returns nil.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine. It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	close(p.stopCh)
	p.stopped = true
	p.running = false
}

// Refresh requests an immediate fetch. Requests made while one is
// already pending coalesce into it; Refresh never blocks.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch()
		case <-p.triggerCh:
			p.fetch()
			ticker.Reset(p.interval)
		}
	}
}

func (p *Poller) fetch() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	start := time.Now()
	notifications, prs, err := source.FetchAll(ctx, p.fetcher, p.includeRead)
	if err != nil {
		log.Warn("refresh failed", "err", err, "took", time.Since(start))
	} else {
		log.Debug("refresh complete",
			"notifications", len(notifications), "prs", len(prs), "took", time.Since(start))
	}

	p.sendResult(RefreshResultMsg{
		Notifications: notifications,
		PullRequests:  prs,
		Err:           err,
		At:            time.Now(),
	})
}

// sendResult blocks until the UI has room for the result or the poller
// is stopped.
func (p *Poller) sendResult(msg RefreshResultMsg) {
	select {
	case p.resultCh <- msg:
	case <-p.stopCh:
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.stopCh:
			return nil
		}
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it after handling each RefreshResultMsg.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
