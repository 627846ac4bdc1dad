package reconcile

import (
	"sort"
	"time"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/model"
)

// State is the visible triage state. The UI loop owns it exclusively:
// nothing else reads or writes the lists, the ledger or the ignore set.
type State struct {
	Notifications []model.Notification
	PullRequests  []model.PullRequest
	IncludeRead   bool
	Ledger        Ledger
	Ignored       *ignore.Set

	now func() time.Time
}

// New returns an empty state. A nil ignored set is treated as empty.
func New(includeRead bool, ignored *ignore.Set) *State {
	if ignored == nil {
		ignored = ignore.NewSet()
	}
	return &State{
		IncludeRead: includeRead,
		Ledger:      make(Ledger),
		Ignored:     ignored,
		now:         time.Now,
	}
}

// Count returns the number of addressable entries.
func (s *State) Count() int {
	return len(s.Notifications) + len(s.PullRequests)
}

// UnreadCount returns the number of unread notifications on screen.
func (s *State) UnreadCount() int {
	n := 0
	for _, notif := range s.Notifications {
		if notif.Unread {
			n++
		}
	}
	return n
}

// SetData replaces the lists with a fresh fetch: notifications pass
// through the ledger, pull requests through the ignore set, and both are
// sorted newest first.
func (s *State) SetData(notifications []model.Notification, prs []model.PullRequest) {
	merged := Merge(notifications, s.Ledger, s.IncludeRead)
	model.SortNotifications(merged)

	visible := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !s.Ignored.Contains(pr.URL) {
			visible = append(visible, pr)
		}
	}
	model.SortPullRequests(visible)

	s.Notifications = merged
	s.PullRequests = visible
}

// Snapshot returns copies of both lists for handing to another goroutine.
func (s *State) Snapshot() ([]model.Notification, []model.PullRequest) {
	ns := make([]model.Notification, len(s.Notifications))
	copy(ns, s.Notifications)
	prs := make([]model.PullRequest, len(s.PullRequests))
	copy(prs, s.PullRequests)
	return ns, prs
}

// Merge resolves a fetched notification list against the ledger.
//
// An override older than the notification's UpdatedAt is dropped and the
// server state wins. Otherwise Read forces the notification to read, and
// removes it when read items are hidden; Suppress removes it. A Read
// override is also dropped once the server agrees the thread is read and
// the view still shows it.
func Merge(notifications []model.Notification, ledger Ledger, includeRead bool) []model.Notification {
	out := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		o, ok := ledger[n.ID]
		if !ok {
			out = append(out, n)
			continue
		}
		if o.Stale(n.UpdatedAt) {
			delete(ledger, n.ID)
			out = append(out, n)
			continue
		}

		switch o.State {
		case OverrideSuppress:
			continue
		case OverrideRead:
			serverRead := !n.Unread
			n.Unread = false
			if !includeRead {
				continue
			}
			if serverRead {
				delete(ledger, n.ID)
			}
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

// Apply mutates the visible lists to reflect pending as if every action
// had already succeeded. Removals are collected during the scan and
// applied afterwards, highest index first.
func (s *State) Apply(pending command.Pending) {
	now := s.now()
	nCount := len(s.Notifications)

	var dropNotifications, dropPRs []int

	for idx, actions := range pending {
		if idx < 1 {
			continue
		}
		if idx <= nCount {
			if s.applyNotification(idx-1, actions, now) {
				dropNotifications = append(dropNotifications, idx-1)
			}
			continue
		}
		prIdx := idx - nCount - 1
		if prIdx < len(s.PullRequests) && s.applyPullRequest(prIdx, actions) {
			dropPRs = append(dropPRs, prIdx)
		}
	}

	s.Notifications = removeIndices(s.Notifications, dropNotifications)
	s.PullRequests = removeIndices(s.PullRequests, dropPRs)
}

func (s *State) applyNotification(i int, actions []model.Action, now time.Time) bool {
	n := &s.Notifications[i]
	remove := false
	for _, a := range actions {
		switch a {
		case model.ActionOpen, model.ActionRead:
			n.Unread = false
			s.Ledger.Record(n.ID, OverrideRead, now)
			if !s.IncludeRead {
				remove = true
			}
		case model.ActionDone, model.ActionUnsubscribe:
			n.Unread = false
			s.Ledger.Record(n.ID, OverrideSuppress, now)
			remove = true
		}
	}
	return remove
}

func (s *State) applyPullRequest(i int, actions []model.Action) bool {
	pr := s.PullRequests[i]
	for _, a := range actions {
		if a == model.ActionUnsubscribe {
			s.Ignored.Add(pr.URL)
			return true
		}
	}
	return false
}

func removeIndices[T any](items []T, indices []int) []T {
	if len(indices) == 0 {
		return items
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	prev := -1
	for _, i := range indices {
		if i == prev || i < 0 || i >= len(items) {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		prev = i
	}
	return items
}
