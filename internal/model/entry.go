package model

import "time"

// EntryKind distinguishes the two lists that share the index space.
type EntryKind int

const (
	EntryNotification EntryKind = iota
	EntryPullRequest
)

// Entry is an index-addressable row: either a notification or one of the
// viewer's own pull requests. Exactly one of the pointers is set.
type Entry struct {
	Kind         EntryKind
	Notification *Notification
	PullRequest  *PullRequest
}

// URL returns the subject URL of the entry.
func (e Entry) URL() string {
	if e.Kind == EntryPullRequest {
		return e.PullRequest.URL
	}
	return e.Notification.URL
}

// Subject returns the entry's subject.
func (e Entry) Subject() Subject {
	if e.Kind == EntryPullRequest {
		return e.PullRequest.Subject
	}
	return e.Notification.Subject
}

// Repository returns the owning repository.
func (e Entry) Repository() Repository {
	if e.Kind == EntryPullRequest {
		return e.PullRequest.Repository
	}
	return e.Notification.Repository
}

// UpdatedAt returns the server-reported last activity time.
func (e Entry) UpdatedAt() time.Time {
	if e.Kind == EntryPullRequest {
		return e.PullRequest.UpdatedAt
	}
	return e.Notification.UpdatedAt
}

// EntryAt resolves a 1-based global index. Indices up to
// len(notifications) address notifications; the rest address pull
// requests by offset. Index 0 and anything past the end resolve to false.
func EntryAt(index int, notifications []Notification, prs []PullRequest) (Entry, bool) {
	if index <= 0 {
		return Entry{}, false
	}
	if index <= len(notifications) {
		return Entry{Kind: EntryNotification, Notification: &notifications[index-1]}, true
	}
	offset := index - len(notifications) - 1
	if offset < len(prs) {
		return Entry{Kind: EntryPullRequest, PullRequest: &prs[offset]}, true
	}
	return Entry{}, false
}
