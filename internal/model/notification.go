package model

import (
	"strings"
	"time"
)

// SubjectKind identifies what a notification thread is about.
type SubjectKind string

const (
	KindPullRequest SubjectKind = "PullRequest"
	KindIssue       SubjectKind = "Issue"
	KindCommit      SubjectKind = "Commit"
	KindRelease     SubjectKind = "Release"
	KindDiscussion  SubjectKind = "Discussion"
	KindUnknown     SubjectKind = "Unknown"
)

// SubjectStatus is a terminal or pre-review state flag on a subject.
// A subject may carry several (a draft that was closed carries both).
type SubjectStatus string

const (
	StatusDraft  SubjectStatus = "draft"
	StatusMerged SubjectStatus = "merged"
	StatusClosed SubjectStatus = "closed"
)

// Label returns the short badge text shown in the feed.
func (s SubjectStatus) Label() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusMerged:
		return "merged"
	case StatusClosed:
		return "closed"
	default:
		return string(s)
	}
}

// CIStatus is the rolled-up check state of a pull request's head commit.
type CIStatus string

const (
	CISuccess CIStatus = "success"
	CIPending CIStatus = "pending"
	CIFailure CIStatus = "failure"
)

// ReviewStatus mirrors GitHub's review decision on a pull request.
type ReviewStatus string

const (
	ReviewApproved         ReviewStatus = "approved"
	ReviewChangesRequested ReviewStatus = "changes_requested"
	ReviewRequired         ReviewStatus = "review_required"
)

// Subject is the issue, pull request, commit or release a thread refers to.
type Subject struct {
	Title    string
	URL      string
	Kind     SubjectKind
	Statuses []SubjectStatus
	CI       *CIStatus
	Review   *ReviewStatus
	HeadRef  string
}

// IsPullRequest reports whether the subject is a pull request.
func (s Subject) IsPullRequest() bool {
	return s.Kind == KindPullRequest
}

// HasStatus reports whether status is among the subject's flags.
func (s Subject) HasStatus(status SubjectStatus) bool {
	for _, st := range s.Statuses {
		if st == status {
			return true
		}
	}
	return false
}

// EffectiveReview returns the review status to display. A pull request
// that is already merged, closed or still a draft never shows as
// waiting for review.
func (s Subject) EffectiveReview() *ReviewStatus {
	if s.Review == nil {
		return nil
	}
	if *s.Review == ReviewRequired &&
		(s.HasStatus(StatusMerged) || s.HasStatus(StatusClosed) || s.HasStatus(StatusDraft)) {
		return nil
	}
	return s.Review
}

// Repository identifies the repository that owns a subject.
type Repository struct {
	Name     string
	FullName string
	Merge    *MergeSettings
}

// Owner returns the owner part of FullName.
func (r Repository) Owner() string {
	owner, _, _ := strings.Cut(r.FullName, "/")
	return owner
}

// Notification is one GitHub notification thread.
type Notification struct {
	// ID is the REST thread id. It is stable across refreshes and keys
	// the override ledger.
	ID string

	// NodeID is the GraphQL node id used by the read/done mutations.
	NodeID string

	// SubjectID is the GraphQL node id of the subject, when GitHub
	// returns one. Unsubscribing requires it.
	SubjectID string

	Unread     bool
	Reason     string
	UpdatedAt  time.Time
	Subject    Subject
	Repository Repository
	URL        string
}

// PullRequest is an open pull request authored by the viewer.
type PullRequest struct {
	ID         string
	UpdatedAt  time.Time
	Subject    Subject
	Repository Repository
	URL        string
}
