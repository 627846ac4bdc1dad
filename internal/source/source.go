// Package source defines the remote service the triage loop talks to and
// the typed errors its clients return.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/ghn/internal/model"
)

// AuthError indicates the token was rejected or lacks a required scope.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("GitHub authentication failed (%d). %s", e.Status, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// RateLimitError indicates the API kept answering 429 after retries.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "GitHub rate limited. Retrying later."
}

// IsRateLimited reports whether err (or any error in its chain) is a
// RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// NotificationsPage is one fetch of the viewer's notification threads.
type NotificationsPage struct {
	Notifications []model.Notification
	Viewer        string
}

// Fetcher reads the viewer's feed.
type Fetcher interface {
	// FetchNotifications returns unread threads, plus read ones when
	// includeRead is set, and the viewer's login.
	FetchNotifications(ctx context.Context, includeRead bool) (*NotificationsPage, error)

	// FetchMyPullRequests returns open pull requests authored by viewer.
	FetchMyPullRequests(ctx context.Context, viewer string) ([]model.PullRequest, error)
}

// Mutator changes notification state on the server. Each call is
// independent; no ordering holds between concurrent calls.
type Mutator interface {
	MarkRead(ctx context.Context, nodeID string) error
	MarkDone(ctx context.Context, nodeID string) error
	Unsubscribe(ctx context.Context, subjectID string) error
}

// Service is the full remote surface.
type Service interface {
	Fetcher
	Mutator
}

// DedupePullRequests drops pull requests that already appear as
// notification subjects, matched by subject id or URL.
func DedupePullRequests(prs []model.PullRequest, notifications []model.Notification) []model.PullRequest {
	ids := make(map[string]struct{})
	urls := make(map[string]struct{})
	for _, n := range notifications {
		if !n.Subject.IsPullRequest() {
			continue
		}
		if n.SubjectID != "" {
			ids[n.SubjectID] = struct{}{}
		}
		urls[n.Subject.URL] = struct{}{}
	}

	out := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if _, ok := ids[pr.ID]; ok {
			continue
		}
		if _, ok := urls[pr.URL]; ok {
			continue
		}
		out = append(out, pr)
	}
	return out
}

// FetchAll fetches notifications then the viewer's pull requests, with
// duplicates removed.
func FetchAll(ctx context.Context, f Fetcher, includeRead bool) ([]model.Notification, []model.PullRequest, error) {
	page, err := f.FetchNotifications(ctx, includeRead)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	prs, err := f.FetchMyPullRequests(ctx, page.Viewer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}
	return page.Notifications, DedupePullRequests(prs, page.Notifications), nil
}
