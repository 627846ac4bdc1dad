// Package github implements source.Service against the GitHub GraphQL API.
package github

import (
	"context"
	"strings"

	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/source"
)

const unknownViewer = "unknown"

// Adapter implements source.Service for GitHub.
type Adapter struct {
	client *Client
}

var _ source.Service = (*Adapter)(nil)

// NewAdapter creates a GitHub adapter. An empty endpoint means
// DefaultEndpoint.
func NewAdapter(endpoint, token string) *Adapter {
	return &Adapter{client: NewClient(endpoint, token)}
}

// FetchNotifications returns the viewer's notification threads.
func (a *Adapter) FetchNotifications(
	ctx context.Context,
	includeRead bool,
) (*source.NotificationsPage, error) {
	statuses := []string{"UNREAD"}
	if includeRead {
		statuses = append(statuses, "READ")
	}

	var data *NotificationsData
	if err := a.client.Do(ctx, notificationsQuery, map[string]any{
		"statuses": statuses,
	}, &data); err != nil {
		return nil, err
	}

	page := &source.NotificationsPage{Viewer: unknownViewer}
	if data == nil {
		return page, nil
	}
	page.Viewer = data.Viewer.Login
	for _, thread := range data.Viewer.NotificationThreads.Nodes {
		page.Notifications = append(page.Notifications, mapNotification(thread))
	}
	return page, nil
}

// FetchMyPullRequests returns open pull requests authored by viewer,
// skipping archived repositories.
func (a *Adapter) FetchMyPullRequests(
	ctx context.Context,
	viewer string,
) ([]model.PullRequest, error) {
	viewer = strings.TrimSpace(viewer)
	if viewer == "" || viewer == unknownViewer {
		return nil, nil
	}

	var data *SearchData
	if err := a.client.Do(ctx, myPullRequestsQuery, map[string]any{
		"query": "is:pr is:open author:" + viewer,
	}, &data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var prs []model.PullRequest
	for _, node := range data.Search.Nodes {
		if node == nil || node.ID == "" || node.Repository.IsArchived {
			continue
		}
		prs = append(prs, mapPullRequest(*node))
	}
	return prs, nil
}

// MarkRead marks the thread with the given node id as read.
func (a *Adapter) MarkRead(ctx context.Context, nodeID string) error {
	return a.mutate(ctx, markReadMutation, map[string]any{"id": nodeID})
}

// MarkDone marks the thread with the given node id as done.
func (a *Adapter) MarkDone(ctx context.Context, nodeID string) error {
	return a.mutate(ctx, markDoneMutation, map[string]any{"id": nodeID})
}

// Unsubscribe stops notifications for the given subject node id.
func (a *Adapter) Unsubscribe(ctx context.Context, subjectID string) error {
	return a.mutate(ctx, unsubscribeMutation, map[string]any{"ids": []string{subjectID}})
}

func (a *Adapter) mutate(ctx context.Context, query string, vars map[string]any) error {
	if err := a.client.Do(ctx, query, vars, nil); err != nil {
		if source.IsAuthError(err) || source.IsRateLimited(err) {
			return err
		}
		return &mutationError{err: err}
	}
	return nil
}

type mutationError struct{ err error }

func (e *mutationError) Error() string { return "failed to send mutation: " + e.err.Error() }
func (e *mutationError) Unwrap() error { return e.err }
