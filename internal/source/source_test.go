package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nhle/ghn/internal/model"
)

func TestIsAuthErrorWrapped(t *testing.T) {
	err := fmt.Errorf("fetching: %w", &AuthError{Status: 401, Message: "bad credentials"})
	if !IsAuthError(err) {
		t.Error("IsAuthError(wrapped) = false, want true")
	}
	if IsAuthError(errors.New("plain")) {
		t.Error("IsAuthError(plain) = true, want false")
	}
	if !IsRateLimited(fmt.Errorf("x: %w", &RateLimitError{})) {
		t.Error("IsRateLimited(wrapped) = false, want true")
	}
}

func TestDedupePullRequests(t *testing.T) {
	notifications := []model.Notification{
		{SubjectID: "PR_1", Subject: model.Subject{Kind: model.KindPullRequest, URL: "https://github.com/a/b/pull/1"}},
		{Subject: model.Subject{Kind: model.KindPullRequest, URL: "https://github.com/a/b/pull/2"}},
		{SubjectID: "PR_3", Subject: model.Subject{Kind: model.KindIssue, URL: "https://github.com/a/b/issues/3"}},
	}
	prs := []model.PullRequest{
		{ID: "PR_1", URL: "https://github.com/a/b/pull/1"},
		{ID: "PR_2", URL: "https://github.com/a/b/pull/2"},
		{ID: "PR_3", URL: "https://github.com/a/b/pull/3"},
	}

	got := DedupePullRequests(prs, notifications)
	if len(got) != 1 || got[0].ID != "PR_3" {
		t.Errorf("DedupePullRequests() = %+v, want only PR_3", got)
	}
}

type fakeFetcher struct {
	viewer string
	err    error
	gotFor string
}

func (f *fakeFetcher) FetchNotifications(ctx context.Context, includeRead bool) (*NotificationsPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &NotificationsPage{Viewer: f.viewer}, nil
}

func (f *fakeFetcher) FetchMyPullRequests(ctx context.Context, viewer string) ([]model.PullRequest, error) {
	f.gotFor = viewer
	return []model.PullRequest{{ID: "x"}}, nil
}

func TestFetchAll(t *testing.T) {
	f := &fakeFetcher{viewer: "octocat"}
	_, prs, err := FetchAll(context.Background(), f, false)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if f.gotFor != "octocat" || len(prs) != 1 {
		t.Errorf("FetchAll viewer = %q prs = %d, want octocat and 1", f.gotFor, len(prs))
	}

	f.err = &AuthError{Status: 401, Message: "nope"}
	_, _, err = FetchAll(context.Background(), f, false)
	if !IsAuthError(err) {
		t.Errorf("FetchAll err = %v, want auth error", err)
	}
}
