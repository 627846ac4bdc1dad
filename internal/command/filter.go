package command

import (
	"errors"
	"strings"

	"github.com/nhle/ghn/internal/model"
)

// Allowed reports whether action may run against entry.
func Allowed(entry model.Entry, action model.Action) bool {
	switch action {
	case model.ActionBranch, model.ActionPrettyCopy, model.ActionReview:
		if !entry.Subject().IsPullRequest() {
			return false
		}
	}

	if entry.Kind == model.EntryPullRequest {
		switch action {
		case model.ActionRead, model.ActionDone:
			return false
		}
	}
	return true
}

// Filter drops actions that are illegal for the entry at each index.
// Indices with nothing left, or that resolve to no entry, are removed.
func Filter(pending Pending, notifications []model.Notification, prs []model.PullRequest) Pending {
	out := make(Pending, len(pending))
	for idx, actions := range pending {
		entry, ok := model.EntryAt(idx, notifications, prs)
		if !ok {
			continue
		}
		var kept []model.Action
		for _, a := range actions {
			if Allowed(entry, a) {
				kept = append(kept, a)
			}
		}
		if len(kept) > 0 {
			out[idx] = kept
		}
	}
	return out
}

// ReviewRequest identifies the single pull request to open for review.
type ReviewRequest struct {
	RepoFullName string
	URL          string
}

var (
	ErrReviewMultiple   = errors.New("ReviewPR expects a single target")
	ErrReviewOutOfRange = errors.New("ReviewPR target is out of range")
	ErrReviewNotPR      = errors.New("ReviewPR only supports pull request URLs")
)

// SplitReview pulls the Review action out of pending. At most one index
// may carry it. The returned map holds every other action.
func SplitReview(pending Pending, notifications []model.Notification, prs []model.PullRequest) (*ReviewRequest, Pending, error) {
	reviewIdx := 0
	for idx, actions := range pending {
		for _, a := range actions {
			if a != model.ActionReview {
				continue
			}
			if reviewIdx != 0 && reviewIdx != idx {
				return nil, nil, ErrReviewMultiple
			}
			reviewIdx = idx
		}
	}

	var req *ReviewRequest
	if reviewIdx != 0 {
		entry, ok := model.EntryAt(reviewIdx, notifications, prs)
		if !ok {
			return nil, nil, ErrReviewOutOfRange
		}
		if !strings.Contains(entry.URL(), "/pull/") {
			return nil, nil, ErrReviewNotPR
		}
		req = &ReviewRequest{
			RepoFullName: entry.Repository().FullName,
			URL:          entry.URL(),
		}
	}

	rest := make(Pending, len(pending))
	for idx, actions := range pending {
		var kept []model.Action
		for _, a := range actions {
			if a != model.ActionReview {
				kept = append(kept, a)
			}
		}
		if len(kept) > 0 {
			rest[idx] = kept
		}
	}
	return req, rest, nil
}
