package github

import (
	"strings"

	"github.com/nhle/ghn/internal/model"
)

func mapNotification(t NotificationThread) model.Notification {
	kind := SubjectKindFromURL(t.URL)
	subj := t.OptionalSubject

	subject := model.Subject{
		Title: t.Title,
		URL:   t.URL,
		Kind:  kind,
	}
	repo := model.Repository{FullName: RepoFromURL(t.URL)}
	n := model.Notification{
		ID:        t.ThreadID,
		NodeID:    t.ID,
		Unread:    t.IsUnread,
		Reason:    "subscribed",
		UpdatedAt: model.ParseUpdatedAt(t.LastUpdatedAt),
		URL:       t.URL,
	}
	if t.Reason != nil {
		n.Reason = *t.Reason
	}

	if subj != nil {
		n.SubjectID = subj.ID
		switch kind {
		case model.KindPullRequest:
			if subj.IsDraft {
				subject.Statuses = append(subject.Statuses, model.StatusDraft)
			}
			switch strings.ToUpper(subj.State) {
			case "MERGED":
				subject.Statuses = append(subject.Statuses, model.StatusMerged)
			case "CLOSED":
				subject.Statuses = append(subject.Statuses, model.StatusClosed)
			}
			subject.CI = mapCI(subj.Commits.RollupState())
			subject.Review = mapReview(subj.ReviewDecision)
			subject.HeadRef = subj.HeadRefName
		case model.KindIssue:
			if strings.EqualFold(subj.State, "CLOSED") {
				subject.Statuses = append(subject.Statuses, model.StatusClosed)
			}
		}
		if subj.Repository != nil {
			repo = mapRepository(*subj.Repository)
		}
	}
	if repo.Name == "" {
		_, repo.Name, _ = strings.Cut(repo.FullName, "/")
	}

	n.Subject = subject
	n.Repository = repo
	return n
}

func mapPullRequest(pr PullRequest) model.PullRequest {
	subject := model.Subject{
		Title:   pr.Title,
		URL:     pr.URL,
		Kind:    model.KindPullRequest,
		CI:      mapCI(pr.Commits.RollupState()),
		Review:  mapReview(pr.ReviewDecision),
		HeadRef: pr.HeadRefName,
	}
	if pr.IsDraft {
		subject.Statuses = []model.SubjectStatus{model.StatusDraft}
	}
	return model.PullRequest{
		ID:         pr.ID,
		UpdatedAt:  model.ParseUpdatedAt(pr.UpdatedAt),
		Subject:    subject,
		Repository: mapRepository(pr.Repository),
		URL:        pr.URL,
	}
}

func mapRepository(r Repository) model.Repository {
	return model.Repository{
		Name:     r.Name,
		FullName: r.NameWithOwner,
		Merge: &model.MergeSettings{
			Default:       model.MergeMethod(strings.ToUpper(r.ViewerDefaultMergeMethod)),
			MergeAllowed:  r.MergeCommitAllowed,
			SquashAllowed: r.SquashMergeAllowed,
			RebaseAllowed: r.RebaseMergeAllowed,
			AutoAllowed:   r.AutoMergeAllowed,
		},
	}
}

func mapCI(state string) *model.CIStatus {
	var s model.CIStatus
	switch strings.ToUpper(state) {
	case "SUCCESS", "NEUTRAL", "SKIPPED":
		s = model.CISuccess
	case "PENDING", "EXPECTED":
		s = model.CIPending
	case "FAILURE", "ERROR", "CANCELLED", "TIMED_OUT":
		s = model.CIFailure
	default:
		return nil
	}
	return &s
}

func mapReview(decision string) *model.ReviewStatus {
	var r model.ReviewStatus
	switch strings.ToUpper(decision) {
	case "APPROVED":
		r = model.ReviewApproved
	case "CHANGES_REQUESTED":
		r = model.ReviewChangesRequested
	case "REVIEW_REQUIRED":
		r = model.ReviewRequired
	default:
		return nil
	}
	return &r
}

// RepoFromURL extracts "owner/repo" from a github.com URL, or
// "unknown/unknown" when the URL has no such segments.
func RepoFromURL(url string) string {
	parts := strings.Split(url, "/")
	for i, part := range parts {
		if part == "github.com" && i+2 < len(parts) {
			return parts[i+1] + "/" + parts[i+2]
		}
	}
	return "unknown/unknown"
}

// SubjectKindFromURL classifies a subject by its URL path.
func SubjectKindFromURL(url string) model.SubjectKind {
	switch {
	case strings.Contains(url, "/pull/"):
		return model.KindPullRequest
	case strings.Contains(url, "/issues/"):
		return model.KindIssue
	case strings.Contains(url, "/commit/"):
		return model.KindCommit
	case strings.Contains(url, "/releases/"):
		return model.KindRelease
	case strings.Contains(url, "/discussions/"):
		return model.KindDiscussion
	default:
		return model.KindUnknown
	}
}
