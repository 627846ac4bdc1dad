package command

import "github.com/nhle/ghn/internal/model"

// BuildTargets scans the visible entries once and returns the alias
// table. Indices follow the global numbering: notifications first, then
// the viewer's pull requests.
func BuildTargets(notifications []model.Notification, prs []model.PullRequest) Targets {
	targets := make(Targets)

	add := func(idx int, subject model.Subject) {
		for _, st := range subject.Statuses {
			key := model.StatusTarget(st)
			targets[key] = append(targets[key], idx)
		}
		if review := subject.EffectiveReview(); review != nil {
			key := model.ReviewTarget(*review)
			targets[key] = append(targets[key], idx)
		}
	}

	for i, n := range notifications {
		idx := i + 1
		if n.Unread {
			targets[model.TargetUnread] = append(targets[model.TargetUnread], idx)
		}
		add(idx, n.Subject)
	}
	for i, pr := range prs {
		add(len(notifications)+i+1, pr.Subject)
	}

	return targets
}

// Build parses input against the current entries. It is the single entry
// point used for both live preview and submission.
func Build(input string, notifications []model.Notification, prs []model.PullRequest) Pending {
	count := len(notifications) + len(prs)
	pending := Parse(input, count, BuildTargets(notifications, prs))
	return Filter(pending, notifications, prs)
}
