package model

// Action is one command-language verb. Actions are data: the executor
// decides what each one means for a given entry kind.
type Action rune

const (
	ActionOpen        Action = 'o'
	ActionYank        Action = 'y'
	ActionPrettyCopy  Action = 'Y'
	ActionRead        Action = 'r'
	ActionDone        Action = 'd'
	ActionUnsubscribe Action = 'q'
	ActionReview      Action = 'p'
	ActionBranch      Action = 'b'
)

// Actions lists every action in help order.
var Actions = []Action{
	ActionOpen,
	ActionYank,
	ActionPrettyCopy,
	ActionRead,
	ActionDone,
	ActionUnsubscribe,
	ActionReview,
	ActionBranch,
}

// ParseAction maps a mnemonic character to its action.
func ParseAction(r rune) (Action, bool) {
	for _, a := range Actions {
		if rune(a) == r {
			return a, true
		}
	}
	return 0, false
}

// Rune returns the mnemonic character.
func (a Action) Rune() rune { return rune(a) }

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionYank:
		return "yank"
	case ActionPrettyCopy:
		return "pretty-copy"
	case ActionRead:
		return "read"
	case ActionDone:
		return "done"
	case ActionUnsubscribe:
		return "unsubscribe"
	case ActionReview:
		return "review"
	case ActionBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Target alias characters. Each expands to a set of indices computed from
// the entries currently on screen.
const (
	TargetUnread           = 'u'
	TargetMerged           = 'm'
	TargetClosed           = 'c'
	TargetDraft            = 'f'
	TargetReviewRequired   = '?'
	TargetApproved         = 'a'
	TargetChangesRequested = 'x'
)

// IsTarget reports whether r is a target alias character.
func IsTarget(r rune) bool {
	switch r {
	case TargetUnread, TargetMerged, TargetClosed, TargetDraft,
		TargetReviewRequired, TargetApproved, TargetChangesRequested:
		return true
	}
	return false
}

// StatusTarget returns the alias character for a subject status.
func StatusTarget(s SubjectStatus) rune {
	switch s {
	case StatusMerged:
		return TargetMerged
	case StatusClosed:
		return TargetClosed
	default:
		return TargetDraft
	}
}

// ReviewTarget returns the alias character for a review status.
func ReviewTarget(r ReviewStatus) rune {
	switch r {
	case ReviewApproved:
		return TargetApproved
	case ReviewChangesRequested:
		return TargetChangesRequested
	default:
		return TargetReviewRequired
	}
}
