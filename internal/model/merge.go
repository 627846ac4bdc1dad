package model

// MergeMethod is a repository merge strategy.
type MergeMethod string

const (
	MergeMethodMerge  MergeMethod = "MERGE"
	MergeMethodSquash MergeMethod = "SQUASH"
	MergeMethodRebase MergeMethod = "REBASE"
)

// MergeSettings captures which merge strategies a repository allows.
type MergeSettings struct {
	Default       MergeMethod
	MergeAllowed  bool
	SquashAllowed bool
	RebaseAllowed bool
	AutoAllowed   bool
}

// DefaultOrFallback returns the viewer's default method when the
// repository allows it, otherwise the first allowed of merge, squash,
// rebase. It returns false when nothing is allowed.
func (s MergeSettings) DefaultOrFallback() (MergeMethod, bool) {
	if s.Default != "" && s.allows(s.Default) {
		return s.Default, true
	}
	for _, m := range []MergeMethod{MergeMethodMerge, MergeMethodSquash, MergeMethodRebase} {
		if s.allows(m) {
			return m, true
		}
	}
	return "", false
}

func (s MergeSettings) allows(m MergeMethod) bool {
	switch m {
	case MergeMethodMerge:
		return s.MergeAllowed
	case MergeMethodSquash:
		return s.SquashAllowed
	case MergeMethodRebase:
		return s.RebaseAllowed
	default:
		return false
	}
}
