// Package reconcile applies triage actions to the visible lists before
// the server confirms them, and merges later refreshes against a ledger
// of those local decisions so stale fetches cannot revive them.
package reconcile

import "time"

// OverrideState is a locally applied decision about a notification.
type OverrideState int

const (
	// OverrideRead forces the notification to read.
	OverrideRead OverrideState = iota + 1
	// OverrideSuppress hides the notification.
	OverrideSuppress
)

func (s OverrideState) String() string {
	switch s {
	case OverrideRead:
		return "read"
	case OverrideSuppress:
		return "suppress"
	default:
		return "none"
	}
}

// Override is one ledger entry.
type Override struct {
	State      OverrideState
	RecordedAt time.Time
}

// Ledger maps notification thread ids to overrides. It is keyed by the
// stable thread id, never by a screen index.
type Ledger map[string]Override

// Record stores state for id at time at. Suppress dominates Read: an
// existing Suppress is never downgraded, though its timestamp advances.
func (l Ledger) Record(id string, state OverrideState, at time.Time) {
	if prev, ok := l[id]; ok && prev.State == OverrideSuppress {
		state = OverrideSuppress
	}
	l[id] = Override{State: state, RecordedAt: at}
}

// Stale reports whether the server has activity newer than the override.
// Comparison is at second granularity, matching GitHub's timestamps.
func (o Override) Stale(updatedAt time.Time) bool {
	if updatedAt.IsZero() {
		return false
	}
	return updatedAt.Unix() > o.RecordedAt.Unix()
}
