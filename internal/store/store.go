// Package store persists local triage state in SQLite: the ignored pull
// request list (when configured as the ignore backend) and a log of
// executed actions.
package store

import (
	"context"
	"time"

	"github.com/nhle/ghn/internal/executor"
)

// ActionRecord is one logged outcome of an executed action.
type ActionRecord struct {
	ID        string    `db:"id"`
	BatchID   string    `db:"batch_id"`
	Index     int       `db:"entry_index"`
	EntryKind string    `db:"entry_kind"`
	Action    string    `db:"action"`
	URL       string    `db:"url"`
	Remote    bool      `db:"remote"`
	Error     string    `db:"error"`
	CreatedAt time.Time `db:"created_at"`
}

// Failed reports whether the action returned an error.
func (r ActionRecord) Failed() bool { return r.Error != "" }

// IgnoredPR is one row of the ignore list.
type IgnoredPR struct {
	ID        string    `db:"id"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}

// Store defines the persistence interface.
type Store interface {
	// === Ignored pull requests ===

	IgnoredPRs(ctx context.Context) ([]IgnoredPR, error)
	AddIgnoredPR(ctx context.Context, url string) (bool, error)
	ClearIgnoredPRs(ctx context.Context) error

	// === Action history ===

	RecordOutcomes(ctx context.Context, batchID string, outcomes []executor.Outcome) error
	RecentActions(ctx context.Context, limit int) ([]ActionRecord, error)
	PruneActions(ctx context.Context, before time.Time) (int64, error)

	Close() error
}
