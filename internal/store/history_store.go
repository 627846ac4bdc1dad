package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ghn/internal/executor"
	"github.com/nhle/ghn/internal/model"
)

// RecordOutcomes appends one row per outcome in a single transaction.
func (s *SQLiteStore) RecordOutcomes(
	ctx context.Context,
	batchID string,
	outcomes []executor.Outcome,
) error {
	if len(outcomes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO action_log (
			id, batch_id, entry_index, entry_kind,
			action, url, remote, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, o := range outcomes {
		errText := ""
		if o.Err != nil {
			errText = executor.CleanErrorMessage(o.Err.Error())
		}
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(), batchID, o.Index, entryKindName(o.Kind),
			o.Action.String(), o.URL, o.Remote, errText, now,
		)
		if err != nil {
			return fmt.Errorf("recording %s on %d: %w", o.Action, o.Index, err)
		}
	}

	return tx.Commit()
}

// RecentActions returns up to limit records, newest first. A limit of
// zero or less means 50.
func (s *SQLiteStore) RecentActions(ctx context.Context, limit int) ([]ActionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []ActionRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, batch_id, entry_index, entry_kind, action, url, remote, error, created_at
		FROM action_log
		ORDER BY created_at DESC, batch_id DESC, entry_index ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying action log: %w", err)
	}
	return records, nil
}

// PruneActions deletes records older than before and returns how many
// were removed.
func (s *SQLiteStore) PruneActions(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM action_log WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning action log: %w", err)
	}
	return result.RowsAffected()
}

func entryKindName(k model.EntryKind) string {
	if k == model.EntryPullRequest {
		return "pull_request"
	}
	return "notification"
}
