package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ghn/internal/ignore"
)

// IgnoredPRs returns the ignore list, oldest first.
func (s *SQLiteStore) IgnoredPRs(ctx context.Context) ([]IgnoredPR, error) {
	var rows []IgnoredPR
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, url, created_at FROM ignored_prs ORDER BY created_at, url")
	if err != nil {
		return nil, fmt.Errorf("querying ignored prs: %w", err)
	}
	return rows, nil
}

// AddIgnoredPR inserts url unless it is already present. It reports
// whether a row was added.
func (s *SQLiteStore) AddIgnoredPR(ctx context.Context, url string) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, fmt.Errorf("ignored pr url must not be empty")
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO ignored_prs (id, url, created_at) VALUES (?, ?, ?)",
		uuid.New().String(), url, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("adding ignored pr: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ClearIgnoredPRs removes every ignored pull request.
func (s *SQLiteStore) ClearIgnoredPRs(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM ignored_prs"); err != nil {
		return fmt.Errorf("clearing ignored prs: %w", err)
	}
	return nil
}

// IgnoreStore adapts the ignored_prs table to ignore.Store.
type IgnoreStore struct {
	s *SQLiteStore
}

var _ ignore.Store = (*IgnoreStore)(nil)

// IgnoreStore returns the ignore.Store view of this database.
func (s *SQLiteStore) IgnoreStore() *IgnoreStore {
	return &IgnoreStore{s: s}
}

// Load returns every ignored URL.
func (i *IgnoreStore) Load(ctx context.Context) ([]string, error) {
	rows, err := i.s.IgnoredPRs(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(rows))
	for _, r := range rows {
		urls = append(urls, r.URL)
	}
	return urls, nil
}

// Append adds url to the list.
func (i *IgnoreStore) Append(ctx context.Context, url string) (bool, error) {
	return i.s.AddIgnoredPR(ctx, url)
}

// Clear empties the list.
func (i *IgnoreStore) Clear(ctx context.Context) error {
	return i.s.ClearIgnoredPRs(ctx)
}
