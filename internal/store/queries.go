package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// SummaryKey identifies one cached summary: same page content summarized
// with the same bounds and mode.
type SummaryKey struct {
	URL         string
	ContentHash string
	MinLength   int
	MaxLength   int
	Mode        string
}

// HashContent derives the content part of a cache key from extracted text.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))

	return hex.EncodeToString(sum[:])
}

func (k SummaryKey) validate() error {
	if strings.TrimSpace(k.URL) == "" {
		return errors.New("URL is empty")
	}

	if strings.TrimSpace(k.ContentHash) == "" {
		return errors.New("content hash is empty")
	}

	if strings.TrimSpace(k.Mode) == "" {
		return errors.New("mode is empty")
	}

	return nil
}

// GetSummary returns the cached summary for key; the second result reports
// whether one was found. A miss is not an error.
func (s *Store) GetSummary(ctx context.Context, key SummaryKey) (string, bool, error) {
	if err := key.validate(); err != nil {
		return "", false, err
	}

	query := `select summary from summaries
		where url = ? and content_hash = ? and min_length = ? and max_length = ? and mode = ?`

	var summary string
	err := s.db.QueryRowContext(
		ctx,
		query,
		key.URL,
		key.ContentHash,
		key.MinLength,
		key.MaxLength,
		key.Mode,
	).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("execute query: %w", err)
	}

	return summary, true, nil
}

// SaveSummary stores a summary under key, replacing any previous entry.
func (s *Store) SaveSummary(ctx context.Context, key SummaryKey, summary string) error {
	if err := key.validate(); err != nil {
		return err
	}

	if summary == "" {
		return errors.New("summary is empty")
	}

	query := `insert or replace into summaries
		(url, content_hash, min_length, max_length, mode, summary)
		values (?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(
		ctx,
		query,
		key.URL,
		key.ContentHash,
		key.MinLength,
		key.MaxLength,
		key.Mode,
		summary,
	); err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	return nil
}
