package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BestEntry is the best score stored under one mode key.
type BestEntry struct {
	ModeKey   string
	Score     int
	UpdatedAt time.Time
}

// BestScore returns the best score stored under key, or 0 if none.
func (s *Store) BestScore(key string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE mode_key = ?", key).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SaveBestScore stores score under key unless a higher score is already
// stored. The comparison happens inside the upsert, so concurrent sessions
// sharing one store never lower a best.
func (s *Store) SaveBestScore(key string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (mode_key, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(mode_key) DO UPDATE SET
		   score = MAX(best_scores.score, excluded.score),
		   updated_at = CASE WHEN excluded.score > best_scores.score
		                     THEN excluded.updated_at ELSE best_scores.updated_at END`,
		key, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// BestScores lists best scores whose key starts with prefix, newest key first.
// An empty prefix lists every key.
func (s *Store) BestScores(prefix string, limit int) ([]BestEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT mode_key, score, updated_at
		 FROM best_scores
		 WHERE substr(mode_key, 1, ?) = ?
		 ORDER BY mode_key DESC
		 LIMIT ?`,
		len(prefix), prefix, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.ModeKey, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
