package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is one finished run in the score history.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Mode      string
	ModeKey   string
	Score     int
	Level     int
	Lines     int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveScore records a finished run. A missing RunID is generated.
// Returns the entry with its ID and RunID filled in.
func (s *Store) SaveScore(e ScoreEntry) (ScoreEntry, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.ModeKey == "" {
		e.ModeKey = e.Mode
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (run_id, mode, mode_key, score, level, lines, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Mode, e.ModeKey, e.Score, e.Level, e.Lines, e.Duration.Milliseconds(),
	)
	if err != nil {
		return e, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return e, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	e.ID = id
	return e, nil
}

const scoreColumns = `id, run_id, mode, mode_key, score, level, lines, duration_ms, created_at`

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// RecentScores retrieves the most recent runs across all modes.
func (s *Store) RecentScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Mode, &e.ModeKey, &e.Score, &e.Level, &e.Lines, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest recorded score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes the history of the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
