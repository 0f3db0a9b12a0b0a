package storage

import (
	"fmt"
	"strconv"
)

// Settings are the player preferences persisted between sessions.
type Settings struct {
	Mode   string
	Volume float64
	Muted  bool
	Music  bool
}

// LoadSettings returns the stored settings, starting from defaults.
// Missing or unparsable values keep their default.
func (s *Store) LoadSettings(defaults Settings) (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return defaults, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	out := defaults
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return defaults, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch key {
		case "mode":
			out.Mode = value
		case "volume":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 && v <= 1 {
				out.Volume = v
			}
		case "muted":
			if v, err := strconv.ParseBool(value); err == nil {
				out.Muted = v
			}
		case "music":
			if v, err := strconv.ParseBool(value); err == nil {
				out.Music = v
			}
		}
	}
	if err := rows.Err(); err != nil {
		return defaults, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveSettings writes every setting in one transaction.
func (s *Store) SaveSettings(st Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	values := map[string]string{
		"mode":   st.Mode,
		"volume": strconv.FormatFloat(st.Volume, 'f', -1, 64),
		"muted":  strconv.FormatBool(st.Muted),
		"music":  strconv.FormatBool(st.Music),
	}
	for key, value := range values {
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}
