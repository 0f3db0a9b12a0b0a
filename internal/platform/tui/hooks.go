package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/audio"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Publisher receives game snapshots for spectators.
type Publisher interface {
	Publish(kind string, v any) error
}

// Deps are the collaborators shared by every screen of a session.
// Any field may be nil.
type Deps struct {
	Store  *storage.Store
	Audio  *audio.Player
	Feed   Publisher
	Logger *log.Logger

	// SharedStore marks a store used by many players, such as SSH
	// sessions. Preferences are then read but never written.
	SharedStore bool
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// hooks builds the game collaborators, leaving absent ones as nil interfaces.
func (d Deps) hooks() core.Hooks {
	var h core.Hooks
	if d.Audio != nil {
		h.Events = d.Audio
	}
	if d.Store != nil {
		h.Scores = scoreKeeper{store: d.Store, logger: d.logger()}
	}
	return h
}

// scoreKeeper logs storage failures before handing them to the game, which
// keeps its cached best score.
type scoreKeeper struct {
	store  *storage.Store
	logger *log.Logger
}

func (k scoreKeeper) BestScore(key string) (int, error) {
	score, err := k.store.BestScore(key)
	if err != nil {
		k.logger.Warn("best score unavailable", "key", key, "err", err)
	}
	return score, err
}

func (k scoreKeeper) SaveBestScore(key string, score int) error {
	err := k.store.SaveBestScore(key, score)
	if err != nil {
		k.logger.Warn("best score not saved", "key", key, "score", score, "err", err)
	}
	return err
}

// settings reads stored preferences over the given defaults.
func (d Deps) settings(defaults storage.Settings) storage.Settings {
	if d.Store == nil {
		return defaults
	}
	st, err := d.Store.LoadSettings(defaults)
	if err != nil {
		d.logger().Warn("settings unavailable", "err", err)
	}
	return st
}

// saveSettings persists preferences, logging failures.
func (d Deps) saveSettings(st storage.Settings) {
	if d.Store == nil || d.SharedStore {
		return
	}
	if err := d.Store.SaveSettings(st); err != nil {
		d.logger().Warn("settings not saved", "err", err)
	}
}

// recordRun appends a finished run to the score history.
func (d Deps) recordRun(sum core.Summary) {
	if d.Store == nil || sum.Score <= 0 {
		return
	}
	entry, err := d.Store.SaveScore(storage.ScoreEntry{
		Mode:     sum.Mode,
		ModeKey:  sum.ModeKey,
		Score:    sum.Score,
		Level:    sum.Level,
		Lines:    sum.Lines,
		Duration: sum.Duration,
	})
	if err != nil {
		d.logger().Warn("run not recorded", "mode", sum.Mode, "err", err)
		return
	}
	d.logger().Info("run recorded", "run", entry.RunID, "mode", sum.ModeKey, "score", sum.Score)
}
