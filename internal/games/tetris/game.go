// Package tetris exposes the falling-block engine as registry games, one per
// mode, and draws sessions into the platform screen buffer.
package tetris

import (
	"sync"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	settingsMu sync.RWMutex
	settings   = config.Default()
)

// Configure sets the configuration used by games reset after this call.
func Configure(cfg config.Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Settings returns the configuration new runs are built from.
func Settings() config.Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	for _, m := range engine.Modes() {
		registry.Register(string(m), func() registry.Game { return New(m) })
	}
}

// Game adapts an engine session to the platform.
type Game struct {
	mode    engine.Mode
	clock   func() time.Time
	hooks   core.Hooks
	session *engine.Session
}

// New creates a game for mode m. Invalid modes fall back to marathon.
func New(m engine.Mode) *Game {
	if !m.Valid() {
		m = engine.ModeMarathon
	}
	g := &Game{mode: m, clock: time.Now}
	g.session = g.newSession(core.RuntimeConfig{})
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string { return string(g.mode) }

// Title returns the mode name.
func (g *Game) Title() string { return g.mode.Title() }

// Description returns a one-line summary of the mode.
func (g *Game) Description() string { return g.mode.Description() }

// Attach connects collaborators for the next Reset.
func (g *Game) Attach(h core.Hooks) {
	g.hooks = h
}

// Reset discards the current session and starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.session = g.newSession(cfg)
	g.session.Start()
}

func (g *Game) newSession(cfg core.RuntimeConfig) *engine.Session {
	opts := engine.Options{
		Mode:  g.mode,
		Rules: Settings().Rules(),
		Seed:  cfg.Seed,
		Clock: g.clock,
	}
	if g.hooks.Events != nil {
		opts.Listener = g.hooks.Events
	}
	if g.hooks.Scores != nil {
		opts.Best = g.hooks.Scores
	}
	return engine.NewSession(opts)
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session { return g.session }

// Snapshot captures the session for spectators.
func (g *Game) Snapshot() engine.Snapshot { return g.session.Snapshot() }

// Step applies the frame's actions in order, then advances gravity and the
// clear animation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	for _, a := range in.Actions {
		switch a {
		case core.ActionMoveLeft:
			s.MoveLeft()
		case core.ActionMoveRight:
			s.MoveRight()
		case core.ActionSoftDrop:
			s.SoftDrop()
		case core.ActionRotate:
			s.RotatePiece()
		case core.ActionHardDrop:
			s.HardDrop()
		case core.ActionHold:
			s.HoldPiece()
		case core.ActionPause:
			s.TogglePause()
		case core.ActionConfirm, core.ActionRestart:
			if s.State() == engine.StateGameOver {
				s.Restart()
			}
		}
	}
	s.Frame()
	return core.StepResult{State: g.State()}
}

// TimerTick advances the mode clock.
func (g *Game) TimerTick() { g.session.TimerTick() }

// State reports the platform-level status.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: st == engine.StateGameOver,
		Paused:   st == engine.StatePaused,
	}
}

// Summary describes the run for the score history.
func (g *Game) Summary() core.Summary {
	s := g.session
	return core.Summary{
		Mode:     string(s.Mode()),
		ModeKey:  s.ModeKey(),
		Score:    s.Score(),
		Level:    s.Level(),
		Lines:    s.Lines(),
		Duration: s.Played(),
	}
}

var (
	_ registry.Game     = (*Game)(nil)
	_ engine.Listener   = core.EventSink(nil)
	_ engine.BestScores = core.ScoreKeeper(nil)
)
