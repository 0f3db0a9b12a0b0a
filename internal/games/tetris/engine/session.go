package engine

import "time"

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Options configures a Session. Zero fields take defaults.
type Options struct {
	Mode     Mode
	Rules    Rules
	Seed     int64            // fixed seed for non-challenge modes; 0 seeds from the start time
	Clock    func() time.Time // defaults to time.Now
	Listener Listener
	Best     BestScores
}

// Session owns one game: board, active piece, randomizer, hold slot, clear
// state, timer and scoring. It is single-threaded; every method must be
// called from the same goroutine.
type Session struct {
	rules    Rules
	mode     Mode
	seed     int64
	now      func() time.Time
	listener Listener
	best     BestScores

	board  *Board
	random Randomizer
	active *ActivePiece
	next   PieceType
	hold   HoldSlot
	clear  *ClearState
	timer  *ModeTimer

	state        State
	score        int
	level        int
	lines        int
	dropInterval time.Duration
	lastDrop     time.Time
	pausedAt     time.Time
	startedAt    time.Time
	bestScore    int
}

// NewSession returns an idle session.
func NewSession(opts Options) *Session {
	if !opts.Mode.Valid() {
		opts.Mode = ModeMarathon
	}
	if opts.Rules.Width == 0 {
		opts.Rules = DefaultRules()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}

	s := &Session{
		rules:    opts.Rules,
		mode:     opts.Mode,
		seed:     opts.Seed,
		now:      opts.Clock,
		listener: opts.Listener,
		best:     opts.Best,
		board:    NewBoard(opts.Rules.Width, opts.Rules.Height),
	}
	s.random = NewRandomizer(s.rules.Randomizer, newRNG(s.now))
	s.resetPlay()
	s.loadBest(s.now())
	return s
}

func (s *Session) State() State                { return s.state }
func (s *Session) Mode() Mode                  { return s.mode }
func (s *Session) Rules() Rules                { return s.rules }
func (s *Session) Score() int                  { return s.score }
func (s *Session) Level() int                  { return s.level }
func (s *Session) Lines() int                  { return s.lines }
func (s *Session) Best() int                   { return s.bestScore }
func (s *Session) Next() PieceType             { return s.next }
func (s *Session) Hold() HoldSlot              { return s.hold }
func (s *Session) DropInterval() time.Duration { return s.dropInterval }
func (s *Session) Clearing() bool              { return s.clear != nil }
func (s *Session) Timer() *ModeTimer           { return s.timer }
func (s *Session) Board() *Board               { return s.board }
func (s *Session) StartedAt() time.Time        { return s.startedAt }
func (s *Session) Played() time.Duration       { return s.timer.Played(s.now()) }
func (s *Session) ClockValue() time.Duration   { return s.timer.Value(s.now()) }
func (s *Session) ClockDisplay() string        { return FormatClock(s.ClockValue()) }

func (s *Session) ActivePiece() (ActivePiece, bool) {
	if s.active == nil {
		return ActivePiece{}, false
	}
	return *s.active, true
}

// ModeKey returns the best-score key of the current run. Challenge modes use
// the date the run started so a run crossing midnight keeps its key.
func (s *Session) ModeKey() string {
	if s.startedAt.IsZero() {
		return ModeKey(s.mode, s.now())
	}
	return ModeKey(s.mode, s.startedAt)
}

// Start begins a run from Idle. It reports whether the transition happened.
func (s *Session) Start() bool {
	if s.state != StateIdle {
		return false
	}
	now := s.now()
	s.resetPlay()
	s.startedAt = now
	s.loadBest(now)
	s.random.Reseed(SeedFor(s.mode, now, s.seed))
	s.next = s.random.Draw()
	s.timer.Start(now)
	s.lastDrop = now
	s.setState(StateRunning)
	s.spawn()
	return true
}

// Pause suspends gravity, clear animation and the timer.
func (s *Session) Pause() bool {
	if s.state != StateRunning {
		return false
	}
	now := s.now()
	s.timer.Pause(now)
	s.pausedAt = now
	s.setState(StatePaused)
	return true
}

// Resume continues a paused run. The drop clock and any clear animation are
// shifted by the paused duration.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	now := s.now()
	paused := now.Sub(s.pausedAt)
	s.timer.Resume(now)
	s.lastDrop = s.lastDrop.Add(paused)
	if s.clear != nil {
		s.clear = s.clear.shifted(paused)
	}
	s.setState(StateRunning)
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StateRunning:
		return s.Pause()
	case StatePaused:
		return s.Resume()
	}
	return false
}

// Reset abandons the run and returns to Idle with an empty board.
func (s *Session) Reset() {
	if s.timer != nil {
		s.timer.Stop(s.now())
	}
	s.resetPlay()
	s.setState(StateIdle)
}

// Restart is Reset followed by Start.
func (s *Session) Restart() {
	s.Reset()
	s.Start()
}

// SetMode switches the mode. Any run, finished or not, is reset to Idle so
// the new mode key is taken from the current date.
func (s *Session) SetMode(m Mode) bool {
	if !m.Valid() {
		return false
	}
	s.mode = m
	if s.state != StateIdle {
		s.Reset()
	} else {
		s.resetTimer()
	}
	s.loadBest(s.now())
	return true
}

// Frame advances time-driven play: it finishes an expired clear animation
// or applies gravity once the drop interval has passed.
func (s *Session) Frame() {
	if s.state != StateRunning {
		return
	}
	now := s.now()
	if s.clear != nil {
		if now.Sub(s.clear.Start) >= s.rules.ClearAnimation {
			s.applyClear()
			s.spawn()
		}
		return
	}
	if s.active == nil {
		return
	}
	if now.Sub(s.lastDrop) > s.dropInterval {
		if s.movePiece(0, 1) {
			if g, ok := s.listener.(GravityListener); ok {
				g.OnGravity()
			}
		}
		s.lastDrop = now
	}
}

// TimerTick advances the mode timer. A countdown reaching zero ends the game.
func (s *Session) TimerTick() {
	if s.state != StateRunning {
		return
	}
	if s.timer.Tick(s.now()) {
		s.gameOver()
	}
}

func (s *Session) resetPlay() {
	s.board.Clear()
	s.active = nil
	s.next = PieceNone
	s.hold = HoldSlot{}
	s.clear = nil
	s.score = 0
	s.lines = 0
	s.level = 1
	s.dropInterval = s.rules.DropInterval(1)
	s.startedAt = time.Time{}
	s.resetTimer()
}

func (s *Session) resetTimer() {
	if total, ok := s.mode.Countdown(s.rules); ok {
		s.timer = NewCountdownTimer(total)
	} else {
		s.timer = NewCountUpTimer()
	}
}

func (s *Session) setState(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	if sl, ok := s.listener.(StateListener); ok {
		sl.OnStateChange(from, to)
	}
}

func (s *Session) gameOver() {
	s.timer.Stop(s.now())
	s.clear = nil
	s.setState(StateGameOver)
	s.saveBest()
}

func (s *Session) loadBest(now time.Time) {
	s.bestScore = 0
	if s.best == nil {
		return
	}
	key := ModeKey(s.mode, now)
	if !s.startedAt.IsZero() {
		key = ModeKey(s.mode, s.startedAt)
	}
	if v, err := s.best.BestScore(key); err == nil {
		s.bestScore = v
	}
}

func (s *Session) saveBest() {
	key := s.ModeKey()
	stored := s.bestScore
	if s.best != nil {
		if v, err := s.best.BestScore(key); err == nil {
			stored = v
		}
	}
	if s.score <= stored {
		s.bestScore = stored
		return
	}
	s.bestScore = s.score
	if s.best != nil {
		_ = s.best.SaveBestScore(key, s.score)
	}
}
