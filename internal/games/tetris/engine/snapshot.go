package engine

import "time"

// PiecePose is a piece placed on the board, with its shape resolved.
type PiecePose struct {
	Type     PieceType `json:"type"`
	Rotation int       `json:"rotation"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Shape    Shape     `json:"shape"`
}

func poseOf(p ActivePiece) *PiecePose {
	return &PiecePose{Type: p.Type, Rotation: p.Rotation, X: p.X, Y: p.Y, Shape: p.Shape()}
}

// Snapshot is a read-only view of a session for renderers and spectators.
type Snapshot struct {
	Mode    Mode   `json:"mode"`
	ModeKey string `json:"mode_key"`
	State   State  `json:"state"`

	Width  int           `json:"width"`
	Height int           `json:"height"`
	Board  [][]PieceType `json:"board"`
	Active *PiecePose    `json:"active,omitempty"`
	Ghost  *PiecePose    `json:"ghost,omitempty"`
	Next   PieceType     `json:"next"`
	Held   PieceType     `json:"held"`
	Used   bool          `json:"hold_used"`

	Score        int           `json:"score"`
	Level        int           `json:"level"`
	Lines        int           `json:"lines"`
	Best         int           `json:"best"`
	DropInterval time.Duration `json:"drop_interval_ns"`

	Clearing      []int   `json:"clearing,omitempty"`
	ClearProgress float64 `json:"clear_progress"`

	Clock     time.Duration `json:"clock_ns"`
	ClockText string        `json:"clock"`
	Countdown bool          `json:"countdown"`

	clear *ClearState
}

// ClearingRow reports whether row y is part of the running clear animation.
func (s Snapshot) ClearingRow(y int) bool {
	return s.clear.Has(y)
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	now := s.now()
	snap := Snapshot{
		Mode:         s.mode,
		ModeKey:      s.ModeKey(),
		State:        s.state,
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		Board:        s.board.Rows(),
		Next:         s.next,
		Held:         s.hold.Held,
		Used:         s.hold.UsedThisSpawn,
		Score:        s.score,
		Level:        s.level,
		Lines:        s.lines,
		Best:         max(s.bestScore, s.score),
		DropInterval: s.dropInterval,
		Clock:        s.timer.Value(now),
		Countdown:    s.timer.Countdown(),
		clear:        s.clear,
	}
	snap.ClockText = FormatClock(snap.Clock)
	if s.active != nil {
		snap.Active = poseOf(*s.active)
		if g, ok := s.Ghost(); ok {
			snap.Ghost = poseOf(g)
		}
	}
	if s.clear != nil {
		snap.Clearing = append([]int(nil), s.clear.Rows...)
		at := now
		if s.state == StatePaused {
			at = s.pausedAt
		}
		snap.ClearProgress = s.clear.Progress(at, s.rules.ClearAnimation)
	}
	return snap
}
