package engine

import (
	"fmt"
	"time"

	"github.com/kamstrup/intmap"
)

// ClearProtocol decides when detected full rows are removed.
type ClearProtocol string

const (
	// ClearAnimated holds full rows on the board for the clear animation.
	ClearAnimated ClearProtocol = "animated"
	// ClearImmediate removes full rows in the same step that locked the piece.
	ClearImmediate ClearProtocol = "immediate"
)

// ParseClearProtocol validates a configured protocol name.
func ParseClearProtocol(s string) (ClearProtocol, error) {
	switch ClearProtocol(s) {
	case ClearAnimated, ClearImmediate:
		return ClearProtocol(s), nil
	case "":
		return ClearAnimated, nil
	}
	return "", fmt.Errorf("unknown clear protocol %q", s)
}

// ClearState tracks full rows between detection and removal.
// It is immutable once created.
type ClearState struct {
	Rows  []int // ascending
	Start time.Time
	set   *intmap.Map[int, struct{}]
}

func newClearState(rows []int, start time.Time) *ClearState {
	set := intmap.New[int, struct{}](len(rows))
	for _, r := range rows {
		set.Put(r, struct{}{})
	}
	return &ClearState{Rows: rows, Start: start, set: set}
}

// Has reports whether row is being cleared.
func (c *ClearState) Has(row int) bool {
	if c == nil {
		return false
	}
	_, ok := c.set.Get(row)
	return ok
}

// Progress returns how far the animation has run, clamped to [0, 1].
func (c *ClearState) Progress(now time.Time, length time.Duration) float64 {
	if c == nil {
		return 0
	}
	if length <= 0 {
		return 1
	}
	p := float64(now.Sub(c.Start)) / float64(length)
	return min(max(p, 0), 1)
}

func (c *ClearState) shifted(d time.Duration) *ClearState {
	return &ClearState{Rows: c.Rows, Start: c.Start.Add(d), set: c.set}
}

// ClearResult summarizes an applied clear.
type ClearResult struct {
	Lines   int
	Points  int
	Level   int
	LevelUp bool
}

// beginClear records full rows after a lock and notifies the listener.
func (s *Session) beginClear(rows []int) {
	s.listener.OnLineClear(len(rows))
	s.clear = newClearState(rows, s.now())
	if s.rules.ClearProtocol == ClearImmediate {
		s.applyClear()
		s.spawn()
	}
}

// applyClear removes the pending rows and updates score, lines and level.
func (s *Session) applyClear() ClearResult {
	rows := s.clear.Rows
	s.clear = nil

	n := s.board.RemoveRows(rows)
	prev := s.level
	points := s.rules.LineScore(n, prev)
	s.score += points
	s.lines += n
	s.level = s.rules.LevelFor(s.lines)
	s.dropInterval = s.rules.DropInterval(s.level)

	res := ClearResult{Lines: n, Points: points, Level: s.level, LevelUp: s.level > prev}
	if res.LevelUp {
		s.listener.OnLevelUp(s.level)
	}
	return res
}
