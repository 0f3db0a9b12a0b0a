package engine

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	locks   int
	clears  []int
	levels  []int
	gravity int
	states  [][2]State
}

func (r *recorder) OnLock()                      { r.locks++ }
func (r *recorder) OnLineClear(n int)            { r.clears = append(r.clears, n) }
func (r *recorder) OnLevelUp(level int)          { r.levels = append(r.levels, level) }
func (r *recorder) OnGravity()                   { r.gravity++ }
func (r *recorder) OnStateChange(from, to State) { r.states = append(r.states, [2]State{from, to}) }

type memBest struct {
	scores  map[string]int
	readErr error
	saveErr error
	saves   int
}

func newMemBest() *memBest {
	return &memBest{scores: map[string]int{}}
}

func (m *memBest) BestScore(key string) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.scores[key], nil
}

func (m *memBest) SaveBestScore(key string, score int) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.scores[key] = score
	return nil
}

var errStorage = errors.New("storage unavailable")

type fixture struct {
	s     *Session
	clock *fakeClock
	rec   *recorder
	best  *memBest
}

func newFixture(t *testing.T, mode Mode, tweak ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{clock: newFakeClock(), rec: &recorder{}, best: newMemBest()}
	opts := Options{
		Mode:     mode,
		Rules:    DefaultRules(),
		Seed:     7,
		Clock:    f.clock.Now,
		Listener: f.rec,
		Best:     f.best,
	}
	for _, fn := range tweak {
		fn(&opts)
	}
	f.s = NewSession(opts)
	return f
}

// started returns a running fixture.
func started(t *testing.T, mode Mode, tweak ...func(*Options)) *fixture {
	t.Helper()
	f := newFixture(t, mode, tweak...)
	if !f.s.Start() {
		t.Fatalf("Start() = false, expected true")
	}
	return f
}

// force replaces the active piece.
func (f *fixture) force(p PieceType, rotation, x, y int) {
	f.s.active = &ActivePiece{Type: p, Rotation: rotation, X: x, Y: y}
}

// fillRow fills row y except the listed columns.
func (f *fixture) fillRow(y int, holes ...int) {
	skip := map[int]bool{}
	for _, h := range holes {
		skip[h] = true
	}
	for x := 0; x < f.s.board.Width(); x++ {
		if !skip[x] {
			f.s.board.Set(x, y, PieceO)
		}
	}
}
