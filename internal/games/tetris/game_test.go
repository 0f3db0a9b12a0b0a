package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type sink struct {
	locks  int
	clears int
}

func (s *sink) OnLock()         { s.locks++ }
func (s *sink) OnLineClear(int) { s.clears++ }
func (s *sink) OnLevelUp(int)   {}

type keeper struct {
	best  map[string]int
	saves int
}

func (k *keeper) BestScore(key string) (int, error) { return k.best[key], nil }
func (k *keeper) SaveBestScore(key string, score int) error {
	k.saves++
	k.best[key] = score
	return nil
}

func newTestGame(t *testing.T, m engine.Mode, h core.Hooks) *Game {
	t.Helper()
	g := New(m)
	g.clock = func() time.Time { return testNow }
	g.Attach(h)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// topOut hard-drops until the stack reaches the spawn row.
func topOut(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if g.State().GameOver {
			return
		}
		g.Step(frame(core.ActionHardDrop))
	}
	t.Fatal("game never ended")
}

func TestEveryModeRegistered(t *testing.T) {
	for _, m := range engine.Modes() {
		if !registry.Exists(string(m)) {
			t.Fatalf("mode %q not registered", m)
		}
		g, err := registry.Create(string(m))
		if err != nil {
			t.Fatalf("Create(%q): %v", m, err)
		}
		if g.ID() != string(m) {
			t.Errorf("ID() = %q, want %q", g.ID(), m)
		}
	}

	infos := registry.List()
	if len(infos) != len(engine.Modes()) {
		t.Fatalf("List() has %d games, want %d", len(infos), len(engine.Modes()))
	}
	for _, info := range infos {
		if info.Description == "" {
			t.Errorf("%s has no description", info.ID)
		}
	}
}

func TestNewInvalidModeFallsBack(t *testing.T) {
	if got := New("sprint").ID(); got != string(engine.ModeMarathon) {
		t.Errorf("ID() = %q, want marathon", got)
	}
}

func TestResetStartsRun(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})

	if g.Session().State() != engine.StateRunning {
		t.Fatalf("state = %v, want running", g.Session().State())
	}
	if _, ok := g.Session().ActivePiece(); !ok {
		t.Fatal("no active piece after Reset")
	}
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("State() = %+v, want fresh run", st)
	}
}

func TestStepAppliesActionsInOrder(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	before, _ := g.Session().ActivePiece()

	g.Step(frame(core.ActionMoveLeft, core.ActionMoveLeft, core.ActionMoveRight))

	after, _ := g.Session().ActivePiece()
	if after.X != before.X-1 {
		t.Errorf("x = %d, want %d", after.X, before.X-1)
	}
}

func TestStepHardDrop(t *testing.T) {
	h := &sink{}
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{Events: h})

	res := g.Step(frame(core.ActionHardDrop))

	if res.State.Score <= 0 || res.State.Score%2 != 0 {
		t.Errorf("score = %d, want positive multiple of 2", res.State.Score)
	}
	if h.locks != 1 {
		t.Errorf("locks = %d, want 1", h.locks)
	}
}

func TestStepPauseToggles(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})

	if !g.Step(frame(core.ActionPause)).State.Paused {
		t.Fatal("expected paused")
	}
	before, _ := g.Session().ActivePiece()
	g.Step(frame(core.ActionMoveLeft))
	after, _ := g.Session().ActivePiece()
	if after != before {
		t.Error("piece moved while paused")
	}
	if g.Step(frame(core.ActionPause)).State.Paused {
		t.Fatal("expected resumed")
	}
}

func TestStepHold(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	first, _ := g.Session().ActivePiece()

	g.Step(frame(core.ActionHold))

	if g.Session().Hold().Held != first.Type {
		t.Errorf("held = %v, want %v", g.Session().Hold().Held, first.Type)
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	g.Step(frame(core.ActionHardDrop))
	score := g.State().Score

	g.Step(frame(core.ActionRestart))
	if g.State().Score != score {
		t.Fatalf("restart while running changed score to %d", g.State().Score)
	}

	topOut(t, g)
	g.Step(frame(core.ActionRestart))
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("after restart State() = %+v", st)
	}
}

func TestConfirmRestartsAfterGameOver(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	g.Step(frame(core.ActionHardDrop))
	score := g.State().Score

	g.Step(frame(core.ActionConfirm))
	if g.State().Score != score || g.Session().State() != engine.StateRunning {
		t.Fatalf("confirm while running changed the run: %+v", g.State())
	}

	topOut(t, g)
	g.Step(frame(core.ActionConfirm))
	if got := g.Session().State(); got != engine.StateRunning {
		t.Errorf("state after confirm = %v, want running", got)
	}
	if g.State().Score != 0 {
		t.Errorf("score after confirm = %d, want 0", g.State().Score)
	}
}

func TestGameOverSavesBest(t *testing.T) {
	k := &keeper{best: map[string]int{}}
	g := newTestGame(t, engine.ModeDaily, core.Hooks{Scores: k})

	topOut(t, g)

	if k.saves != 1 {
		t.Fatalf("saves = %d, want 1", k.saves)
	}
	if got := k.best["daily-20261018"]; got != g.State().Score {
		t.Errorf("stored best = %d, want %d", got, g.State().Score)
	}
}

func TestSummary(t *testing.T) {
	g := newTestGame(t, engine.ModeDaily, core.Hooks{})
	g.Step(frame(core.ActionHardDrop))

	sum := g.Summary()
	if sum.Mode != "daily" || sum.ModeKey != "daily-20261018" {
		t.Errorf("Summary() mode = %q key = %q", sum.Mode, sum.ModeKey)
	}
	if sum.Score != g.State().Score || sum.Level != 1 {
		t.Errorf("Summary() = %+v", sum)
	}
}

func TestConfigureAppliesToNextReset(t *testing.T) {
	t.Cleanup(func() { Configure(config.Default()) })

	cfg := config.Default()
	cfg.Board.Width = 12
	Configure(cfg)

	g := newTestGame(t, engine.ModeZen, core.Hooks{})
	if w := g.Session().Board().Width(); w != 12 {
		t.Errorf("board width = %d, want 12", w)
	}
}

func TestTimerTickCountsDown(t *testing.T) {
	now := testNow
	g := New(engine.ModeUltra120)
	g.clock = func() time.Time { return now }
	g.Reset(core.RuntimeConfig{Seed: 1})

	now = now.Add(2 * time.Minute)
	g.TimerTick()

	if !g.State().GameOver {
		t.Error("ultra run should end when the clock runs out")
	}
}

func TestRenderBoardAndPanel(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Marathon", "NEXT", "HOLD", "SCORE", "LEVEL", "LINES", "TIME", "00:00", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	active, _ := g.Session().ActivePiece()
	minW, minH := MinSize(10, 20)
	ox, oy := (80-minW)/2, (24-minH)/2
	found := false
	active.Shape().Each(func(dx, dy int) {
		cell := scr.GetCell(ox+1+(active.X+dx)*cellWidth, oy+1+active.Y+dy)
		if cell.Rune == '█' && cell.Color == PieceColor(active.Type) {
			found = true
		}
	})
	if !found {
		t.Error("active piece not drawn in its color")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	scr := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("missing pause overlay")
	}

	g.Step(frame(core.ActionPause))
	topOut(t, g)
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("missing game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, engine.ModeMarathon, core.Hooks{})
	scr := core.NewScreen(30, 10)

	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestPieceColorsDistinct(t *testing.T) {
	seen := map[core.Color]engine.PieceType{}
	for _, p := range engine.PieceTypes {
		c := PieceColor(p)
		if c == core.ColorDefault {
			t.Errorf("%s has no color", p)
		}
		if other, dup := seen[c]; dup {
			t.Errorf("%s and %s share %s", p, other, c)
		}
		seen[c] = p
	}
}
