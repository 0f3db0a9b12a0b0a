package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T, expected ScoreboardModel", next)
	}
	return sb
}

func TestScoreboardStartsOnMode(t *testing.T) {
	m := NewScoreboardModel(nil, "ultra180", 100, 30)
	if m.Mode() != engine.ModeUltra180 {
		t.Errorf("Mode() = %s, expected ultra180", m.Mode())
	}

	m = NewScoreboardModel(nil, "sprint", 100, 30)
	if m.Mode() != engine.Modes()[0] {
		t.Errorf("Mode() = %s, expected the first mode for an unknown name", m.Mode())
	}
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("view without a store should say scores are unavailable")
	}
}

func TestScoreboardCyclesModes(t *testing.T) {
	modes := engine.Modes()
	m := NewScoreboardModel(nil, string(modes[0]), 100, 30)

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Mode() != modes[len(modes)-1] {
		t.Errorf("prev from first = %s, expected %s", m.Mode(), modes[len(modes)-1])
	}
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Mode() != modes[0] {
		t.Errorf("next from last = %s, expected %s", m.Mode(), modes[0])
	}
}

func TestScoreboardShowsRunsAndBests(t *testing.T) {
	store := openStore(t)
	for _, e := range []storage.ScoreEntry{
		{Mode: "daily", ModeKey: "daily-20261017", Score: 1200, Lines: 9, Level: 1, Duration: 95 * time.Second},
		{Mode: "daily", ModeKey: "daily-20261018", Score: 4300, Lines: 31, Level: 4, Duration: 4 * time.Minute},
		{Mode: "marathon", ModeKey: "marathon", Score: 99, Lines: 1, Level: 1},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveBestScore("daily-20261017", 1200) //nolint:errcheck
	store.SaveBestScore("daily-20261018", 4300) //nolint:errcheck

	m := NewScoreboardModel(store, "daily", 100, 30)
	m.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	m.reload()

	if len(m.runs) != 2 || m.runs[0].Score != 4300 {
		t.Fatalf("runs = %+v, expected the two daily runs best first", m.runs)
	}
	view := m.View()
	for _, want := range []string{"daily-20261018: 4,300", "runs 2", "lines 40", "4,300", "1,200"} {
		if !strings.Contains(view, want) {
			t.Errorf("runs view missing %q", want)
		}
	}

	m = updateScoreboard(t, m, keyRunes("v"))
	if m.view != viewBests {
		t.Fatal("v did not switch to bests")
	}
	view = m.View()
	if !strings.Contains(view, "daily-20261017") || !strings.Contains(view, "[bests]") {
		t.Errorf("bests view missing keys:\n%s", view)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := updateScoreboard(t, NewScoreboardModel(nil, "zen", 80, 24), keyRunes("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}
	if m.View() != "" {
		t.Error("View() not empty after leaving")
	}

	m = updateScoreboard(t, NewScoreboardModel(nil, "zen", 80, 24), keyRunes("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
