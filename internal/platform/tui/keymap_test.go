package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{"vim left", keyRunes("h"), core.ActionMoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{"x rotates", keyRunes("x"), core.ActionRotate},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionHardDrop},
		{"hold", keyRunes("c"), core.ActionHold},
		{"pause", keyRunes("p"), core.ActionPause},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"restart", keyRunes("r"), core.ActionRestart},
		{"back", keyRunes("b"), core.ActionBack},
		{"mute", keyRunes("m"), core.ActionMute},
		{"volume up", keyRunes("+"), core.ActionVolumeUp},
		{"volume down", keyRunes("-"), core.ActionVolumeDown},
		{"quit", keyRunes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", keyRunes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{keyRunes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{keyRunes("q"), MenuActionQuit},
		{keyRunes("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "██", core.ColorCyan)
	s.DrawTextColored(2, 0, "██", core.ColorCyan)
	s.DrawTextColored(4, 0, "░░", core.ColorGray)
	s.DrawText(0, 1, "SCORE")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "████") {
		t.Errorf("line 0 = %q, expected the cyan run kept together", lines[0])
	}
	if !strings.Contains(lines[1], "SCORE") {
		t.Errorf("line 1 = %q, expected SCORE", lines[1])
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault, core.ColorRed, core.ColorGreen, core.ColorYellow,
		core.ColorBlue, core.ColorMagenta, core.ColorCyan, core.ColorWhite,
		core.ColorOrange, core.ColorGray, core.ColorBrightWhite, core.ColorBrightYellow,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %v", c)
		}
	}
}
