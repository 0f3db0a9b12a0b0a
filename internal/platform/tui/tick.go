// Package tui provides the Bubble Tea integration for blockfall.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame.
type TickMsg time.Time

// TimerMsg is sent on the mode-clock period.
type TimerMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// timerCmd schedules the next mode-clock tick.
func timerCmd(period time.Duration) tea.Cmd {
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return TimerMsg(t)
	})
}
