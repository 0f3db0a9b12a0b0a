package engine

import (
	"fmt"
	"time"
)

// Mode selects the rule variant of a session.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeZen      Mode = "zen"
	ModeDaily    Mode = "daily"
	ModeWeekly   Mode = "weekly"
	ModeUltra120 Mode = "ultra120"
	ModeUltra180 Mode = "ultra180"
)

var allModes = []Mode{ModeMarathon, ModeZen, ModeDaily, ModeWeekly, ModeUltra120, ModeUltra180}

// Modes returns every mode in menu order.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, known := range allModes {
		if m == known {
			return true
		}
	}
	return false
}

// Title returns a human-readable mode name.
func (m Mode) Title() string {
	switch m {
	case ModeMarathon:
		return "Marathon"
	case ModeZen:
		return "Zen"
	case ModeDaily:
		return "Daily Challenge"
	case ModeWeekly:
		return "Weekly Challenge"
	case ModeUltra120:
		return "Ultra 2:00"
	case ModeUltra180:
		return "Ultra 3:00"
	}
	return string(m)
}

// Description is a one-line summary used by menus.
func (m Mode) Description() string {
	switch m {
	case ModeMarathon:
		return "Classic endless play, speed rises every 10 lines"
	case ModeZen:
		return "No game over: a blocked spawn wipes the board"
	case ModeDaily:
		return "Same piece sequence for everyone today"
	case ModeWeekly:
		return "Same piece sequence for the whole ISO week"
	case ModeUltra120:
		return "Score as much as possible in two minutes"
	case ModeUltra180:
		return "Score as much as possible in three minutes"
	}
	return ""
}

// NoLoss reports whether a blocked spawn clears the board instead of ending the game.
func (m Mode) NoLoss() bool {
	return m == ModeZen
}

// Countdown returns the time limit of a timed mode.
func (m Mode) Countdown(r Rules) (time.Duration, bool) {
	switch m {
	case ModeUltra120:
		return r.Ultra120, true
	case ModeUltra180:
		return r.Ultra180, true
	}
	return 0, false
}

// DateKey formats t as YYYYMMDD in its own location.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// WeekKey formats the ISO week of t as <year>W<week>, e.g. 2026W42.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%dW%d", year, week)
}

// ModeKey identifies where best scores for m are kept. Challenge modes get
// one key per day or ISO week.
func ModeKey(m Mode, now time.Time) string {
	switch m {
	case ModeDaily:
		return "daily-" + DateKey(now)
	case ModeWeekly:
		return "weekly-" + WeekKey(now)
	}
	return string(m)
}

// SeedFor returns the randomizer seed of a session started at now. Challenge
// modes seed from their mode key; other modes use override when non-zero and
// the start timestamp otherwise.
func SeedFor(m Mode, now time.Time, override int64) Seed {
	switch m {
	case ModeDaily, ModeWeekly:
		return Seed{Text: ModeKey(m, now)}
	}
	if override != 0 {
		return Seed{Value: override}
	}
	return Seed{Value: now.UnixMilli()}
}
