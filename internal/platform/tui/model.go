package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const volumeStep = 0.05

// snapshotter is implemented by games that can be watched by spectators.
type snapshotter interface {
	Snapshot() engine.Snapshot
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	deps        Deps
	config      core.RuntimeConfig
	timerPeriod time.Duration
	keys        *KeyMapper
	help        help.Model
	inputFrame  core.InputFrame
	gameState   core.GameState
	settings    storage.Settings
	standalone  bool // back quits the program instead of returning to a menu
	quitting    bool
	backToMenu  bool
	scoreSaved  bool // score recorded for the current game over
}

// NewGameModel creates a model for game. The last screen row is kept for the
// status line.
func NewGameModel(game registry.Game, deps Deps, cfg core.RuntimeConfig, timerPeriod time.Duration, st storage.Settings) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW
	st.Mode = game.ID()
	return GameModel{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		deps:        deps,
		config:      cfg,
		timerPeriod: timerPeriod,
		keys:        NewKeyMapper(DefaultKeyMap()),
		help:        h,
		inputFrame:  core.NewInputFrame(),
		settings:    st,
	}
}

// Init attaches collaborators and starts the run and both clocks.
func (m GameModel) Init() tea.Cmd {
	m.game.Attach(m.deps.hooks())
	m.game.Reset(m.config)

	m.deps.saveSettings(m.settings)

	return tea.Batch(tickCmd(m.config.TickRate), timerCmd(m.timerPeriod))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case TimerMsg:
		return m.handleTimer()
	}

	return m, nil
}

// handleKey queues game actions and applies platform ones immediately.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case core.ActionMute:
		if m.deps.Audio != nil {
			m.settings.Muted = m.deps.Audio.ToggleMute()
			m.deps.saveSettings(m.settings)
		}

	case core.ActionVolumeUp, core.ActionVolumeDown:
		if m.deps.Audio != nil {
			delta := volumeStep
			if action == core.ActionVolumeDown {
				delta = -volumeStep
			}
			m.settings.Volume = m.deps.Audio.AdjustVolume(delta)
			m.deps.saveSettings(m.settings)
		}

	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one frame and records the run once it ends.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.deps.recordRun(m.game.Summary())
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// handleTimer advances the mode clock and feeds spectators.
func (m GameModel) handleTimer() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	m.game.TimerTick()
	if s, ok := m.game.(snapshotter); ok && m.deps.Feed != nil {
		if err := m.deps.Feed.Publish("snapshot", s.Snapshot()); err != nil {
			m.deps.logger().Warn("snapshot not published", "err", err)
		}
	}
	return m, timerCmd(m.timerPeriod)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(m.statusLine())
}

func (m GameModel) statusLine() string {
	line := m.help.ShortHelpView(m.keys.Keys().ShortHelp())
	if m.deps.Audio == nil {
		return line
	}
	vol := fmt.Sprintf("vol %d%%", int(m.deps.Audio.Volume()*100+0.5))
	if m.deps.Audio.Muted() {
		vol = "muted"
	}
	return vol + "  " + line
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig, timerPeriod time.Duration, st storage.Settings) error {
	model := NewGameModel(game, deps, cfg, timerPeriod, st)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
