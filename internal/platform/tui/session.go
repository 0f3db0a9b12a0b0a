package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game or scoreboard -> menu.
// It is the top-level model of the menu command and of SSH sessions.
type SessionModel struct {
	deps        Deps
	config      core.RuntimeConfig
	timerPeriod time.Duration
	settings    storage.Settings
	username    string
	current     screen
	menu        MenuModel
	gameModel   *GameModel
	scoreboard  *ScoreboardModel
	quitting    bool
}

// NewSessionModel creates a session that starts on the mode menu.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, timerPeriod time.Duration, st storage.Settings, username string) SessionModel {
	return SessionModel{
		deps:        deps,
		config:      cfg,
		timerPeriod: timerPeriod,
		settings:    st,
		username:    username,
		menu:        NewMenuModel(deps, cfg, st.Mode),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.deps, m.config, m.settings.Mode)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.deps.Store, m.settings.Mode, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.current = screenScores
		return m, sb.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.deps.logger().Error("cannot create game", "err", err)
			return m.backToMenu()
		}
		m.config = m.menu.Config()
		m.settings.Mode = game.ID()
		m.deps.logger().Info("game started", "user", m.username, "mode", game.ID())

		gm := NewGameModel(game, m.deps, m.config, m.timerPeriod, m.settings)
		m.gameModel = &gm
		m.current = screenGame
		return m, gm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.settings = m.gameModel.settings
		return m.backToMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(deps Deps, cfg core.RuntimeConfig, timerPeriod time.Duration, st storage.Settings) error {
	model := NewSessionModel(deps, cfg, timerPeriod, st, "local")

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
