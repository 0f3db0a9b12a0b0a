package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// scoreView selects what the scoreboard table lists.
type scoreView int

const (
	viewRuns  scoreView = iota // finished runs, best first
	viewBests                  // best score per mode key
)

const (
	maxRuns  = 100
	maxBests = 30
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMode, k.NextMode, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMode, k.NextMode},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "runs/bests"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the run history and best scores of each mode.
type ScoreboardModel struct {
	store  *storage.Store
	modes  []engine.Mode
	cursor int
	view   scoreView
	now    func() time.Time

	runs     []storage.ScoreEntry
	bests    []storage.BestEntry
	todayKey string
	today    int

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on mode. An unknown mode starts
// on the first one.
func NewScoreboardModel(store *storage.Store, mode string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  engine.Modes(),
		now:    time.Now,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	for i, md := range m.modes {
		if string(md) == mode {
			m.cursor = i
		}
	}
	m.reload()
	return m
}

// Mode returns the mode on display.
func (m ScoreboardModel) Mode() engine.Mode {
	return m.modes[m.cursor]
}

// reload queries the store for the current mode and rebuilds the table.
func (m *ScoreboardModel) reload() {
	mode := m.Mode()
	m.todayKey = engine.ModeKey(mode, m.now())
	m.runs, m.bests, m.today = nil, nil, 0

	if m.store != nil {
		if runs, err := m.store.TopScores(string(mode), maxRuns); err == nil {
			m.runs = runs
		}
		// Plain modes keep a single key, challenge modes one per day or week.
		prefix := string(mode)
		if mode == engine.ModeDaily || mode == engine.ModeWeekly {
			prefix += "-"
		}
		if bests, err := m.store.BestScores(prefix, maxBests); err == nil {
			m.bests = bests
		}
		if best, err := m.store.BestScore(m.todayKey); err == nil {
			m.today = best
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)
	switch m.view {
	case viewBests:
		columns = []table.Column{
			{Title: "Key", Width: 18},
			{Title: "Best", Width: 10},
			{Title: "Set", Width: 14},
		}
		for _, b := range m.bests {
			rows = append(rows, table.Row{
				b.ModeKey,
				humanize.Comma(int64(b.Score)),
				humanize.Time(b.UpdatedAt),
			})
		}
	default:
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Lines", Width: 6},
			{Title: "Lvl", Width: 4},
			{Title: "Time", Width: 6},
			{Title: "Played", Width: 14},
		}
		for i, r := range m.runs {
			rows = append(rows, table.Row{
				fmt.Sprint(i + 1),
				humanize.Comma(int64(r.Score)),
				fmt.Sprint(r.Lines),
				fmt.Sprint(r.Level),
				engine.FormatClock(r.Duration),
				humanize.Time(r.CreatedAt),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-11)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cursor = (m.cursor + 1) % len(m.modes)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cursor = (m.cursor + len(m.modes) - 1) % len(m.modes)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.table = m.buildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	lines := []string{
		sbTitleStyle.Render("SCORES · " + m.Mode().Title()),
		m.tabs(),
		m.summary(),
		m.viewSwitch(),
		sbBoxStyle.Render(m.body()),
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists every mode, or only the current one when they do not fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.modes))
	for i, md := range m.modes {
		if i == m.cursor {
			parts[i] = sbActiveStyle.Render(string(md))
		} else {
			parts[i] = sbDimStyle.Render(" " + string(md) + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-2 {
		line = "‹ " + sbActiveStyle.Render(string(m.Mode())) + " ›"
	}
	return line
}

func (m ScoreboardModel) summary() string {
	var lines int
	var played time.Duration
	for _, r := range m.runs {
		lines += r.Lines
		played += r.Duration
	}
	return fmt.Sprintf("%s: %s   runs %d   lines %s   played %s",
		m.todayKey, humanize.Comma(int64(m.today)),
		len(m.runs), humanize.Comma(int64(lines)), engine.FormatClock(played))
}

func (m ScoreboardModel) viewSwitch() string {
	runs, bests := sbDimStyle.Render("runs"), sbDimStyle.Render("bests")
	if m.view == viewBests {
		bests = sbTitleStyle.Render("[bests]")
	} else {
		runs = sbTitleStyle.Render("[runs]")
	}
	return runs + "  " + bests
}

func (m ScoreboardModel) body() string {
	empty := ""
	switch {
	case m.store == nil:
		empty = "Scores are unavailable without a database."
	case m.view == viewRuns && len(m.runs) == 0:
		empty = "No runs recorded yet."
	case m.view == viewBests && len(m.bests) == 0:
		empty = "No best scores yet."
	}
	if empty != "" {
		return sbDimStyle.Italic(true).Padding(1, 2).Render(empty)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own, starting on mode.
func RunScoreboard(store *storage.Store, mode string, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, mode, width, height), tea.WithAltScreen()).Run()
	return err
}
