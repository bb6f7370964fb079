package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

// scoreRowsLimit caps the results loaded for one board.
const scoreRowsLimit = 100

// scoreboardChrome is the number of rows taken by everything except the
// table body: title, board tabs, stats, table border and header, help.
const scoreboardChrome = 10

var (
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	resultsBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyResultsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// scoreboardKeys are the scoreboard bindings. Scrolling is left to the
// table's own key map; Scroll only documents it in the help bar.
type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev board")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreboardExit records how the player left the scoreboard.
type scoreboardExit int

const (
	stayOnScoreboard scoreboardExit = iota
	backToMenu
	quitScoreboard
)

// ScoreboardModel shows the recorded results of one board at a time.
type ScoreboardModel struct {
	boards []registry.GameInfo
	board  int
	store  *storage.Store

	entries []storage.ScoreEntry
	stats   storage.GameStats

	table  table.Model
	help   help.Model
	keys   scoreboardKeys
	width  int
	height int
	exit   scoreboardExit
}

// NewScoreboardModel creates a scoreboard opened on the first board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = newResultsTable()
	m.resize(width, height)
	m.load()
	return m
}

func newResultsTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Result", Width: 9},
			{Title: "Tile", Width: 5},
			{Title: "Moves", Width: 6},
			{Title: "Played", Width: 12},
		}),
		table.WithFocused(true),
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

func (m *ScoreboardModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table.SetHeight(max(3, height-scoreboardChrome))
}

// load reads the results and stats of the selected board.
func (m *ScoreboardModel) load() {
	m.entries = nil
	m.stats = storage.GameStats{}
	if m.store != nil && len(m.boards) > 0 {
		id := m.boards[m.board].ID
		if entries, err := m.store.TopScores(id, scoreRowsLimit); err == nil {
			m.entries = entries
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = *stats
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			e.Outcome,
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectBoard moves the board selection by delta, wrapping around.
func (m *ScoreboardModel) selectBoard(delta int) {
	if n := len(m.boards); n > 0 {
		m.board = (m.board + delta + n) % n
		m.load()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.exit = quitScoreboard
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = backToMenu
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectBoard(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.exit != stayOnScoreboard {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render("RESULTS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n")

	body := emptyResultsStyle.Render("No games recorded yet.\nPlay a round to set a high score!")
	if len(m.entries) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(resultsBoxStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders one tab per board with the selected one highlighted.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.boards))
	for i, g := range m.boards {
		if i == m.board {
			tabs[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// statsLine summarizes the selected board.
func (m ScoreboardModel) statsLine() string {
	if m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Games: %d  Wins: %d (%.0f%%)  Best: %d  Best tile: %d  Avg: %.0f",
		m.stats.GamesCount, m.stats.Wins, m.stats.WinRate()*100,
		m.stats.HighScore, m.stats.BestTile, m.stats.AvgScore)
}

// RunScoreboard shows the scoreboard. goBack is true when the player
// asked to return to the menu rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.exit == backToMenu, nil
}
