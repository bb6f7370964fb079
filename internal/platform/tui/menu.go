package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// menuRow is one board in the picker with its recorded history.
type menuRow struct {
	id    string
	title string
	stats storage.GameStats
}

// cells formats the row for the board table. Boards that were never
// played show dashes.
func (r menuRow) cells() string {
	if r.stats.GamesCount == 0 {
		return fmt.Sprintf("%-14s %6s %6s %7s", r.title, "-", "-", "-")
	}
	return fmt.Sprintf("%-14s %6d %6d %7d", r.title, r.stats.GamesCount, r.stats.Wins, r.stats.HighScore)
}

// MenuResult holds what the player picked in the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	rows   []menuRow
	cursor int
	cfg    core.RuntimeConfig
	keys   *KeyMapper
	result MenuResult
	done   bool
}

// NewMenuModel lists every registered board together with the games,
// wins and best score recorded for it.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var history map[string]*storage.GameStats
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			history = all
		}
	}

	games := registry.List()
	rows := make([]menuRow, len(games))
	for i, g := range games {
		rows[i] = menuRow{id: g.ID, title: g.Title}
		if st, ok := history[g.ID]; ok {
			rows[i].stats = *st
		}
	}

	return MenuModel{rows: rows, cfg: cfg, keys: NewKeyMapper()}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The cursor wraps around the board list.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if n := len(m.rows); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
			}
		case MenuActionDown:
			if n := len(m.rows); n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if len(m.rows) > 0 {
				return m.finish(MenuResult{GameID: m.rows[m.cursor].id})
			}
		case MenuActionScoreboard:
			return m.finish(MenuResult{WantsScoreboard: true})
		case MenuActionQuit, MenuActionBack:
			return m.finish(MenuResult{Quit: true})
		}
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.result = r
	m.done = true
	return m, tea.Quit
}

// Result returns the player's choice and the latest terminal size.
// A menu closed without a choice counts as quitting.
func (m MenuModel) Result() MenuResult {
	r := m.result
	if !m.done {
		r.Quit = true
	}
	r.Config = m.cfg
	return r
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}
	width := m.cfg.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render("  T H R E E S  "),
		"",
		menuHeaderStyle.Render(fmt.Sprintf("  %-14s %6s %6s %7s", "Board", "Games", "Wins", "Best")),
	}
	for i, row := range m.rows {
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+row.cells()))
		} else {
			lines = append(lines, "  "+row.cells())
		}
	}
	lines = append(lines, "", helpStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"))

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// centerText centers text within the given width. Styled text is
// measured without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu shows the board picker and returns the player's choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
