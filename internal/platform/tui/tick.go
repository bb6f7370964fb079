// Package tui runs the game in the terminal with Bubble Tea: the tick
// loop, key mapping, screen styling, the board menu and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-threes/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval returns the time between ticks. Non-positive rates use the
// default rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends the next tick message.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
