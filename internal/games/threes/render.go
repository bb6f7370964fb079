package threes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-threes/internal/core"
)

const (
	cellWidth    = 7 // Width of each cell (including left border)
	cellHeight   = 2 // Height of each cell (including top border)
	hudHeight    = 4 // Title, score, last move and a blank line
	footerHeight = 2
	newestMarker = '*'
)

// boardSize returns the drawn size of a width x height board.
func boardSize(width, height int) (int, int) {
	return width*cellWidth + 1, height*cellHeight + 1
}

// TileColor returns the color used for a tile value.
// The newest tile and the winning tile stand out from the rest.
func TileColor(value int, vocab Vocabulary, newest bool) core.Color {
	switch {
	case value == vocab.Max():
		return core.ColorBrightYellow
	case newest:
		return core.ColorBrightGreen
	case value == vocab.First():
		return core.ColorBrightBlue
	case value == vocab.Second():
		return core.ColorBrightRed
	default:
		return core.ColorBrightWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.engine == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.engine.Snapshot()
	boardW, boardH := boardSize(snap.Width, snap.Height)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, snap, boardX, boardW)
	g.renderBoard(dst, snap, boardX, boardY)
	g.renderOverlays(dst, snap, boardX, boardY, boardW, boardH)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and target.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot, boardX, boardW int) {
	title := g.variant.Name
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightCyan)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", snap.Score))

	target := fmt.Sprintf("Target: %d", snap.Target)
	targetX := core.Max(boardX, boardX+boardW-len(target))
	dst.DrawTextColored(targetX, 1, target, core.ColorBrightYellow)

	last := "Last: -"
	if snap.HasLast {
		last = fmt.Sprintf("Last: +%d", snap.LastScore)
	}
	dst.DrawText(boardX, 2, last)

	moves := fmt.Sprintf("Moves: %d", snap.Moves)
	dst.DrawText(core.Max(boardX, boardX+boardW-len(moves)), 2, moves)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, snap Snapshot, boardX, boardY int) {
	w, h := snap.Width, snap.Height

	for y := range h + 1 {
		for x := range w + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColored(px, py, gridCorner(x, y, w, h), core.ColorGray)

			if x < w {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	vocab := g.engine.Vocabulary()
	for x := range w {
		for y := range h {
			val := snap.Grid[x][y]
			if val == 0 {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1
			newest := snap.HasLast && snap.LastTile == (Point{Col: x, Row: y})

			valStr := strconv.Itoa(val)
			padLeft := core.Max(0, (cellWidth-1-len(valStr))/2)
			color := TileColor(val, vocab, newest)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
			if newest {
				dst.SetColored(cellX+cellWidth-2, cellY, newestMarker, color)
			}
		}
	}
}

func gridCorner(x, y, w, h int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == w:
		return '┐'
	case y == h && x == 0:
		return '└'
	case y == h && x == w:
		return '┘'
	case y == 0:
		return '┬'
	case y == h:
		return '┴'
	case x == 0:
		return '├'
	case x == w:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case snap.Result == ResultWon:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightYellow,
			"YOU WIN!", fmt.Sprintf("Score: %d", snap.Score), "R: Restart  Q: Quit")
	case snap.Result == ResultLost:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"GAME OVER", capitalize(snap.LossReason.String()),
			fmt.Sprintf("Max tile: %d", snap.MaxTile), "R: Restart  Q: Quit")
	}
}

// drawOverlay draws a centered boxed message.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, color)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | R: Restart | Q: Quit"
}
