package threes

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in the order moves are tried.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection parses a direction name such as "up" or "L".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("threes: unknown direction %q", s)
}

// stackLine moves every non-zero value to the front of the line, keeping
// their order, and pads the rest with zeros.
func stackLine(line []int) []int {
	out := make([]int, len(line))
	writePos := 0
	for _, v := range line {
		if v != 0 {
			out[writePos] = v
			writePos++
		}
	}
	return out
}

// combineLine merges neighbouring pairs in a single pass from the front.
// A merged pair leaves a zero behind, so the result never takes part in
// another merge during the same pass.
func combineLine(line []int, vocab Vocabulary) ([]int, int) {
	score := 0
	for i := 0; i+1 < len(line); i++ {
		merged, ok := vocab.Merge(line[i], line[i+1])
		if !ok {
			continue
		}
		line[i] = merged
		line[i+1] = 0
		score += merged
	}
	return line, score
}

// slideLine shifts a line toward its front: stack, combine, stack.
func slideLine(line []int, vocab Vocabulary) ([]int, int) {
	stacked := stackLine(line)
	combined, score := combineLine(stacked, vocab)
	return stackLine(combined), score
}

// slideLines applies slideLine to every line, reversing each line around
// the slide when the target edge is at its end.
func slideLines(lines Grid, reversed bool, vocab Vocabulary) (Grid, int) {
	out := make(Grid, len(lines))
	total := 0
	for i, line := range lines {
		if reversed {
			line = reverseLine(line)
		}
		slid, score := slideLine(line, vocab)
		if reversed {
			slid = reverseLine(slid)
		}
		out[i] = slid
		total += score
	}
	return out, total
}

// Transform shifts the grid in the given direction and returns the new
// grid together with the score of every merge made. The input grid is
// left untouched.
//
// Columns are the canonical lines: Up slides each column toward row 0 and
// Down does the same on reversed columns. Left and Right transpose the
// grid so rows become columns, slide, and transpose back.
func Transform(g Grid, dir Direction, vocab Vocabulary) (Grid, int) {
	switch dir {
	case Up:
		return slideLines(g, false, vocab)
	case Down:
		return slideLines(g, true, vocab)
	case Left:
		slid, score := slideLines(transpose(g), false, vocab)
		return transpose(slid), score
	case Right:
		slid, score := slideLines(transpose(g), true, vocab)
		return transpose(slid), score
	default:
		return g.Clone(), 0
	}
}

// CanMove reports whether moving in dir would change the grid.
func CanMove(g Grid, dir Direction, vocab Vocabulary) bool {
	moved, _ := Transform(g, dir, vocab)
	return !moved.Equal(g)
}

// HasValidMove reports whether any direction changes the grid.
func HasValidMove(g Grid, vocab Vocabulary) bool {
	for _, dir := range Directions {
		if CanMove(g, dir, vocab) {
			return true
		}
	}
	return false
}
