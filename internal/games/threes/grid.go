package threes

import (
	"fmt"
	"strings"
)

// Point addresses a grid cell.
type Point struct {
	Col int
	Row int
}

// Grid holds tile values addressed as grid[col][row]. Zero is empty.
type Grid [][]int

// NewGrid returns an empty grid of the given size.
func NewGrid(width, height int) Grid {
	g := make(Grid, width)
	for x := range g {
		g[x] = make([]int, height)
	}
	return g
}

// GridFromRows builds a grid from row-major data, which reads the way the
// board is drawn. All rows must have the same length.
func GridFromRows(rows [][]int) Grid {
	if len(rows) == 0 {
		return Grid{}
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			g[x][y] = v
		}
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return len(g)
}

// Height returns the number of rows.
func (g Grid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the value at p.
func (g Grid) At(p Point) int {
	return g[p.Col][p.Row]
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for x, col := range g {
		out[x] = make([]int, len(col))
		copy(out[x], col)
	}
	return out
}

// Equal reports whether both grids hold the same values cell for cell.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for x := range g {
		if len(g[x]) != len(other[x]) {
			return false
		}
		for y := range g[x] {
			if g[x][y] != other[x][y] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns every empty cell, column by column.
func (g Grid) EmptyCells() []Point {
	var cells []Point
	for x, col := range g {
		for y, v := range col {
			if v == 0 {
				cells = append(cells, Point{Col: x, Row: y})
			}
		}
	}
	return cells
}

// Contains reports whether value is on the grid.
func (g Grid) Contains(value int) bool {
	for _, col := range g {
		for _, v := range col {
			if v == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, col := range g {
		for _, v := range col {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Rows returns a row-major copy of the grid.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.Height())
	for y := range rows {
		rows[y] = make([]int, g.Width())
		for x := range g {
			rows[y][x] = g[x][y]
		}
	}
	return rows
}

// String renders the grid row by row, e.g. for test failures.
func (g Grid) String() string {
	var sb strings.Builder
	for y, row := range g.Rows() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%4d", v)
		}
	}
	return sb.String()
}

// transpose swaps columns and rows.
func transpose(g Grid) Grid {
	out := NewGrid(g.Height(), g.Width())
	for x, col := range g {
		for y, v := range col {
			out[y][x] = v
		}
	}
	return out
}

// reverseLine returns line in reverse order.
func reverseLine(line []int) []int {
	out := make([]int, len(line))
	for i, v := range line {
		out[len(line)-1-i] = v
	}
	return out
}
