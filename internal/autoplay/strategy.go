// Package autoplay drives Threes engines without a terminal, for
// simulations and benchmarking of simple move strategies.
package autoplay

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

// Strategy picks the next move for a grid. ok is false when no direction
// changes the grid.
type Strategy interface {
	Name() string
	Choose(g threes.Grid, vocab threes.Vocabulary) (dir threes.Direction, ok bool)
}

// StrategyNames lists the strategies accepted by NewStrategy.
var StrategyNames = []string{"random", "greedy", "corner"}

// NewStrategy creates a strategy by name. seed only affects "random".
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch strings.ToLower(name) {
	case "random":
		return &Random{rng: rand.New(rand.NewSource(seed))}, nil
	case "greedy":
		return Greedy{}, nil
	case "corner":
		return Corner{}, nil
	default:
		return nil, fmt.Errorf("autoplay: unknown strategy %q (want %s)", name, strings.Join(StrategyNames, ", "))
	}
}

// Random picks uniformly among the moves that change the grid.
type Random struct {
	rng *rand.Rand
}

// Name returns "random".
func (r *Random) Name() string { return "random" }

// Choose implements Strategy.
func (r *Random) Choose(g threes.Grid, vocab threes.Vocabulary) (threes.Direction, bool) {
	valid := make([]threes.Direction, 0, len(threes.Directions))
	for _, dir := range threes.Directions {
		if threes.CanMove(g, dir, vocab) {
			valid = append(valid, dir)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}
	return valid[r.rng.Intn(len(valid))], true
}

// Greedy picks the move with the highest immediate merge score.
// Ties go to the earlier direction in threes.Directions.
type Greedy struct{}

// Name returns "greedy".
func (Greedy) Name() string { return "greedy" }

// Choose implements Strategy.
func (Greedy) Choose(g threes.Grid, vocab threes.Vocabulary) (threes.Direction, bool) {
	best, bestScore, found := threes.Direction(0), -1, false
	for _, dir := range threes.Directions {
		moved, score := threes.Transform(g, dir, vocab)
		if moved.Equal(g) {
			continue
		}
		if score > bestScore {
			best, bestScore, found = dir, score, true
		}
	}
	return best, found
}

// DefaultCornerOrder keeps big tiles in the top-left corner.
var DefaultCornerOrder = []threes.Direction{threes.Up, threes.Left, threes.Right, threes.Down}

// Corner takes the first move that changes the grid from a fixed
// preference order. A nil Order means DefaultCornerOrder.
type Corner struct {
	Order []threes.Direction
}

// Name returns "corner".
func (Corner) Name() string { return "corner" }

// Choose implements Strategy.
func (c Corner) Choose(g threes.Grid, vocab threes.Vocabulary) (threes.Direction, bool) {
	order := c.Order
	if len(order) == 0 {
		order = DefaultCornerOrder
	}
	for _, dir := range order {
		if threes.CanMove(g, dir, vocab) {
			return dir, true
		}
	}
	return 0, false
}

// ParseOrder parses a comma separated list of directions such as
// "up,left,right,down". Each direction may appear once.
func ParseOrder(s string) ([]threes.Direction, error) {
	var order []threes.Direction
	seen := make(map[threes.Direction]bool)
	for _, part := range strings.Split(s, ",") {
		dir, err := threes.ParseDirection(part)
		if err != nil {
			return nil, fmt.Errorf("autoplay: bad order %q: %w", s, err)
		}
		if seen[dir] {
			return nil, fmt.Errorf("autoplay: bad order %q: %s repeated", s, dir)
		}
		seen[dir] = true
		order = append(order, dir)
	}
	return order, nil
}
