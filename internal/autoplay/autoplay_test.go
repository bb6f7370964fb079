package autoplay

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

func testOptions(strategy string) Options {
	return Options{
		Strategy:    strategy,
		Games:       8,
		Workers:     3,
		Seed:        100,
		Width:       4,
		Height:      4,
		Vocabulary:  9,
		Probability: 0.3,
		MaxMoves:    2000,
		Logger:      log.New(io.Discard),
	}
}

func TestNewStrategy(t *testing.T) {
	for _, name := range StrategyNames {
		s, err := NewStrategy(name, 1)
		if err != nil {
			t.Fatalf("NewStrategy(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}
	}
	if _, err := NewStrategy("clever", 1); err == nil {
		t.Error("NewStrategy(\"clever\") should fail")
	}
}

func TestGreedyPrefersBiggestMerge(t *testing.T) {
	vocab := threes.NewVocabulary(12)
	// Up merges 1+2 (3), Left merges 3+5 (8)
	g := threes.GridFromRows([][]int{
		{3, 5, 0},
		{1, 0, 0},
		{2, 0, 0},
	})

	dir, ok := Greedy{}.Choose(g, vocab)
	if !ok || dir != threes.Left {
		t.Errorf("Greedy chose %v, %v; want left", dir, ok)
	}
}

func TestCornerPreferenceOrder(t *testing.T) {
	vocab := threes.NewVocabulary(12)
	// Packed into the top-left: Up and Left do nothing
	g := threes.GridFromRows([][]int{
		{3, 8},
		{8, 0},
	})

	dir, ok := Corner{}.Choose(g, vocab)
	if !ok || dir != threes.Right {
		t.Errorf("Corner chose %v, %v; want right", dir, ok)
	}
}

func TestCornerCustomOrder(t *testing.T) {
	vocab := threes.NewVocabulary(12)
	g := threes.GridFromRows([][]int{
		{3, 8},
		{8, 0},
	})

	order, err := ParseOrder("down, left,up,right")
	if err != nil {
		t.Fatalf("ParseOrder: %v", err)
	}
	dir, ok := Corner{Order: order}.Choose(g, vocab)
	if !ok || dir != threes.Down {
		t.Errorf("Corner chose %v, %v; want down", dir, ok)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    []threes.Direction
		wantErr bool
	}{
		{"up,left,right,down", DefaultCornerOrder, false},
		{"R,D", []threes.Direction{threes.Right, threes.Down}, false},
		{"left", []threes.Direction{threes.Left}, false},
		{"up,up", nil, true},
		{"up,sideways", nil, true},
		{"", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOrder(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ParseOrder(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("ParseOrder(%q)[%d] = %v, want %v", tc.in, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestStrategiesReportStuckGrid(t *testing.T) {
	vocab := threes.NewVocabulary(4)
	g := threes.GridFromRows([][]int{
		{1, 3},
		{3, 1},
	})

	for _, name := range StrategyNames {
		s, _ := NewStrategy(name, 1)
		if _, ok := s.Choose(g, vocab); ok {
			t.Errorf("%s found a move on a stuck grid", name)
		}
	}
}

func TestRunPlaysEveryGame(t *testing.T) {
	for _, name := range StrategyNames {
		t.Run(name, func(t *testing.T) {
			report, err := Run(context.Background(), testOptions(name))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(report.Games) != 8 {
				t.Fatalf("played %d games, want 8", len(report.Games))
			}
			for i, g := range report.Games {
				if g.Index != i || g.Seed != 100+int64(i) {
					t.Errorf("game %d has index %d seed %d", i, g.Index, g.Seed)
				}
				if g.Score < g.Moves {
					t.Errorf("game %d scored %d in %d moves", i, g.Score, g.Moves)
				}
			}
			if report.BestScore == 0 || report.AvgMoves == 0 {
				t.Errorf("report = %+v", report)
			}
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := testOptions("random")
	a, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 1
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Games {
		if a.Games[i] != b.Games[i] {
			t.Errorf("game %d differs across worker counts: %+v vs %+v", i, a.Games[i], b.Games[i])
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, testOptions("greedy"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(report.Games) == 8 {
		t.Error("a cancelled run should not finish every game")
	}
}

func TestRunValidatesOptions(t *testing.T) {
	opts := testOptions("greedy")
	opts.Games = 0
	if _, err := Run(context.Background(), opts); err == nil {
		t.Error("Run() should reject zero games")
	}

	opts = testOptions("greedy")
	opts.Width = 0
	if _, err := Run(context.Background(), opts); !errors.Is(err, threes.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}
