package autoplay

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

// Options configures a simulation run.
type Options struct {
	Strategy    string             // Strategy name, see StrategyNames
	Games       int                // Number of games to play
	Workers     int                // Parallel workers, defaults to runtime.NumCPU()
	Seed        int64              // Game i uses Seed+i
	Width       int                // Grid width
	Height      int                // Grid height
	Vocabulary  int                // Vocabulary length
	Probability float64            // High number probability
	MaxMoves    int                // Per-game move limit, 0 for none
	CornerOrder []threes.Direction // Preference order for "corner", nil for the default
	Logger      *log.Logger
}

// GameReport is the outcome of one simulated game.
type GameReport struct {
	Index   int
	Seed    int64
	Score   int
	Moves   int
	MaxTile int
	Result  threes.Result
	Reason  threes.LossReason
}

// Report aggregates a simulation run. Games are ordered by index.
type Report struct {
	Strategy  string
	Games     []GameReport
	Wins      int
	BestScore int
	BestTile  int
	AvgScore  float64
	AvgMoves  float64
	Elapsed   time.Duration
}

// WinRate returns the fraction of games won.
func (r Report) WinRate() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	return float64(r.Wins) / float64(len(r.Games))
}

func (o Options) validate() error {
	if o.Games <= 0 {
		return fmt.Errorf("autoplay: games must be positive, got %d", o.Games)
	}
	if _, err := NewStrategy(o.Strategy, 0); err != nil {
		return err
	}
	_, err := threes.NewEngine(o.Width, o.Height, o.Vocabulary, threes.WithHighNumberProbability(o.Probability))
	return err
}

// Run plays opts.Games games in parallel, one engine per worker at a time.
// It stops early when ctx is cancelled and returns the games finished so
// far together with ctx.Err().
func Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	opts.Workers = min(opts.Workers, opts.Games)
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	start := time.Now()
	jobs := make(chan int)
	results := make(chan GameReport)

	var wg sync.WaitGroup
	for w := range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report, err := playGame(ctx, opts, i)
				if err != nil {
					logger.Debug("game interrupted", "worker", w, "game", i, "err", err)
					continue
				}
				logger.Debug("game finished", "worker", w, "game", i,
					"result", report.Result, "score", report.Score, "moves", report.Moves)
				results <- report
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range opts.Games {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := Report{Strategy: opts.Strategy}
	for r := range results {
		report.Games = append(report.Games, r)
	}
	sort.Slice(report.Games, func(i, j int) bool {
		return report.Games[i].Index < report.Games[j].Index
	})
	report.summarize()
	report.Elapsed = time.Since(start)

	return report, ctx.Err()
}

// playGame plays a single game to its end or until the move limit.
func playGame(ctx context.Context, opts Options, index int) (GameReport, error) {
	seed := opts.Seed + int64(index)
	strategy, err := NewStrategy(opts.Strategy, seed)
	if err != nil {
		return GameReport{}, err
	}
	if _, ok := strategy.(Corner); ok && len(opts.CornerOrder) > 0 {
		strategy = Corner{Order: opts.CornerOrder}
	}
	engine, err := threes.NewEngine(opts.Width, opts.Height, opts.Vocabulary,
		threes.WithSeed(seed),
		threes.WithHighNumberProbability(opts.Probability),
	)
	if err != nil {
		return GameReport{}, err
	}
	engine.Initialize()

	vocab := engine.Vocabulary()
	for !engine.IsFinished() {
		if opts.MaxMoves > 0 && engine.Moves() >= opts.MaxMoves {
			break
		}
		if err := ctx.Err(); err != nil {
			return GameReport{}, err
		}

		dir, ok := strategy.Choose(engine.Grid(), vocab)
		if !ok {
			break
		}
		engine.Move(dir)
	}

	snap := engine.Snapshot()
	return GameReport{
		Index:   index,
		Seed:    seed,
		Score:   snap.Score,
		Moves:   snap.Moves,
		MaxTile: snap.MaxTile,
		Result:  snap.Result,
		Reason:  snap.LossReason,
	}, nil
}

func (r *Report) summarize() {
	if len(r.Games) == 0 {
		return
	}
	totalScore, totalMoves := 0, 0
	for _, g := range r.Games {
		if g.Result == threes.ResultWon {
			r.Wins++
		}
		r.BestScore = max(r.BestScore, g.Score)
		r.BestTile = max(r.BestTile, g.MaxTile)
		totalScore += g.Score
		totalMoves += g.Moves
	}
	r.AvgScore = float64(totalScore) / float64(len(r.Games))
	r.AvgMoves = float64(totalMoves) / float64(len(r.Games))
}
