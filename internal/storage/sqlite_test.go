package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// saveScore records a lost game with only a score.
func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveResult(GameResult{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveScore(t, store, "threes", 42)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("threes")
	if err != nil || high != 42 {
		t.Errorf("HighScore() after reopen = %d, %v; want 42", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		saveScore(t, store, "threes", score)
	}
	saveScore(t, store, "threes_mini", 500)

	scores, err := store.TopScores("threes", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Outcome != OutcomeLost {
		t.Errorf("default outcome = %q, want %q", scores[0].Outcome, OutcomeLost)
	}

	miniScores, err := store.TopScores("threes_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(miniScores) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(miniScores))
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult(GameResult{
		GameID:  "threes",
		Score:   321,
		Outcome: OutcomeWon,
		MaxTile: 144,
		Moves:   87,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id == 0 {
		t.Error("SaveResult() returned a zero ID")
	}

	scores, err := store.TopScores("threes", 1)
	if err != nil || len(scores) != 1 {
		t.Fatalf("TopScores() = %v, %v", scores, err)
	}
	got := scores[0]
	if got.Score != 321 || got.Outcome != OutcomeWon || got.MaxTile != 144 || got.Moves != 87 {
		t.Errorf("stored entry = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		saveScore(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to ten
	all, err := store.TopScores("test", 0)
	if err != nil || len(all) != 5 {
		t.Errorf("TopScores(0) = %d entries, %v", len(all), err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("threes")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	saveScore(t, store, "threes", 100)
	saveScore(t, store, "threes", 300)
	saveScore(t, store, "threes", 200)

	high, err = store.HighScore("threes")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "threes", 100)
	saveScore(t, store, "threes", 200)
	saveScore(t, store, "threes_mini", 300)

	if err := store.ClearScores("threes"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("threes", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	miniScores, _ := store.TopScores("threes_mini", 10)
	if len(miniScores) != 1 {
		t.Errorf("Mini scores should not be affected by clearing threes")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		saveScore(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("threes")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.WinRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	results := []GameResult{
		{GameID: "threes", Score: 100, Outcome: OutcomeWon, MaxTile: 144, Moves: 60},
		{GameID: "threes", Score: 50, Outcome: OutcomeLost, MaxTile: 34, Moves: 30},
		{GameID: "threes", Score: 30, Outcome: OutcomeAbandoned, MaxTile: 13, Moves: 12},
		{GameID: "threes", Score: 20, Outcome: OutcomeLost, MaxTile: 8, Moves: 9},
		{GameID: "threes_mini", Score: 10, Outcome: OutcomeWon, MaxTile: 34, Moves: 20},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("threes")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 4 || stats.Wins != 1 || stats.HighScore != 100 || stats.BestTile != 144 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalScore != 200 || stats.AvgScore != 50 {
		t.Errorf("TotalScore = %d, AvgScore = %v; want 200 and 50", stats.TotalScore, stats.AvgScore)
	}
	if stats.WinRate() != 0.25 {
		t.Errorf("WinRate() = %v, want 0.25", stats.WinRate())
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["threes_mini"].Wins != 1 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
