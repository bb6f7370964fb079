// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the database lives unless --db says otherwise.
const DefaultPath = "~/.threes/scores.db"

// Outcomes recorded for a finished game.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeAbandoned = "abandoned" // Quit before the game ended
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// GameResult is a finished game to be recorded.
type GameResult struct {
	GameID  string
	Score   int
	Outcome string
	MaxTile int
	Moves   int
}

// ScoreEntry represents a single recorded game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Outcome   string
	MaxTile   int
	Moves     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL DEFAULT 'lost',
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r GameResult) (int64, error) {
	if r.Outcome == "" {
		r.Outcome = OutcomeLost
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, outcome, max_tile, moves) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Score, r.Outcome, r.MaxTile, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const entryColumns = `id, game_id, score, outcome, max_tile, moves, created_at`

// TopScores returns the best results of a game, highest score first.
// A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.entries(`WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`, gameID, limit)
}

// AllScores returns every result of a game, highest score first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.entries(`WHERE game_id = ? ORDER BY score DESC, id ASC`, gameID)
}

// entries selects results; filter holds the WHERE and ORDER BY clauses.
func (s *Store) entries(filter string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM scores `+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Outcome, &e.MaxTile, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot read result: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read results: %w", err)
	}
	return out, nil
}

// parseTime converts a DATETIME column, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the best score of a game, or 0 if it was never played.
func (s *Store) HighScore(gameID string) (int, error) {
	stats, err := s.GetGameStats(gameID)
	if err != nil {
		return 0, err
	}
	return stats.HighScore, nil
}

// ClearScores deletes every result of a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GameStats aggregates the recorded results of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	BestTile   int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// WinRate returns the fraction of recorded games that were won.
func (g GameStats) WinRate() float64 {
	if g.GamesCount == 0 {
		return 0
	}
	return float64(g.Wins) / float64(g.GamesCount)
}

const statsColumns = `game_id, COUNT(*),
	COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
	COALESCE(MAX(score), 0), COALESCE(MAX(max_tile), 0),
	COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)`

// scanStats reads one row selected with statsColumns.
func scanStats(row interface{ Scan(...any) error }) (GameStats, error) {
	var st GameStats
	var gameID sql.NullString
	var lastPlayed any
	err := row.Scan(&gameID, &st.GamesCount, &st.Wins, &st.HighScore, &st.BestTile,
		&st.AvgScore, &st.TotalScore, &lastPlayed)
	st.GameID = gameID.String
	st.LastPlayed = parseTime(lastPlayed)
	return st, err
}

// GetGameStats aggregates the results of one game. A game that was never
// played has zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st, err := scanStats(s.db.QueryRow(`SELECT `+statsColumns+` FROM scores WHERE game_id = ?`, gameID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	st.GameID = gameID
	return &st, nil
}

// GetAllGamesStats aggregates the results of every game played so far,
// keyed by game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot read stats: %w", err)
		}
		all[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	return all, nil
}
