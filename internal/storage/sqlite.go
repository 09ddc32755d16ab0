// Package storage provides SQLite-based persistence for level results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timestampLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished (or abandoned) game of a level.
type Result struct {
	RunID     string // generated when empty
	LevelID   string
	Score     int
	MovesUsed int
	Won       bool
	Seed      int64
	Source    string // "local", "ssh", "ws", "sim"
}

// ScoreEntry represents a single stored result.
type ScoreEntry struct {
	ID        int64
	RunID     string
	LevelID   string
	Score     int
	MovesUsed int
	Won       bool
	Seed      int64
	Source    string
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			moves_used INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level_id ON results(level_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(level_id, score DESC);
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

// SaveResult records a result and returns its run ID.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.Source == "" {
		r.Source = "local"
	}

	_, err := s.db.Exec(
		`INSERT INTO results (run_id, level_id, score, moves_used, won, seed, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Score, r.MovesUsed, r.Won, r.Seed, r.Source,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.RunID, nil
}

// SaveScore records a bare score for the given level.
func (s *Store) SaveScore(levelID string, score int) (string, error) {
	return s.SaveResult(Result{LevelID: levelID, Score: score})
}

const entryColumns = `id, run_id, level_id, score, moves_used, won, seed, source, created_at`

// TopScores retrieves the top N results for the given level.
// Results are ordered by score descending, fewer moves first on ties.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+entryColumns+`
		 FROM results
		 WHERE level_id = ?
		 ORDER BY score DESC, moves_used ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// AllScores retrieves all results for the given level (no limit).
func (s *Store) AllScores(levelID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryColumns+`
		 FROM results
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// ResultByRunID retrieves one result. Returns nil if it does not exist.
func (s *Store) ResultByRunID(runID string) (*ScoreEntry, error) {
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// HighScore returns the highest score for the given level.
// Returns 0 if no results exist.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE level_id = ?",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all results for the given level.
func (s *Store) ClearScores(levelID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	GamesCount int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM results WHERE level_id = ?`,
		levelID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}
	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(won), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.GamesCount, &st.Wins, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.LevelID, &e.Score, &e.MovesUsed, &e.Won, &e.Seed, &e.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timestampLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
