// Package storage provides SQLite-based persistence for scores and play
// sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Genre     string
	Player    string
	Score     int
	CreatedAt time.Time
}

// SessionEntry represents one completed play session, including the
// free-text description that selected the genre.
type SessionEntry struct {
	ID          string // session UUID
	Genre       string
	Description string
	Player      string
	Score       int
	Duration    int // seconds
	StartedAt   time.Time
	EndedAt     time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			genre TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_genre ON scores(genre);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(genre, score DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			genre TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_genre ON sessions(genre);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);
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

// parseTimestamp normalizes DATETIME values the driver may return as either
// time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given genre.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(genre, player string, score int) (int64, error) {
	if player == "" {
		player = "local"
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (genre, player, score) VALUES (?, ?, ?)",
		genre, player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given genre.
// Results are ordered by score descending.
func (s *Store) TopScores(genre string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, genre, player, score, created_at
		 FROM scores
		 WHERE genre = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		genre, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Genre, &e.Player, &e.Score, &createdAt); err != nil {
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

// HighScore returns the highest score for the given genre.
// Returns 0 if no scores exist.
func (s *Store) HighScore(genre string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE genre = ?",
		genre,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given genre.
func (s *Store) ClearScores(genre string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE genre = ?", genre)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveSession records a completed play session.
func (s *Store) SaveSession(e SessionEntry) error {
	if e.Player == "" {
		e.Player = "local"
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, genre, description, player, score, duration_secs, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Genre, e.Description, e.Player, e.Score, e.Duration, e.StartedAt, e.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// RecentSessions retrieves the most recently finished sessions.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, genre, description, player, score, duration_secs, started_at, ended_at
		 FROM sessions
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var startedAt, endedAt any
		if err := rows.Scan(&e.ID, &e.Genre, &e.Description, &e.Player, &e.Score, &e.Duration, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.StartedAt = parseTimestamp(startedAt)
		e.EndedAt = parseTimestamp(endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// GenreStats contains aggregated statistics for a genre.
type GenreStats struct {
	Genre      string
	PlayCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGenreStats retrieves aggregated score statistics for a genre.
func (s *Store) GetGenreStats(genre string) (*GenreStats, error) {
	stats := &GenreStats{Genre: genre}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE genre = ?`,
		genre,
	).Scan(&stats.PlayCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get genre stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE genre = ? ORDER BY created_at DESC LIMIT 1`,
		genre,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllGenreStats retrieves statistics for every genre that has scores.
func (s *Store) GetAllGenreStats() (map[string]*GenreStats, error) {
	rows, err := s.db.Query(
		`SELECT genre, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY genre`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get genre stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GenreStats)
	for rows.Next() {
		var g GenreStats
		var lastPlayed any
		if err := rows.Scan(&g.Genre, &g.PlayCount, &g.HighScore, &g.AvgScore, &g.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.LastPlayed = parseTimestamp(lastPlayed)
		stats[g.Genre] = &g
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
