// Package storage provides SQLite-based persistence for the session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome describes how an app session ended.
type Outcome string

const (
	OutcomeWon    Outcome = "won"    // Every brick cleared
	OutcomeExited Outcome = "exited" // Left through the menu button
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Session represents one finished app session.
type Session struct {
	ID        int64
	AppID     string
	Outcome   Outcome
	Drops     int
	Duration  time.Duration
	CreatedAt time.Time
}

// AppStats contains aggregated statistics for an app.
type AppStats struct {
	AppID      string
	Sessions   int
	Wins       int
	TotalDrops int
	TotalTime  time.Duration
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			app_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			drops INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_app_id ON sessions(app_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(created_at DESC, id DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	switch sess.Outcome {
	case OutcomeWon, OutcomeExited:
	default:
		return 0, fmt.Errorf("storage: unknown outcome %q", sess.Outcome)
	}

	result, err := s.db.Exec(
		"INSERT INTO sessions (app_id, outcome, drops, duration_ms) VALUES (?, ?, ?, ?)",
		sess.AppID, string(sess.Outcome), sess.Drops, sess.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the latest sessions across all apps, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, app_id, outcome, drops, duration_ms, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// AppSessions retrieves the latest sessions of one app, newest first.
func (s *Store) AppSessions(appID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, app_id, outcome, drops, duration_ms, created_at
		 FROM sessions
		 WHERE app_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		appID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// scanSessions drains rows into sessions and closes them.
func scanSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var outcome string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&sess.ID, &sess.AppID, &outcome, &sess.Drops, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Outcome = Outcome(outcome)
		sess.Duration = time.Duration(durationMS) * time.Millisecond
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

// ClearSessions deletes the journal of one app.
func (s *Store) ClearSessions(appID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE app_id = ?", appID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GetAppStats retrieves aggregated statistics for a specific app.
func (s *Store) GetAppStats(appID string) (*AppStats, error) {
	stats := &AppStats{AppID: appID}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(drops), 0),
		        COALESCE(SUM(duration_ms), 0),
		        MAX(created_at)
		 FROM sessions WHERE app_id = ?`,
		appID,
	).Scan(&stats.Sessions, &stats.Wins, &stats.TotalDrops, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get app stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllAppStats retrieves statistics for every app in the journal.
func (s *Store) GetAllAppStats() (map[string]*AppStats, error) {
	rows, err := s.db.Query(
		`SELECT app_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        SUM(drops), SUM(duration_ms), MAX(created_at)
		 FROM sessions
		 GROUP BY app_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all app stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*AppStats)
	for rows.Next() {
		var st AppStats
		var totalMS int64
		var lastPlayed any
		if err := rows.Scan(&st.AppID, &st.Sessions, &st.Wins, &st.TotalDrops, &totalMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalTime = time.Duration(totalMS) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.AppID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
