// Package storage provides SQLite-based persistence for run history,
// achievements and lifetime counters.
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

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord represents one finished run.
type RunRecord struct {
	ID           int64
	Seed         int64
	Difficulty   string
	Mode         string
	RoundsWon    int
	BestRound    int
	ShotsFired   int
	HitsOnEnemy  int
	DirectHits   int
	DamageDealt  float64
	DamageTaken  float64
	TokensEarned int
	CreatedAt    time.Time
}

// LifetimeTotals aggregates every recorded run.
type LifetimeTotals struct {
	Runs         int
	RoundsWon    int
	BestRound    int
	ShotsFired   int
	HitsOnEnemy  int
	DirectHits   int
	DamageDealt  float64
	TokensEarned int
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL,
			rounds_won INTEGER NOT NULL DEFAULT 0,
			best_round INTEGER NOT NULL DEFAULT 0,
			shots_fired INTEGER NOT NULL DEFAULT 0,
			hits_on_enemy INTEGER NOT NULL DEFAULT 0,
			direct_hits INTEGER NOT NULL DEFAULT 0,
			damage_dealt REAL NOT NULL DEFAULT 0,
			damage_taken REAL NOT NULL DEFAULT 0,
			tokens_earned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(best_round DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, difficulty, mode, rounds_won, best_round, shots_fired, hits_on_enemy, direct_hits, damage_dealt, damage_taken, tokens_earned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Difficulty, r.Mode, r.RoundsWon, r.BestRound,
		r.ShotsFired, r.HitsOnEnemy, r.DirectHits,
		r.DamageDealt, r.DamageTaken, r.TokensEarned,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// scanRuns reads run rows produced by a full-column SELECT.
func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Seed, &r.Difficulty, &r.Mode, &r.RoundsWon, &r.BestRound,
			&r.ShotsFired, &r.HitsOnEnemy, &r.DirectHits,
			&r.DamageDealt, &r.DamageTaken, &r.TokensEarned, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles the driver returning datetimes as either time.Time or string.
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

const runColumns = `id, seed, difficulty, mode, rounds_won, best_round,
	shots_fired, hits_on_enemy, direct_hits, damage_dealt, damage_taken, tokens_earned, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// TopRuns retrieves the runs that got furthest, best round first.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY best_round DESC, rounds_won DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// BestRound returns the furthest round ever reached.
// Returns 0 if no runs exist.
func (s *Store) BestRound() (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(best_round) FROM runs").Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best round: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return int(best.Int64), nil
}

// Lifetime returns totals aggregated over all recorded runs.
func (s *Store) Lifetime() (LifetimeTotals, error) {
	var t LifetimeTotals
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(rounds_won), 0),
		        COALESCE(MAX(best_round), 0),
		        COALESCE(SUM(shots_fired), 0),
		        COALESCE(SUM(hits_on_enemy), 0),
		        COALESCE(SUM(direct_hits), 0),
		        COALESCE(SUM(damage_dealt), 0),
		        COALESCE(SUM(tokens_earned), 0)
		 FROM runs`,
	).Scan(&t.Runs, &t.RoundsWon, &t.BestRound, &t.ShotsFired,
		&t.HitsOnEnemy, &t.DirectHits, &t.DamageDealt, &t.TokensEarned)
	if err != nil {
		return t, fmt.Errorf("storage: cannot query lifetime totals: %w", err)
	}
	return t, nil
}

// ClearRuns deletes all run history.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// UnlockAchievement records an achievement as unlocked.
// Returns true only the first time a given ID is unlocked.
func (s *Store) UnlockAchievement(id string) (bool, error) {
	result, err := s.db.Exec(
		"INSERT OR IGNORE INTO achievements (id) VALUES (?)",
		id,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	return n > 0, nil
}

// Achievements returns all unlocked achievement IDs with their unlock times.
func (s *Store) Achievements() (map[string]time.Time, error) {
	rows, err := s.db.Query("SELECT id, unlocked_at FROM achievements")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at any
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		unlocked[id] = parseTime(at)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return unlocked, nil
}

// IncrementCounter adds delta to a named counter, creating it if needed.
// Returns the new value.
func (s *Store) IncrementCounter(name string, delta int64) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`,
		name, delta,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot increment counter: %w", err)
	}

	return s.Counter(name)
}

// Counter returns the value of a named counter, 0 if it doesn't exist.
func (s *Store) Counter(name string) (int64, error) {
	var value sql.NullInt64
	err := s.db.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query counter: %w", err)
	}
	return value.Int64, nil
}
