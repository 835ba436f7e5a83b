// Package cache keeps a local sqlite mirror of fetched auto-apply history
// and created applications so history and stats stay available offline. The
// backend remains the system of record; rows here are replaced on every
// successful fetch.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Initialize creates and opens the sqlite cache under ~/.applywise
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".applywise")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create applywise directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "cache.db")

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = db
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT,
		job_url TEXT,
		status TEXT NOT NULL,
		tailored_resume TEXT,
		cover_letter TEXT,
		error TEXT,
		created_at DATETIME,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL,
		job_url TEXT,
		resume_id TEXT,
		status TEXT NOT NULL,
		created_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_history_status ON history(status);
	CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
	`

	_, err := db.Exec(schema)
	return err
}
