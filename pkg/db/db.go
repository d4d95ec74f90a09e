// Package db provides SQLite database operations for the theme customizer.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"maragu.dev/goqite"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
	path string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute pragma %q: %w", pragma, err)
		}
	}

	d := &DB{DB: db, path: path}
	if err := d.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Migrate runs database migrations, including the goqite queue schema.
func (d *DB) Migrate() error {
	schema := `
	-- Customizer preferences, one scope per session
	CREATE TABLE IF NOT EXISTS prefs (
		scope TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, key)
	);

	-- Uploaded preview images
	CREATE TABLE IF NOT EXISTS images (
		scope TEXT NOT NULL,
		slot TEXT NOT NULL,
		mime TEXT NOT NULL,
		data BLOB NOT NULL,
		size INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, slot)
	);

	-- Font warm jobs (for tracking)
	CREATE TABLE IF NOT EXISTS warm_jobs (
		id TEXT PRIMARY KEY,
		family TEXT NOT NULL,
		weights TEXT NOT NULL,
		status TEXT DEFAULT 'pending',
		attempts INTEGER DEFAULT 0,
		max_attempts INTEGER DEFAULT 3,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_warm_jobs_status ON warm_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_warm_jobs_family ON warm_jobs(family);

	-- Warm job lifecycle events
	CREATE TABLE IF NOT EXISTS warm_events (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		details TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_warm_events_job ON warm_events(job_id);
	`

	if _, err := d.Exec(schema); err != nil {
		return err
	}
	if err := goqite.Setup(context.Background(), d.DB); err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("setup goqite: %w", err)
	}
	return nil
}

// SqlConn returns a go-zero sqlx.SqlConn wrapping the underlying database.
// This provides automatic circuit breaking and OpenTelemetry tracing on every query.
func (d *DB) SqlConn() sqlx.SqlConn {
	return sqlx.NewSqlConnFromDB(d.DB, sqlx.WithAcceptable(sqliteAcceptable))
}

// sqliteAcceptable tells the circuit breaker that "database is locked" errors
// are transient (SQLite WAL contention) and should not trip the breaker.
func sqliteAcceptable(err error) bool {
	return err == nil || strings.Contains(err.Error(), "database is locked")
}
