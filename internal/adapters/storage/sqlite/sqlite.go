// Package sqlite implements the tip repository on an embedded SQLite
// database using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/finbits/tips-service/internal/ports"
)

// Compile-time checks that DB satisfies its ports.
var (
	_ ports.TipRepository = (*DB)(nil)
	_ ports.HealthChecker = (*DB)(nil)
)

const defaultBusyTimeout = 5 * time.Second

// Config holds the storage settings.
type Config struct {
	// Path is the database file, or ":memory:" for an ephemeral store.
	Path string

	// BusyTimeout bounds how long a write waits for the database lock.
	BusyTimeout time.Duration
}

// DB wraps the SQLite connection pool and implements the repository
// and health checker ports.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies session pragmas, and ensures the
// schema exists. The parent directory is created for file-backed paths.
func New(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = defaultBusyTimeout
	}

	if dir := filepath.Dir(cfg.Path); cfg.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection keeps the
	// session pragmas below on the live connection and queues writers
	// in the pool instead of surfacing SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Busy timeout first so the WAL switch below already waits for the
	// lock when several handles open the same fresh file.
	busyMillis := cfg.BusyTimeout.Milliseconds()
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", busyMillis)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.ensureSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Name identifies this component in health check responses.
func (db *DB) Name() string {
	return "sqlite"
}

// Check reports whether the database is reachable.
func (db *DB) Check(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// ensureSchema creates the tips table if it is missing. It runs inside
// a transaction so concurrent initializers on a shared file serialize,
// and CREATE TABLE IF NOT EXISTS keeps the step idempotent.
//
// AUTOINCREMENT keeps ids strictly increasing and prevents SQLite from
// ever reusing a rowid.
func (db *DB) ensureSchema(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tips (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tips table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}

	return nil
}
