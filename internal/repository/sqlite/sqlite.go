// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate database server to install, configure, or manage. For a
// site with one admin and a few hundred RSVP rows it is exactly the right
// size, and ":memory:" makes repository tests trivial.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works.
//
// CONSTRAINTS LIVE HERE:
// The "one username per admin" and "one RSVP per phone number" rules are
// declared as UNIQUE constraints in the schema below. The services also
// pre-check so they can produce friendly messages, but the constraint is
// what keeps the invariant true under concurrent requests.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Blank import: the driver registers itself with database/sql under
	// the name "sqlite" at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. New creates it, Close releases it; the server owns the
// lifecycle.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), configures
// SQLite for concurrent web use, and runs the schema migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — without it,
	// SQLite locks the whole file on every write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always deferred wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the three tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every startup against an existing file.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS admin_users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			singleton     INTEGER NOT NULL DEFAULT 1 UNIQUE CHECK (singleton = 1)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating admin_users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS rsvp_responses (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			phone        TEXT NOT NULL UNIQUE,
			pax          INTEGER NOT NULL,
			submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rsvp_submitted_at ON rsvp_responses(submitted_at);
	`)
	if err != nil {
		return fmt.Errorf("creating rsvp_responses table: %w", err)
	}

	_, err = db.conn.Exec(weddingSchema)
	if err != nil {
		return fmt.Errorf("creating wedding_details table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE-constraint failure.
// modernc.org/sqlite surfaces these as plain errors whose text carries the
// SQLite message, so string matching is the only portable check.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
