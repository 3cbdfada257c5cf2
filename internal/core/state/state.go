// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package state manages the local SQLite database that holds the HTTP
// response cache and the journal of writes made by each run.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultFileName is the database file created inside the cache directory.
const DefaultFileName = "httpcache.db"

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT    NOT NULL,
	source        TEXT    NOT NULL,
	target        TEXT    NOT NULL,
	source_id     INTEGER NOT NULL,
	target_number INTEGER NOT NULL,
	action        TEXT    NOT NULL,
	actor         TEXT    NOT NULL DEFAULT '',
	created_at    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS journal_run ON journal(run_id);
`

// Store owns the SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and creates if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// One writer at a time; the migration itself is sequential.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// buildDSN creates a WAL DSN with a busy timeout for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// DB exposes the underlying database so other components (the HTTP cache)
// can keep their tables in the same file.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
