// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package httpcache provides the HTTP transport used for every tracker call:
// conditional-GET caching backed by SQLite over retried transient reads.
package httpcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	hc "github.com/gregjones/httpcache"
)

// Cache stores serialized responses keyed by request URL.
type Cache = hc.Cache

const cacheSchema = `
CREATE TABLE IF NOT EXISTS http_cache (
	key       TEXT PRIMARY KEY,
	response  BLOB NOT NULL,
	stored_at TEXT NOT NULL
);
`

// SQLiteCache keeps responses in a table of an existing SQLite database.
// The Cache interface has no error returns, so a failing read is treated as
// a miss and a failing write is dropped; the first failure is kept for Err.
type SQLiteCache struct {
	db *sql.DB

	mu  sync.Mutex
	err error
}

var _ Cache = (*SQLiteCache)(nil)

// NewSQLiteCache creates the cache table if needed.
func NewSQLiteCache(ctx context.Context, db *sql.DB) (*SQLiteCache, error) {
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get returns the response stored under key.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var resp []byte
	err := c.db.QueryRowContext(context.Background(),
		`SELECT response FROM http_cache WHERE key = ?`, key,
	).Scan(&resp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		c.fail(fmt.Errorf("failed to read cache entry %s: %w", key, err))
		return nil, false
	}
	return resp, true
}

// Set stores resp under key, replacing any previous entry.
func (c *SQLiteCache) Set(key string, resp []byte) {
	_, err := c.db.ExecContext(context.Background(), `
		INSERT INTO http_cache (key, response, stored_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			response = excluded.response,
			stored_at = excluded.stored_at`,
		key, resp, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		c.fail(fmt.Errorf("failed to write cache entry %s: %w", key, err))
	}
}

// Delete removes the entry stored under key.
func (c *SQLiteCache) Delete(key string) {
	if _, err := c.db.ExecContext(context.Background(), `DELETE FROM http_cache WHERE key = ?`, key); err != nil {
		c.fail(fmt.Errorf("failed to delete cache entry %s: %w", key, err))
	}
}

// Err returns the first read or write failure, if any.
func (c *SQLiteCache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *SQLiteCache) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}
