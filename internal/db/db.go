// Package db provides PostgreSQL storage for candidates, quota counters, and
// search-run audit records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Timestamps are stored as ISO-8601 text (UTC RFC 3339) so the seen-window
// comparison works lexicographically across drivers.
const (
	candidatesTable = `
CREATE TABLE IF NOT EXISTS candidates (
    id                  BIGSERIAL PRIMARY KEY,
    external_id         TEXT    NOT NULL,
    platform            TEXT    NOT NULL,
    title               TEXT    NOT NULL,
    company             TEXT    NOT NULL DEFAULT '',
    location            TEXT    NOT NULL DEFAULT '',
    url                 TEXT    NOT NULL,
    is_easy_apply       BOOLEAN NOT NULL DEFAULT FALSE,
    workplace_type      TEXT    NOT NULL DEFAULT '',
    posted_time         TEXT    NOT NULL DEFAULT '',
    description_snippet TEXT    NOT NULL DEFAULT '',
    score               DOUBLE PRECISION NOT NULL DEFAULT 0,
    llm_score           DOUBLE PRECISION,
    llm_reasoning       TEXT    NOT NULL DEFAULT '',
    status              TEXT    NOT NULL DEFAULT 'new',
    found_at            TEXT    NOT NULL,
    UNIQUE (external_id, platform)
)`

	quotaTable = `
CREATE TABLE IF NOT EXISTS quota (
    platform         TEXT    NOT NULL,
    date             TEXT    NOT NULL,
    searches_run     INTEGER NOT NULL DEFAULT 0,
    candidates_found INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (platform, date)
)`

	searchRunsTable = `
CREATE TABLE IF NOT EXISTS search_runs (
    id             BIGSERIAL PRIMARY KEY,
    platform       TEXT    NOT NULL,
    keyword        TEXT    NOT NULL,
    filters_json   TEXT    NOT NULL,
    raw_count      INTEGER NOT NULL,
    filtered_count INTEGER NOT NULL,
    started_at     TEXT    NOT NULL,
    finished_at    TEXT    NOT NULL
)`
)

// Migrate creates the schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range []string{candidatesTable, quotaTable, searchRunsTable} {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
