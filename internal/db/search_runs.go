package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-scout/internal/types"
)

// InsertSearchRun appends one audit record and returns its row ID.
func (db *DB) InsertSearchRun(ctx context.Context, run types.SearchRun) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO search_runs
		     (platform, keyword, filters_json, raw_count, filtered_count, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		run.Platform, run.Keyword, run.FiltersJSON, run.RawCount, run.FilteredCount,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search run: %w", err)
	}
	return id, nil
}

// ListSearchRuns returns the most recent audit records, newest first.
func (db *DB) ListSearchRuns(ctx context.Context, limit int) ([]types.SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT platform, keyword, filters_json, raw_count, filtered_count, started_at, finished_at
		 FROM search_runs ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	defer rows.Close()

	var runs []types.SearchRun
	for rows.Next() {
		var run types.SearchRun
		var started, finished string
		if err := rows.Scan(&run.Platform, &run.Keyword, &run.FiltersJSON,
			&run.RawCount, &run.FilteredCount, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, run)
	}
	return runs, nil
}
