package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetQuota returns (searches_run, candidates_found) for a platform on a given
// calendar day (formatted 2006-01-02). A day with no row reads as (0, 0), which
// is how the daily reset works: the date is part of the key.
func (db *DB) GetQuota(ctx context.Context, platform, day string) (int, int, error) {
	var searches, candidates int
	err := db.pool.QueryRow(ctx,
		`SELECT searches_run, candidates_found FROM quota WHERE platform = $1 AND date = $2`,
		platform, day,
	).Scan(&searches, &candidates)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("failed to read quota for %s on %s: %w", platform, day, err)
	}
	return searches, candidates, nil
}

// AddQuota increments the day's counters, creating the row when absent.
// Counters are only ever incremented; rollover happens via the date key.
func (db *DB) AddQuota(ctx context.Context, platform, day string, searchesDelta, candidatesDelta int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO quota (platform, date, searches_run, candidates_found)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (platform, date) DO UPDATE SET
		     searches_run = quota.searches_run + EXCLUDED.searches_run,
		     candidates_found = quota.candidates_found + EXCLUDED.candidates_found`,
		platform, day, searchesDelta, candidatesDelta,
	)
	if err != nil {
		return fmt.Errorf("failed to update quota for %s on %s: %w", platform, day, err)
	}
	return nil
}
