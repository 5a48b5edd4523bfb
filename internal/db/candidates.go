package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-scout/internal/types"
)

// UpsertCandidate inserts a scored candidate, ignoring the write if a row with
// the same (external_id, platform) already exists. Returns true when a new row
// was inserted; a duplicate is a normal "not new" signal, not an error.
func (db *DB) UpsertCandidate(ctx context.Context, s types.ScoredCandidate) (bool, error) {
	c := s.Candidate
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO candidates
		     (external_id, platform, title, company, location, url,
		      is_easy_apply, workplace_type, posted_time, description_snippet,
		      score, llm_score, llm_reasoning, found_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (external_id, platform) DO NOTHING`,
		c.ExternalID, c.Platform, c.Title, c.Company, c.Location, c.URL,
		c.IsEasyApply, c.WorkplaceType, c.PostedTime, c.DescriptionSnippet,
		s.Score, s.LLMScore, s.LLMReasoning,
		c.FoundAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert candidate %s/%s: %w", c.Platform, c.ExternalID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// IsCandidateSeen reports whether a candidate with this identity was stored at
// or after the given cutoff. Rows older than the cutoff do not count.
func (db *DB) IsCandidateSeen(ctx context.Context, externalID, platform string, since time.Time) (bool, error) {
	var one int
	err := db.pool.QueryRow(ctx,
		`SELECT 1 FROM candidates
		 WHERE external_id = $1 AND platform = $2 AND found_at >= $3
		 LIMIT 1`,
		externalID, platform, since.UTC().Format(time.RFC3339),
	).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check candidate %s/%s: %w", platform, externalID, err)
	}
	return true, nil
}
