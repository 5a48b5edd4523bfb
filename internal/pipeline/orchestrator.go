package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/platform"
	"github.com/jonathan/job-scout/internal/profile"
	"github.com/jonathan/job-scout/internal/scoring"
	"github.com/jonathan/job-scout/internal/types"
)

// Store is the persistence surface the orchestrator drives: candidate
// upserts, the seen-window query, quota counters, and the run audit log.
// *db.DB satisfies it.
type Store interface {
	SeenStore
	QuotaStore
	UpsertCandidate(ctx context.Context, s types.ScoredCandidate) (bool, error)
	InsertSearchRun(ctx context.Context, run types.SearchRun) (int64, error)
}

// SearchResult aggregates one executed search. Quota-skipped searches produce
// no result at all.
type SearchResult struct {
	Keyword       string
	Platform      string
	RawCount      int
	FilteredCount int
	NewCount      int
	Candidates    []types.ScoredCandidate
}

// RunSummary is the outcome of one orchestration run across all configured
// searches.
type RunSummary struct {
	RunID   string
	Results []SearchResult
}

// TotalNew sums the newly stored candidates across all executed searches.
func (s *RunSummary) TotalNew() int {
	total := 0
	for _, r := range s.Results {
		total += r.NewCount
	}
	return total
}

// Orchestrator runs the full pipeline for every configured search, in
// configured order: quota gate, adapter search, filter chain, scoring,
// persistence, accounting, audit.
type Orchestrator struct {
	Store    Store
	Settings *config.Settings
	Profile  *profile.ProfileData

	// Provider is the LLM used for blended scoring. Left nil, it is
	// resolved from the configured provider name on first use.
	Provider llm.Provider

	// Adapters resolves a platform ID to its adapter. Defaults to the
	// package registry; tests substitute fakes.
	Adapters func(id string) (platform.Adapter, error)

	// Now is the clock used for quota dates, TTL cutoffs, and timing.
	Now func() time.Time
}

// New builds an orchestrator with the default adapter registry and wall
// clock.
func New(store Store, settings *config.Settings) *Orchestrator {
	return &Orchestrator{
		Store:    store,
		Settings: settings,
		Adapters: platform.Get,
		Now:      time.Now,
	}
}

// Run executes every configured search sequentially. Searches denied by
// quota are skipped silently. An adapter failure aborts the run; searches
// that already completed stay persisted and are returned alongside the
// error.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{RunID: uuid.NewString()}

	if o.Settings.Scoring.LLM.Enabled && o.Provider == nil {
		provider, err := llm.Get(ctx, o.Settings.Scoring.LLM.Provider)
		if err != nil {
			return summary, fmt.Errorf("failed to initialize LLM provider: %w", err)
		}
		o.Provider = provider
	}

	quota := NewQuotaManager(o.Store, o.Settings.Quotas, o.Now)
	dedup := NewDedupFilter()

	for _, search := range o.Settings.Searches {
		result, executed, err := o.runSearch(ctx, search, quota, dedup)
		if err != nil {
			return summary, fmt.Errorf("search %q on %s failed: %w", search.Keyword, search.Platform, err)
		}
		if executed {
			summary.Results = append(summary.Results, result)
		}
	}
	return summary, nil
}

func (o *Orchestrator) runSearch(ctx context.Context, search config.SearchConfig, quota *QuotaManager, dedup *DedupFilter) (SearchResult, bool, error) {
	ok, err := quota.CanSearch(ctx, search.Platform)
	if err != nil {
		return SearchResult{}, false, err
	}
	if !ok {
		log.Printf("daily search quota reached for %s, skipping %q", search.Platform, search.Keyword)
		return SearchResult{}, false, nil
	}

	adapter, err := o.Adapters(search.Platform)
	if err != nil {
		return SearchResult{}, false, err
	}

	startedAt := o.Now()

	// A stuck adapter call must not hang the whole run.
	searchCtx := ctx
	if o.Settings.Browser.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, o.Settings.Browser.SearchTimeout)
		defer cancel()
	}
	raw, err := adapter.Search(searchCtx, search)
	if err != nil {
		return SearchResult{}, false, err
	}

	filtered, err := Chain(ctx, raw,
		ExcludeKeywordsFilter{Keywords: search.ExcludeKeywords},
		RequireKeywordsFilter{Keywords: search.RequireKeywords},
		dedup,
		AlreadySeenFilter{Store: o.Store, TTLDays: o.Settings.TTLDays, Now: o.Now},
	)
	if err != nil {
		return SearchResult{}, false, err
	}

	for i := range filtered {
		if filtered[i].FoundAt.IsZero() {
			filtered[i].FoundAt = o.Now().UTC()
		}
	}

	scored := scoring.ScoreCandidates(filtered, o.Settings.Scoring, search.RequireKeywords, search.ScoringKeywords)
	scored = scoring.ScoreCandidatesLLM(ctx, scored, o.scoringProfile(), o.Settings.Scoring, o.Provider)

	newCount := 0
	for _, s := range scored {
		inserted, err := o.Store.UpsertCandidate(ctx, s)
		if err != nil {
			return SearchResult{}, false, err
		}
		if inserted {
			newCount++
		}
	}

	if err := quota.RecordSearch(ctx, search.Platform); err != nil {
		return SearchResult{}, false, err
	}
	if err := quota.RecordCandidates(ctx, search.Platform, newCount); err != nil {
		return SearchResult{}, false, err
	}

	filtersJSON, err := json.Marshal(search.Filters)
	if err != nil {
		return SearchResult{}, false, fmt.Errorf("failed to serialize search filters: %w", err)
	}
	if _, err := o.Store.InsertSearchRun(ctx, types.SearchRun{
		Platform:      search.Platform,
		Keyword:       search.Keyword,
		FiltersJSON:   string(filtersJSON),
		RawCount:      len(raw),
		FilteredCount: len(filtered),
		StartedAt:     startedAt,
		FinishedAt:    o.Now(),
	}); err != nil {
		return SearchResult{}, false, err
	}

	return SearchResult{
		Keyword:       search.Keyword,
		Platform:      search.Platform,
		RawCount:      len(raw),
		FilteredCount: len(filtered),
		NewCount:      newCount,
		Candidates:    scored,
	}, true, nil
}

func (o *Orchestrator) scoringProfile() *profile.ProfileData {
	if o.Profile != nil {
		return o.Profile
	}
	return &profile.ProfileData{}
}
