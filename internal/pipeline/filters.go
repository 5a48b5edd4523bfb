// Package pipeline implements the candidate pipeline: the filter chain, the
// quota manager, and the orchestrator that sequences searches against a
// platform adapter and the store.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-scout/internal/types"
)

// Filter narrows a candidate batch. Implementations preserve the relative
// order of survivors and never fail on empty input.
type Filter interface {
	Name() string
	Apply(ctx context.Context, candidates []types.JobCandidate) ([]types.JobCandidate, error)
}

// Chain applies filters in order, feeding each filter's output to the next.
func Chain(ctx context.Context, candidates []types.JobCandidate, filters ...Filter) ([]types.JobCandidate, error) {
	out := candidates
	for _, f := range filters {
		var err error
		out, err = f.Apply(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("%s filter failed: %w", f.Name(), err)
		}
	}
	return out, nil
}

// ExcludeKeywordsFilter drops candidates whose title contains any of the
// keywords, case-insensitive. An empty keyword list passes everything through.
type ExcludeKeywordsFilter struct {
	Keywords []string
}

func (f ExcludeKeywordsFilter) Name() string { return "exclude-keywords" }

func (f ExcludeKeywordsFilter) Apply(_ context.Context, candidates []types.JobCandidate) ([]types.JobCandidate, error) {
	if len(f.Keywords) == 0 {
		return candidates, nil
	}
	out := make([]types.JobCandidate, 0, len(candidates))
	for _, c := range candidates {
		title := strings.ToLower(c.Title)
		excluded := false
		for _, kw := range f.Keywords {
			if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, c)
		}
	}
	return out, nil
}

// RequireKeywordsFilter keeps candidates whose title or description snippet
// contains at least one of the keywords, case-insensitive. An empty keyword
// list means no requirement, not "require nothing".
type RequireKeywordsFilter struct {
	Keywords []string
}

func (f RequireKeywordsFilter) Name() string { return "require-keywords" }

func (f RequireKeywordsFilter) Apply(_ context.Context, candidates []types.JobCandidate) ([]types.JobCandidate, error) {
	if len(f.Keywords) == 0 {
		return candidates, nil
	}
	out := make([]types.JobCandidate, 0, len(candidates))
	for _, c := range candidates {
		haystack := strings.ToLower(c.Title + " " + c.DescriptionSnippet)
		for _, kw := range f.Keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// DedupFilter removes candidates already seen during this run. One instance
// is shared across all searches in an orchestration run, so a listing that
// shows up under two keywords is kept only the first time.
type DedupFilter struct {
	seen map[types.CandidateKey]struct{}
}

// NewDedupFilter returns a fresh filter with no memory of prior runs.
func NewDedupFilter() *DedupFilter {
	return &DedupFilter{seen: make(map[types.CandidateKey]struct{})}
}

func (f *DedupFilter) Name() string { return "dedup" }

func (f *DedupFilter) Apply(_ context.Context, candidates []types.JobCandidate) ([]types.JobCandidate, error) {
	out := make([]types.JobCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.Key()
		if _, dup := f.seen[key]; dup {
			continue
		}
		f.seen[key] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// SeenStore is the store capability the already-seen filter needs.
type SeenStore interface {
	IsCandidateSeen(ctx context.Context, externalID, platform string, since time.Time) (bool, error)
}

// AlreadySeenFilter drops candidates the store recorded within the trailing
// TTL window. Unlike DedupFilter it holds no state of its own, so it
// suppresses re-discovery across process restarts.
type AlreadySeenFilter struct {
	Store   SeenStore
	TTLDays int
	Now     func() time.Time
}

func (f AlreadySeenFilter) Name() string { return "already-seen" }

func (f AlreadySeenFilter) Apply(ctx context.Context, candidates []types.JobCandidate) ([]types.JobCandidate, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	cutoff := now().UTC().AddDate(0, 0, -f.TTLDays)

	out := make([]types.JobCandidate, 0, len(candidates))
	for _, c := range candidates {
		seen, err := f.Store.IsCandidateSeen(ctx, c.ExternalID, c.Platform, cutoff)
		if err != nil {
			return nil, err
		}
		if !seen {
			out = append(out, c)
		}
	}
	return out, nil
}
