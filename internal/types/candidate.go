// Package types holds the core domain records shared across the pipeline.
package types

import "time"

// JobCandidate is one job listing as extracted from a platform, before
// scoring. ExternalID plus Platform form the candidate's identity.
type JobCandidate struct {
	ExternalID         string    `json:"external_id"`
	Platform           string    `json:"platform"`
	Title              string    `json:"title"`
	Company            string    `json:"company,omitempty"`
	Location           string    `json:"location,omitempty"`
	URL                string    `json:"url"`
	IsEasyApply        bool      `json:"is_easy_apply"`
	WorkplaceType      string    `json:"workplace_type,omitempty"`
	PostedTime         string    `json:"posted_time,omitempty"`
	DescriptionSnippet string    `json:"description_snippet,omitempty"`
	FoundAt            time.Time `json:"found_at"`
}

// CandidateKey is the deduplication identity of a candidate.
type CandidateKey struct {
	ExternalID string
	Platform   string
}

// Key returns the candidate's deduplication identity.
func (c JobCandidate) Key() CandidateKey {
	return CandidateKey{ExternalID: c.ExternalID, Platform: c.Platform}
}

// ScoredCandidate pairs a candidate with its relevance score.
// LLMScore is nil when the LLM stage was disabled or fell back; Score then
// carries the rule-based value alone.
type ScoredCandidate struct {
	Candidate    JobCandidate `json:"candidate"`
	Score        float64      `json:"score"`
	LLMScore     *float64     `json:"llm_score,omitempty"`
	LLMReasoning string       `json:"llm_reasoning,omitempty"`
}

// NewScoredCandidate builds a scored candidate with the score clamped
// to [0, 100].
func NewScoredCandidate(c JobCandidate, score float64) ScoredCandidate {
	return ScoredCandidate{Candidate: c, Score: ClampScore(score)}
}

// WithLLMScore returns a copy carrying the blended score and the LLM verdict.
// The receiver is not modified.
func (s ScoredCandidate) WithLLMScore(blended, llmScore float64, reasoning string) ScoredCandidate {
	out := s
	out.Score = ClampScore(blended)
	ls := llmScore
	out.LLMScore = &ls
	out.LLMReasoning = reasoning
	return out
}

// ClampScore bounds a score to the [0, 100] scale.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SearchRun is the audit record written after each configured search.
type SearchRun struct {
	ID            int64     `json:"id"`
	Platform      string    `json:"platform"`
	Keyword       string    `json:"keyword"`
	FiltersJSON   string    `json:"filters_json"`
	RawCount      int       `json:"raw_count"`
	FilteredCount int       `json:"filtered_count"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}
