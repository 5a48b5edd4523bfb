package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// exportRow is one line of the report: the search keyword plus the flattened
// candidate and its scores. LLMScore serializes as null when the LLM stage
// did not run for this candidate.
type exportRow struct {
	Keyword            string   `json:"keyword"`
	ExternalID         string   `json:"external_id"`
	Platform           string   `json:"platform"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	URL                string   `json:"url"`
	IsEasyApply        bool     `json:"is_easy_apply"`
	WorkplaceType      string   `json:"workplace_type"`
	PostedTime         string   `json:"posted_time"`
	DescriptionSnippet string   `json:"description_snippet"`
	FoundAt            string   `json:"found_at"`
	Score              float64  `json:"score"`
	LLMScore           *float64 `json:"llm_score"`
	LLMReasoning       string   `json:"llm_reasoning"`
}

// ExportJSON renders the run results as a JSON array with one object per
// (search, candidate) pair.
func ExportJSON(results []SearchResult) ([]byte, error) {
	rows := make([]exportRow, 0)
	for _, r := range results {
		for _, s := range r.Candidates {
			c := s.Candidate
			rows = append(rows, exportRow{
				Keyword:            r.Keyword,
				ExternalID:         c.ExternalID,
				Platform:           c.Platform,
				Title:              c.Title,
				Company:            c.Company,
				Location:           c.Location,
				URL:                c.URL,
				IsEasyApply:        c.IsEasyApply,
				WorkplaceType:      c.WorkplaceType,
				PostedTime:         c.PostedTime,
				DescriptionSnippet: c.DescriptionSnippet,
				FoundAt:            c.FoundAt.UTC().Format(time.RFC3339),
				Score:              s.Score,
				LLMScore:           s.LLMScore,
				LLMReasoning:       s.LLMReasoning,
			})
		}
	}
	return json.MarshalIndent(rows, "", "  ")
}

// WriteExport writes the JSON report to a file.
func WriteExport(results []SearchResult, path string) error {
	data, err := ExportJSON(results)
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export to %s: %w", path, err)
	}
	return nil
}
