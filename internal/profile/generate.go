package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/job-scout/internal/config"
)

// seniorityExperienceLevels maps profile seniority to search experience-level
// filters.
var seniorityExperienceLevels = map[string][]string{
	"junior":    {"entry", "associate"},
	"mid":       {"associate", "mid-senior"},
	"senior":    {"mid-senior", "director"},
	"staff":     {"mid-senior", "director"},
	"principal": {"mid-senior", "director", "executive"},
	"director":  {"director", "executive"},
}

// GenerateSettings transforms a profile into a ready-to-run Settings value:
// one search per search keyword, quota defaults sized to the search count, and
// the default scoring weights.
func GenerateSettings(p *ProfileData, databaseURL string) *config.Settings {
	experienceLevels, ok := seniorityExperienceLevels[p.Seniority]
	if !ok {
		experienceLevels = []string{"associate", "mid-senior"}
	}

	workplace := p.PreferredWorkplace
	if len(workplace) == 0 {
		workplace = []string{"remote"}
	}

	searches := make([]config.SearchConfig, 0, len(p.SearchKeywords))
	for _, keyword := range p.SearchKeywords {
		sc := config.SearchConfig{
			Keyword:  keyword,
			Platform: "linkedin",
			Filters: config.SearchFilters{
				WorkplaceType:   workplace,
				ExperienceLevel: experienceLevels,
				EasyApplyOnly:   true,
				MaxPages:        3,
			},
			ExcludeKeywords: p.ExcludeKeywords,
			ScoringKeywords: p.ScoringKeywords,
		}
		if len(p.PreferredGeoIDs) > 0 {
			geoID := p.PreferredGeoIDs[0]
			sc.Filters.GeoID = &geoID
		}
		searches = append(searches, sc)
	}

	maxSearches := len(searches)
	if maxSearches < 3 {
		maxSearches = 3
	}

	s := config.DefaultSettings()
	s.Database = config.DatabaseConfig{URL: databaseURL}
	s.Quotas = map[string]config.QuotaLimits{
		"linkedin": {
			MaxSearchesPerDay:   maxSearches,
			MaxCandidatesPerDay: 200,
		},
	}
	s.Searches = searches
	return &s
}

// WriteSettings serializes generated settings to a YAML file.
func WriteSettings(s *config.Settings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
