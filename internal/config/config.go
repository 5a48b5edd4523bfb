// Package config provides settings loading and validation for the discovery pipeline.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SearchFilters holds the platform-specific search parameters.
type SearchFilters struct {
	GeoID           *int64   `yaml:"geo_id" json:"geo_id,omitempty"`
	WorkplaceType   []string `yaml:"workplace_type" json:"workplace_type,omitempty"`
	ExperienceLevel []string `yaml:"experience_level" json:"experience_level,omitempty"`
	EasyApplyOnly   bool     `yaml:"easy_apply_only" json:"easy_apply_only"`
	MaxPages        int      `yaml:"max_pages" json:"max_pages" validate:"gte=1,lte=10"`
}

// SearchConfig is a single configured keyword search.
type SearchConfig struct {
	Keyword          string        `yaml:"keyword" validate:"required"`
	Platform         string        `yaml:"platform"`
	Filters          SearchFilters `yaml:"filters"`
	ExcludeKeywords  []string      `yaml:"exclude_keywords"`
	RequireKeywords  []string      `yaml:"require_keywords"`
	ScoringKeywords  []string      `yaml:"scoring_keywords"`
	FetchDescription bool          `yaml:"fetch_description"`
}

// QuotaLimits sets the daily ceilings for one platform. A platform with no
// entry in Settings.Quotas is unlimited.
type QuotaLimits struct {
	MaxSearchesPerDay   int `yaml:"max_searches_per_day" validate:"gte=1"`
	MaxCandidatesPerDay int `yaml:"max_candidates_per_day" validate:"gte=1"`
}

// BrowserConfig controls the headless browser session used by adapters.
type BrowserConfig struct {
	CookiesPath   string        `yaml:"cookies_path"`
	Headless      bool          `yaml:"headless"`
	NavTimeout    time.Duration `yaml:"nav_timeout"`
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

// LLMConfig controls the optional second-opinion scorer.
// When Enabled, RuleWeight+LLMWeight must sum to exactly 1.0; this is checked
// at load time so a miscalibrated blend never reaches the scoring stage.
type LLMConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Provider   string  `yaml:"provider"`
	Model      string  `yaml:"model"`
	RuleWeight float64 `yaml:"rule_weight" validate:"gte=0,lte=1"`
	LLMWeight  float64 `yaml:"llm_weight" validate:"gte=0,lte=1"`
}

// ScoringConfig holds the rule-scorer bonus weights and the LLM blend settings.
type ScoringConfig struct {
	TitleMatchBonus     float64   `yaml:"title_match_bonus"`
	SeniorityMatchBonus float64   `yaml:"seniority_match_bonus"`
	EasyApplyBonus      float64   `yaml:"easy_apply_bonus"`
	RemoteBonus         float64   `yaml:"remote_bonus"`
	RecencyWeight       float64   `yaml:"recency_weight" validate:"gte=0,lte=1"`
	LLM                 LLMConfig `yaml:"llm"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Settings is the top-level configuration loaded from YAML.
type Settings struct {
	Database    DatabaseConfig         `yaml:"database"`
	Quotas      map[string]QuotaLimits `yaml:"quotas" validate:"dive"`
	Browser     BrowserConfig          `yaml:"browser"`
	ProfilePath string                 `yaml:"profile_path"`
	Searches    []SearchConfig         `yaml:"searches" validate:"min=1,dive"`
	Scoring     ScoringConfig          `yaml:"scoring"`
	TTLDays     int                    `yaml:"ttl_days" validate:"gte=1"`
}

// DefaultSettings returns the baseline configuration that the YAML file
// overrides. Per-search defaults are applied in normalize.
func DefaultSettings() Settings {
	return Settings{
		Browser: BrowserConfig{
			CookiesPath:   "config/linkedin_cookies.json",
			Headless:      true,
			NavTimeout:    30 * time.Second,
			SearchTimeout: 5 * time.Minute,
		},
		Scoring: ScoringConfig{
			TitleMatchBonus:     20,
			SeniorityMatchBonus: 15,
			EasyApplyBonus:      10,
			RemoteBonus:         10,
			RecencyWeight:       0.3,
			LLM: LLMConfig{
				Provider:   "gemini",
				RuleWeight: 0.5,
				LLMWeight:  0.5,
			},
		},
		TTLDays: 30,
	}
}

// Load reads, parses, and validates a settings YAML file.
// Any validation failure is returned before browser or network activity starts.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes settings from raw YAML and validates them.
func Parse(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// normalize trims keywords and fills per-search defaults.
func (s *Settings) normalize() {
	for i := range s.Searches {
		sc := &s.Searches[i]
		sc.Keyword = strings.TrimSpace(sc.Keyword)
		if sc.Platform == "" {
			sc.Platform = "linkedin"
		}
		if sc.Filters.MaxPages == 0 {
			sc.Filters.MaxPages = 3
		}
	}
}

// Validate checks structural constraints and the cross-field invariants.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	for i, sc := range s.Searches {
		if strings.TrimSpace(sc.Keyword) == "" {
			return fmt.Errorf("settings validation failed: searches[%d].keyword must not be empty", i)
		}
	}

	if s.Scoring.LLM.Enabled {
		sum := s.Scoring.LLM.RuleWeight + s.Scoring.LLM.LLMWeight
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf(
				"settings validation failed: scoring.llm rule_weight (%.3f) + llm_weight (%.3f) must equal 1.0",
				s.Scoring.LLM.RuleWeight, s.Scoring.LLM.LLMWeight,
			)
		}
		if s.Scoring.LLM.Provider == "" {
			return fmt.Errorf("settings validation failed: scoring.llm.provider is required when LLM scoring is enabled")
		}
	}

	return nil
}
