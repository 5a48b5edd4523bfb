// Package profile handles candidate profiles: the schema, PDF resume
// extraction, LLM-based analysis, and settings generation.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ProfileData is a structured professional profile, usually extracted from a
// resume. It drives both settings generation and the LLM scoring prompt.
type ProfileData struct {
	Name               string   `yaml:"name" json:"name"`
	SearchKeywords     []string `yaml:"search_keywords" json:"search_keywords" validate:"min=1"`
	Seniority          string   `yaml:"seniority" json:"seniority" validate:"oneof=junior mid senior staff principal director"`
	ScoringKeywords    []string `yaml:"scoring_keywords" json:"scoring_keywords"`
	ExcludeKeywords    []string `yaml:"exclude_keywords" json:"exclude_keywords"`
	YearsOfExperience  *int     `yaml:"years_of_experience" json:"years_of_experience"`
	PreferredWorkplace []string `yaml:"preferred_workplace" json:"preferred_workplace"`
	PreferredGeoIDs    []int64  `yaml:"preferred_geo_ids" json:"preferred_geo_ids"`
}

// Validate checks the profile's structural constraints.
func (p *ProfileData) Validate() error {
	p.Seniority = strings.ToLower(strings.TrimSpace(p.Seniority))
	if p.Seniority == "" {
		p.Seniority = "mid"
	}
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	return nil
}

// LoadProfile reads and validates a profile YAML file.
func LoadProfile(path string) (*ProfileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var p ProfileData
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the profile as YAML, creating parent directories as needed.
func (p *ProfileData) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}
