package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/job-scout/internal/llm"
)

const analyzeSystemPrompt = `You are a resume analyzer. Extract structured professional data from the resume text provided.

Return ONLY a JSON object (no markdown, no explanation) with these fields:
- name (string): the candidate's full name
- search_keywords (list[str]): 3-8 job search queries the person would use
- seniority (string): one of "junior", "mid", "senior", "staff", "principal", "director"
- scoring_keywords (list[str]): 5-15 technical skills and technologies
- exclude_keywords (list[str]): 3-8 keywords for jobs to exclude
- years_of_experience (int or null): total years of professional experience
- preferred_workplace (list[str]): workplace preferences if mentioned. Empty list if not stated.
- preferred_geo_ids (list[int]): LinkedIn geo IDs if specific locations mentioned. Empty list if not stated.

Infer seniority from years of experience and titles held. For exclude_keywords, include technologies and roles that don't match the candidate's profile.`

const profileSchemaPath = "schemas/profile.json"

// AnalyzeResume sends resume text to an LLM provider and parses the response
// into a validated ProfileData.
func AnalyzeResume(ctx context.Context, resumeText, model string, provider llm.Provider) (*ProfileData, error) {
	raw, err := provider.Complete(ctx, resumeText, model, analyzeSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("resume analysis failed: %w", err)
	}
	return ParseAnalysis(raw)
}

// ParseAnalysis parses an LLM analysis response (tolerating markdown fencing)
// into a ProfileData, checking it against the JSON Schema when available.
func ParseAnalysis(raw string) (*ProfileData, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if schemaPath := resolveSchemaPath(profileSchemaPath); schemaPath != "" {
		if err := validateAgainstSchema(schemaPath, cleaned); err != nil {
			return nil, err
		}
	} else {
		log.Printf("profile schema %s not found, relying on struct validation only", profileSchemaPath)
	}

	var p ProfileData
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response as JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func validateAgainstSchema(schemaPath, document string) error {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("profile schema validation errored: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("analysis response failed schema validation: %v", msgs)
	}
	return nil
}

// resolveSchemaPath tries common path resolutions so commands work from
// different working directories (including tests).
func resolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}
	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}
	return ""
}
