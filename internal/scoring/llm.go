package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/profile"
	"github.com/jonathan/job-scout/internal/types"
)

const llmSystemPrompt = `You are a senior recruiter evaluating job-candidate fit.

Given a candidate profile and a job listing, score how well the job matches the candidate on a 0-100 scale using this rubric:
  90-100: Perfect fit — role, skills, seniority, and workplace all align
  70-89:  Strong fit — minor gaps in 1-2 areas
  50-69:  Moderate fit — some relevant experience but notable mismatches
  30-49:  Weak fit — partial skill overlap but significant mismatches
  0-29:   Poor fit — fundamentally misaligned role, stack, or seniority

Evaluation criteria (in priority order):
  1. Role alignment — does the job title/description match target roles?
  2. Skills overlap — does the job require the candidate's core skills?
  3. Seniority match — is the seniority level appropriate?
  4. Workplace preference — remote/hybrid/onsite match?
  5. Description relevance — any flags (stack mismatch, niche domain)?

Return ONLY a JSON object (no markdown, no explanation):
{"score": <integer 0-100>, "reasoning": "<1-2 sentence explanation>"}`

// llmScoreResponse is the JSON shape we require from the provider.
// Score is a pointer so a missing field is a hard parse failure rather than
// a silent zero.
type llmScoreResponse struct {
	Score     *float64 `json:"score"`
	Reasoning string   `json:"reasoning"`
}

// LLMOutcome tags the two possible results of an LLM scoring attempt, so the
// fallback path is explicit rather than hidden in error control flow.
type LLMOutcome int

const (
	// OutcomeBlended means the LLM opinion was obtained and blended in.
	OutcomeBlended LLMOutcome = iota
	// OutcomeFallback means the input was returned unchanged: the candidate
	// had no description, or the provider call or parse failed.
	OutcomeFallback
)

// ScoreCandidateLLM refines one rule-scored candidate with an LLM judgment.
// Candidates without a description snippet are skipped without a provider
// call. On any provider or parse failure the original candidate is returned
// unchanged; an LLM outage must never fail the scoring stage.
func ScoreCandidateLLM(ctx context.Context, scored types.ScoredCandidate, prof *profile.ProfileData, cfg config.LLMConfig, provider llm.Provider) (types.ScoredCandidate, LLMOutcome) {
	c := scored.Candidate
	if c.DescriptionSnippet == "" {
		return scored, OutcomeFallback
	}

	prompt := buildScoringPrompt(c, prof)
	raw, err := provider.Complete(ctx, prompt, cfg.Model, llmSystemPrompt)
	if err != nil {
		log.Printf("LLM scoring failed for %q (%s/%s), keeping rule-based score: %v",
			c.Title, c.Platform, c.ExternalID, err)
		return scored, OutcomeFallback
	}

	llmScore, reasoning, err := parseLLMScore(raw)
	if err != nil {
		log.Printf("LLM scoring response unusable for %q (%s/%s), keeping rule-based score: %v",
			c.Title, c.Platform, c.ExternalID, err)
		return scored, OutcomeFallback
	}

	blended := round2(cfg.RuleWeight*scored.Score + cfg.LLMWeight*llmScore)
	return scored.WithLLMScore(blended, llmScore, reasoning), OutcomeBlended
}

// ScoreCandidatesLLM applies LLM scoring to a rule-scored batch.
// It is a pass-through when LLM scoring is disabled. Each candidate is scored
// independently so one failure never poisons the batch; the result is
// re-sorted by blended score descending.
func ScoreCandidatesLLM(ctx context.Context, scored []types.ScoredCandidate, prof *profile.ProfileData, cfg config.ScoringConfig, provider llm.Provider) []types.ScoredCandidate {
	if !cfg.LLM.Enabled {
		return scored
	}

	result := make([]types.ScoredCandidate, 0, len(scored))
	for _, s := range scored {
		refined, _ := ScoreCandidateLLM(ctx, s, prof, cfg.LLM, provider)
		result = append(result, refined)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// buildScoringPrompt assembles the user prompt from profile and job data.
func buildScoringPrompt(c types.JobCandidate, prof *profile.ProfileData) string {
	years := "not specified"
	if prof.YearsOfExperience != nil {
		years = fmt.Sprintf("%d", *prof.YearsOfExperience)
	}
	workplace := "no preference"
	if len(prof.PreferredWorkplace) > 0 {
		workplace = strings.Join(prof.PreferredWorkplace, ", ")
	}
	skills := "not specified"
	if len(prof.ScoringKeywords) > 0 {
		skills = strings.Join(prof.ScoringKeywords, ", ")
	}
	name := prof.Name
	if name == "" {
		name = "not provided"
	}

	var sb strings.Builder
	sb.WriteString("CANDIDATE PROFILE\n")
	fmt.Fprintf(&sb, "Name: %s\n", name)
	fmt.Fprintf(&sb, "Target roles: %s\n", strings.Join(prof.SearchKeywords, ", "))
	fmt.Fprintf(&sb, "Seniority: %s\n", prof.Seniority)
	fmt.Fprintf(&sb, "Core skills: %s\n", skills)
	fmt.Fprintf(&sb, "Years of experience: %s\n", years)
	fmt.Fprintf(&sb, "Workplace preference: %s\n", workplace)

	sb.WriteString("\nJOB LISTING\n")
	fmt.Fprintf(&sb, "Title: %s\n", c.Title)
	fmt.Fprintf(&sb, "Company: %s\n", orNotProvided(c.Company))
	fmt.Fprintf(&sb, "Location: %s\n", orNotProvided(c.Location))
	fmt.Fprintf(&sb, "Workplace type: %s\n", orNotSpecified(c.WorkplaceType))
	fmt.Fprintf(&sb, "Posted: %s\n", orNotSpecified(c.PostedTime))
	fmt.Fprintf(&sb, "Easy Apply: %s\n", yesNo(c.IsEasyApply))
	if c.DescriptionSnippet != "" {
		fmt.Fprintf(&sb, "Description:\n%s\n", c.DescriptionSnippet)
	}
	return sb.String()
}

// parseLLMScore parses the provider response into (score, reasoning).
// Tolerates markdown fencing; a missing score field is a hard failure.
// The score is clamped to [0, 100].
func parseLLMScore(raw string) (float64, string, error) {
	cleaned := llm.CleanJSONBlock(raw)

	var resp llmScoreResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return 0, "", fmt.Errorf("failed to parse LLM score response as JSON: %w", err)
	}
	if resp.Score == nil {
		return 0, "", fmt.Errorf("LLM response missing 'score' field")
	}
	return types.ClampScore(*resp.Score), resp.Reasoning, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orNotProvided(s string) string {
	if s == "" {
		return "not provided"
	}
	return s
}

func orNotSpecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
