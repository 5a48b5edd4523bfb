package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/profile"
	"github.com/jonathan/job-scout/internal/types"
)

// fakeProvider returns canned responses (or errors) per call, in order.
type fakeProvider struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeProvider) Complete(_ context.Context, prompt, _, _ string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no canned response")
}

func (f *fakeProvider) Name() string { return "fake" }

func testProfile() *profile.ProfileData {
	return &profile.ProfileData{
		Name:            "Jane Doe",
		SearchKeywords:  []string{"golang developer"},
		Seniority:       "senior",
		ScoringKeywords: []string{"go", "postgresql"},
	}
}

func llmConfig() config.LLMConfig {
	return config.LLMConfig{
		Enabled:    true,
		Provider:   "gemini",
		RuleWeight: 0.4,
		LLMWeight:  0.6,
	}
}

func scoredWithSnippet(id string, score float64) types.ScoredCandidate {
	return types.NewScoredCandidate(types.JobCandidate{
		ExternalID:         id,
		Platform:           "linkedin",
		Title:              "Senior Go Engineer",
		DescriptionSnippet: "Building backend services in Go.",
	}, score)
}

func TestScoreCandidateLLM_BlendArithmetic(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"score": 80, "reasoning": "strong fit"}`}}
	in := scoredWithSnippet("1", 50)

	out, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeBlended, outcome)
	// 0.4*50 + 0.6*80 = 68.00 exactly.
	assert.Equal(t, 68.0, out.Score)
	require.NotNil(t, out.LLMScore)
	assert.Equal(t, 80.0, *out.LLMScore)
	assert.Equal(t, "strong fit", out.LLMReasoning)
}

func TestScoreCandidateLLM_SkipsEmptySnippet(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"score": 99}`}}
	in := types.NewScoredCandidate(types.JobCandidate{ExternalID: "1", Title: "Engineer"}, 40)

	out, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, in, out)
	assert.Zero(t, p.calls, "no provider call for empty snippet")
}

func TestScoreCandidateLLM_ProviderErrorFallsBack(t *testing.T) {
	p := &fakeProvider{errs: []error{errors.New("rate limited")}}
	in := scoredWithSnippet("1", 55)

	out, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, 55.0, out.Score)
	assert.Nil(t, out.LLMScore)
}

func TestScoreCandidateLLM_MalformedJSONFallsBack(t *testing.T) {
	p := &fakeProvider{responses: []string{"I'd rate this one pretty highly."}}
	in := scoredWithSnippet("1", 55)

	out, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, in, out)
}

func TestScoreCandidateLLM_MissingScoreFieldFallsBack(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"reasoning": "looks great"}`}}
	in := scoredWithSnippet("1", 55)

	_, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeFallback, outcome)
}

func TestScoreCandidateLLM_FencedResponseAndClamp(t *testing.T) {
	p := &fakeProvider{responses: []string{"```json\n{\"score\": 150, \"reasoning\": \"off the chart\"}\n```"}}
	in := scoredWithSnippet("1", 50)

	out, outcome := ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	assert.Equal(t, OutcomeBlended, outcome)
	require.NotNil(t, out.LLMScore)
	assert.Equal(t, 100.0, *out.LLMScore, "LLM score clamped before blending")
	// 0.4*50 + 0.6*100 = 80.00
	assert.Equal(t, 80.0, out.Score)
}

func TestScoreCandidateLLM_PromptIncludesProfileAndJob(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"score": 70}`}}
	in := scoredWithSnippet("1", 50)

	_, _ = ScoreCandidateLLM(context.Background(), in, testProfile(), llmConfig(), p)

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "Jane Doe")
	assert.Contains(t, p.prompts[0], "golang developer")
	assert.Contains(t, p.prompts[0], "Senior Go Engineer")
	assert.Contains(t, p.prompts[0], "Building backend services in Go.")
}

func TestScoreCandidatesLLM_DisabledIsPassThrough(t *testing.T) {
	p := &fakeProvider{}
	cfg := config.ScoringConfig{LLM: config.LLMConfig{Enabled: false}}
	batch := []types.ScoredCandidate{scoredWithSnippet("1", 10), scoredWithSnippet("2", 90)}

	out := ScoreCandidatesLLM(context.Background(), batch, testProfile(), cfg, p)

	assert.Equal(t, batch, out)
	assert.Zero(t, p.calls)
}

func TestScoreCandidatesLLM_PartialFailureIsolated(t *testing.T) {
	p := &fakeProvider{
		responses: []string{"", `{"score": 90, "reasoning": "great"}`},
		errs:      []error{errors.New("provider down"), nil},
	}
	cfg := config.ScoringConfig{LLM: llmConfig()}
	batch := []types.ScoredCandidate{scoredWithSnippet("failed", 60), scoredWithSnippet("ok", 50)}

	out := ScoreCandidatesLLM(context.Background(), batch, testProfile(), cfg, p)

	require.Len(t, out, 2)
	// Blended: 0.4*50 + 0.6*90 = 74 > 60, so the scored one sorts first.
	assert.Equal(t, "ok", out[0].Candidate.ExternalID)
	assert.Equal(t, 74.0, out[0].Score)

	assert.Equal(t, "failed", out[1].Candidate.ExternalID)
	assert.Equal(t, 60.0, out[1].Score, "failed candidate keeps its rule score")
	assert.Nil(t, out[1].LLMScore)
}

func TestScoreCandidatesLLM_ResortsByBlendedScore(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"score": 10}`, `{"score": 100}`}}
	cfg := config.ScoringConfig{LLM: llmConfig()}
	batch := []types.ScoredCandidate{scoredWithSnippet("top-rule", 90), scoredWithSnippet("top-llm", 80)}

	out := ScoreCandidatesLLM(context.Background(), batch, testProfile(), cfg, p)

	// top-rule: 0.4*90 + 0.6*10 = 42; top-llm: 0.4*80 + 0.6*100 = 92.
	assert.Equal(t, "top-llm", out[0].Candidate.ExternalID)
	assert.Equal(t, 92.0, out[0].Score)
	assert.Equal(t, "top-rule", out[1].Candidate.ExternalID)
	assert.Equal(t, 42.0, out[1].Score)
}
