// Package scoring produces relevance scores for job candidates: a
// deterministic rule-based score and an optional LLM-blended refinement.
package scoring

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/types"
)

// seniorityKeywords is the fixed vocabulary that triggers the seniority bonus
// once per title, not per matching word.
var seniorityKeywords = []string{"senior", "staff", "principal", "lead", "director", "head", "vp"}

// recencyPatterns maps posted-time text to a days-per-unit multiplier.
// Check order matters: the first matching pattern wins.
var recencyPatterns = []struct {
	re          *regexp.Regexp
	daysPerUnit float64
}{
	{regexp.MustCompile(`(?i)(\d+)\s*hour`), 0},
	{regexp.MustCompile(`(?i)(\d+)\s*minute`), 0},
	{regexp.MustCompile(`(?i)(\d+)\s*day`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*week`), 7},
	{regexp.MustCompile(`(?i)(\d+)\s*month`), 30},
}

// ScoreCandidate computes the rule-based relevance score for one candidate.
// Each bonus is independently additive; the result is clamped to [0, 100].
// requireKeywords and scoringKeywords each add the title bonus per match.
func ScoreCandidate(c types.JobCandidate, cfg config.ScoringConfig, requireKeywords, scoringKeywords []string) types.ScoredCandidate {
	score := 0.0
	titleLower := strings.ToLower(c.Title)

	for _, kw := range append(append([]string{}, requireKeywords...), scoringKeywords...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(titleLower, kw) {
			score += cfg.TitleMatchBonus
		}
	}

	for _, kw := range seniorityKeywords {
		if strings.Contains(titleLower, kw) {
			score += cfg.SeniorityMatchBonus
			break
		}
	}

	if c.IsEasyApply {
		score += cfg.EasyApplyBonus
	}

	if strings.EqualFold(strings.TrimSpace(c.WorkplaceType), "remote") {
		score += cfg.RemoteBonus
	}

	score += recencyBonus(c.PostedTime, cfg.RecencyWeight)

	return types.NewScoredCandidate(c, score)
}

// ScoreCandidates scores a batch and returns it sorted by score descending.
// The sort is stable, so ties keep their input order.
func ScoreCandidates(candidates []types.JobCandidate, cfg config.ScoringConfig, requireKeywords, scoringKeywords []string) []types.ScoredCandidate {
	scored := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoreCandidate(c, cfg, requireKeywords, scoringKeywords))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// recencyBonus estimates a time-decay bonus from posted-time text.
// Today's post earns the full 10 points; the bonus decays by days-ago/3 and
// unparseable text earns nothing.
func recencyBonus(postedTime string, weight float64) float64 {
	if postedTime == "" {
		return 0
	}

	daysAgo, ok := estimateDaysAgo(postedTime)
	if !ok {
		return 0
	}

	const maxBonus = 10.0
	if daysAgo <= 0 {
		return maxBonus * weight
	}
	decay := maxBonus - daysAgo/3.0
	if decay < 0 {
		decay = 0
	}
	return decay * weight
}

// estimateDaysAgo parses posted-time free text into approximate days ago.
func estimateDaysAgo(postedTime string) (float64, bool) {
	for _, p := range recencyPatterns {
		m := p.re.FindStringSubmatch(postedTime)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return value * p.daysPerUnit, true
	}
	return 0, false
}
