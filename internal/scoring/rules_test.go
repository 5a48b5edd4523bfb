package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/types"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		TitleMatchBonus:     20,
		SeniorityMatchBonus: 15,
		EasyApplyBonus:      10,
		RemoteBonus:         10,
		RecencyWeight:       0.3,
	}
}

func TestScoreCandidate_TitleKeywordBonusPerMatch(t *testing.T) {
	cfg := testScoringConfig()
	c := types.JobCandidate{Title: "Python Backend Developer"}

	scored := ScoreCandidate(c, cfg, []string{"python"}, []string{"backend"})

	// Two keyword matches at 20 each, no other bonuses.
	assert.Equal(t, 40.0, scored.Score)
}

func TestScoreCandidate_SeniorityBonusAppliedOnce(t *testing.T) {
	cfg := testScoringConfig()
	c := types.JobCandidate{Title: "Senior Staff Principal Engineer"}

	scored := ScoreCandidate(c, cfg, nil, nil)

	// Three seniority words but the bonus applies once.
	assert.Equal(t, 15.0, scored.Score)
}

func TestScoreCandidate_EasyApplyAndRemoteBonuses(t *testing.T) {
	cfg := testScoringConfig()
	c := types.JobCandidate{Title: "Engineer", IsEasyApply: true, WorkplaceType: "Remote"}

	scored := ScoreCandidate(c, cfg, nil, nil)

	assert.Equal(t, 20.0, scored.Score)
}

func TestScoreCandidate_ClampsAtHundred(t *testing.T) {
	cfg := config.ScoringConfig{
		TitleMatchBonus:     100,
		SeniorityMatchBonus: 100,
		EasyApplyBonus:      100,
		RemoteBonus:         100,
		RecencyWeight:       1.0,
	}
	c := types.JobCandidate{
		Title:         "Senior Go Engineer",
		IsEasyApply:   true,
		WorkplaceType: "remote",
		PostedTime:    "1 hour ago",
	}

	scored := ScoreCandidate(c, cfg, []string{"go"}, []string{"engineer"})

	assert.Equal(t, 100.0, scored.Score)
}

func TestRecencyBonus_TodayGetsMax(t *testing.T) {
	assert.Equal(t, 10.0, recencyBonus("2 hours ago", 1.0))
	assert.Equal(t, 10.0, recencyBonus("45 minutes ago", 1.0))
}

func TestRecencyBonus_OlderIsLower(t *testing.T) {
	oneDay := recencyBonus("1 day ago", 1.0)
	fourWeeks := recencyBonus("4 weeks ago", 1.0)

	assert.Less(t, fourWeeks, oneDay)
	assert.InDelta(t, 10.0-1.0/3.0, oneDay, 1e-9)
	assert.Equal(t, 0.0, recencyBonus("1 day ago", 0.0), "zero weight yields zero bonus")
}

func TestRecencyBonus_UnparseableIsZero(t *testing.T) {
	assert.Equal(t, 0.0, recencyBonus("", 1.0))
	assert.Equal(t, 0.0, recencyBonus("recently", 1.0))
	assert.Equal(t, 0.0, recencyBonus("yesterday", 1.0))
}

func TestRecencyBonus_MonthsDecayToZero(t *testing.T) {
	// 2 months ~ 60 days ago, far past the decay horizon.
	assert.Equal(t, 0.0, recencyBonus("2 months ago", 1.0))
}

func TestEstimateDaysAgo_FirstPatternWins(t *testing.T) {
	// "1 day 3 hours ago" — hours is checked before days.
	days, ok := estimateDaysAgo("3 hours and 1 day ago")
	assert.True(t, ok)
	assert.Equal(t, 0.0, days)

	days, ok = estimateDaysAgo("2 weeks ago")
	assert.True(t, ok)
	assert.Equal(t, 14.0, days)
}

func TestScoreCandidates_SortedDescendingStable(t *testing.T) {
	cfg := testScoringConfig()
	batch := []types.JobCandidate{
		{ExternalID: "a", Title: "Gardener"},
		{ExternalID: "b", Title: "Senior Go Engineer"},
		{ExternalID: "c", Title: "Florist"},
	}

	scored := ScoreCandidates(batch, cfg, []string{"go"}, nil)

	assert.Equal(t, "b", scored[0].Candidate.ExternalID)
	// Tied zero scores keep input order.
	assert.Equal(t, "a", scored[1].Candidate.ExternalID)
	assert.Equal(t, "c", scored[2].Candidate.ExternalID)
}
