package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoredCandidate_ClampsHigh(t *testing.T) {
	s := NewScoredCandidate(JobCandidate{ExternalID: "1", Platform: "linkedin"}, 140)
	assert.Equal(t, 100.0, s.Score)
}

func TestNewScoredCandidate_ClampsNegative(t *testing.T) {
	s := NewScoredCandidate(JobCandidate{ExternalID: "1", Platform: "linkedin"}, -3)
	assert.Equal(t, 0.0, s.Score)
}

func TestWithLLMScore_DoesNotModifyReceiver(t *testing.T) {
	orig := NewScoredCandidate(JobCandidate{ExternalID: "1", Platform: "linkedin"}, 50)

	blended := orig.WithLLMScore(68, 80, "solid match")

	assert.Equal(t, 50.0, orig.Score)
	assert.Nil(t, orig.LLMScore)

	assert.Equal(t, 68.0, blended.Score)
	require.NotNil(t, blended.LLMScore)
	assert.Equal(t, 80.0, *blended.LLMScore)
	assert.Equal(t, "solid match", blended.LLMReasoning)
}

func TestKey_IdentityIsExternalIDAndPlatform(t *testing.T) {
	a := JobCandidate{ExternalID: "42", Platform: "linkedin", Title: "Engineer"}
	b := JobCandidate{ExternalID: "42", Platform: "linkedin", Title: "Different title"}
	c := JobCandidate{ExternalID: "42", Platform: "otherboard"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
