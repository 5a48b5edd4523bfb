package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-scout/internal/config"
)

func validProfile() *ProfileData {
	years := 8
	return &ProfileData{
		Name:               "Jane Doe",
		SearchKeywords:     []string{"golang developer", "backend engineer"},
		Seniority:          "senior",
		ScoringKeywords:    []string{"go", "kubernetes", "postgresql"},
		ExcludeKeywords:    []string{"php", "wordpress"},
		YearsOfExperience:  &years,
		PreferredWorkplace: []string{"remote"},
		PreferredGeoIDs:    []int64{103644278},
	}
}

func TestValidate_DefaultsSeniority(t *testing.T) {
	p := &ProfileData{SearchKeywords: []string{"golang"}}
	require.NoError(t, p.Validate())
	assert.Equal(t, "mid", p.Seniority)
}

func TestValidate_NormalizesSeniority(t *testing.T) {
	p := &ProfileData{SearchKeywords: []string{"golang"}, Seniority: "  Senior "}
	require.NoError(t, p.Validate())
	assert.Equal(t, "senior", p.Seniority)
}

func TestValidate_RejectsUnknownSeniority(t *testing.T) {
	p := &ProfileData{SearchKeywords: []string{"golang"}, Seniority: "wizard"}
	assert.Error(t, p.Validate())
}

func TestValidate_RequiresSearchKeywords(t *testing.T) {
	p := &ProfileData{Seniority: "mid"}
	assert.Error(t, p.Validate())
}

func TestSaveAndLoadProfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	p := validProfile()

	require.NoError(t, p.Save(path))
	loaded, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, p, loaded)
}

func TestParseAnalysis_FencedJSON(t *testing.T) {
	raw := "```json\n{\"name\": \"Jane Doe\", \"search_keywords\": [\"golang developer\"], \"seniority\": \"senior\"}\n```"

	p, err := ParseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, []string{"golang developer"}, p.SearchKeywords)
	assert.Equal(t, "senior", p.Seniority)
}

func TestParseAnalysis_InvalidJSON(t *testing.T) {
	_, err := ParseAnalysis("the resume looks great")
	assert.Error(t, err)
}

func TestParseAnalysis_MissingSearchKeywords(t *testing.T) {
	_, err := ParseAnalysis(`{"name": "Jane Doe"}`)
	assert.Error(t, err)
}

func TestGenerateSettings(t *testing.T) {
	s := GenerateSettings(validProfile(), "postgres://localhost:5432/jobscout")

	require.Len(t, s.Searches, 2)
	assert.Equal(t, "golang developer", s.Searches[0].Keyword)
	assert.Equal(t, "linkedin", s.Searches[0].Platform)
	assert.Equal(t, []string{"mid-senior", "director"}, s.Searches[0].Filters.ExperienceLevel)
	assert.Equal(t, []string{"remote"}, s.Searches[0].Filters.WorkplaceType)
	assert.True(t, s.Searches[0].Filters.EasyApplyOnly)
	require.NotNil(t, s.Searches[0].Filters.GeoID)
	assert.Equal(t, int64(103644278), *s.Searches[0].Filters.GeoID)
	assert.Equal(t, []string{"php", "wordpress"}, s.Searches[0].ExcludeKeywords)
	assert.Equal(t, []string{"go", "kubernetes", "postgresql"}, s.Searches[0].ScoringKeywords)

	require.Contains(t, s.Quotas, "linkedin")
	assert.Equal(t, 3, s.Quotas["linkedin"].MaxSearchesPerDay, "floor of 3 searches per day")
	assert.Equal(t, 200, s.Quotas["linkedin"].MaxCandidatesPerDay)

	assert.NoError(t, s.Validate())
}

func TestGenerateSettings_UnknownSeniorityFallback(t *testing.T) {
	p := validProfile()
	p.Seniority = "something-else"

	s := GenerateSettings(p, "")
	assert.Equal(t, []string{"associate", "mid-senior"}, s.Searches[0].Filters.ExperienceLevel)
}

func TestWriteSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := GenerateSettings(validProfile(), "postgres://localhost/jobscout")

	require.NoError(t, WriteSettings(s, path))

	// Generated settings must load back through the strict config loader.
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Searches, 2)
}
