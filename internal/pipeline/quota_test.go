package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-scout/internal/config"
)

type quotaCounts struct {
	searches   int
	candidates int
}

type fakeQuotaStore struct {
	counts map[string]quotaCounts // key: platform + "|" + day
}

func newFakeQuotaStore() *fakeQuotaStore {
	return &fakeQuotaStore{counts: make(map[string]quotaCounts)}
}

func (f *fakeQuotaStore) GetQuota(_ context.Context, platform, day string) (int, int, error) {
	c := f.counts[platform+"|"+day]
	return c.searches, c.candidates, nil
}

func (f *fakeQuotaStore) AddQuota(_ context.Context, platform, day string, searchesDelta, candidatesDelta int) error {
	key := platform + "|" + day
	c := f.counts[key]
	c.searches += searchesDelta
	c.candidates += candidatesDelta
	f.counts[key] = c
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testLimits = map[string]config.QuotaLimits{
	"linkedin": {MaxSearchesPerDay: 3, MaxCandidatesPerDay: 50},
}

func TestQuotaManager_CanSearchBoundary(t *testing.T) {
	store := newFakeQuotaStore()
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	m := NewQuotaManager(store, testLimits, fixedClock(day))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := m.CanSearch(ctx, "linkedin")
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, m.RecordSearch(ctx, "linkedin"))
	}

	// searches_run == max-1: still allowed.
	ok, err := m.CanSearch(ctx, "linkedin")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, m.RecordSearch(ctx, "linkedin"))

	// searches_run == max: denied.
	ok, err = m.CanSearch(ctx, "linkedin")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuotaManager_DateRolloverResetsGate(t *testing.T) {
	store := newFakeQuotaStore()
	ctx := context.Background()

	today := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	m := NewQuotaManager(store, testLimits, fixedClock(today))
	for i := 0; i < 3; i++ {
		require.NoError(t, m.RecordSearch(ctx, "linkedin"))
	}
	ok, err := m.CanSearch(ctx, "linkedin")
	require.NoError(t, err)
	require.False(t, ok)

	// Same store, next calendar date: the gate opens again.
	tomorrow := NewQuotaManager(store, testLimits, fixedClock(today.Add(2*time.Hour)))
	ok, err = tomorrow.CanSearch(ctx, "linkedin")
	require.NoError(t, err)
	assert.True(t, ok, "a new date key has no prior counts")
}

func TestQuotaManager_UnconfiguredPlatformIsUnlimited(t *testing.T) {
	m := NewQuotaManager(newFakeQuotaStore(), testLimits, nil)
	ctx := context.Background()

	ok, err := m.CanSearch(ctx, "otherboard")
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := m.RemainingCandidates(ctx, "otherboard")
	require.NoError(t, err)
	assert.Equal(t, UnlimitedCandidates, remaining)
}

func TestQuotaManager_RemainingCandidatesFlooredAtZero(t *testing.T) {
	store := newFakeQuotaStore()
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	m := NewQuotaManager(store, testLimits, fixedClock(day))
	ctx := context.Background()

	remaining, err := m.RemainingCandidates(ctx, "linkedin")
	require.NoError(t, err)
	assert.Equal(t, 50, remaining)

	require.NoError(t, m.RecordCandidates(ctx, "linkedin", 45))
	remaining, err = m.RemainingCandidates(ctx, "linkedin")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	require.NoError(t, m.RecordCandidates(ctx, "linkedin", 20))
	remaining, err = m.RemainingCandidates(ctx, "linkedin")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining, "remaining never goes negative")
}

func TestQuotaManager_RecordCandidatesIgnoresNonPositive(t *testing.T) {
	store := newFakeQuotaStore()
	m := NewQuotaManager(store, testLimits, fixedClock(time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	require.NoError(t, m.RecordCandidates(ctx, "linkedin", 0))
	require.NoError(t, m.RecordCandidates(ctx, "linkedin", -3))
	assert.Empty(t, store.counts)
}
