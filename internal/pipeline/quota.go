package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-scout/internal/config"
)

// UnlimitedCandidates is returned by RemainingCandidates for platforms with
// no configured quota.
const UnlimitedCandidates = 1 << 30

// QuotaStore is the store capability the quota manager needs. Counters are
// keyed by (platform, calendar date) so a new day starts from zero without
// any reset job.
type QuotaStore interface {
	GetQuota(ctx context.Context, platform, day string) (searchesRun, candidatesFound int, err error)
	AddQuota(ctx context.Context, platform, day string, searchesDelta, candidatesDelta int) error
}

// QuotaManager gates searches and tracks candidate counts against the daily
// per-platform ceilings. State lives in the store, not in memory, so it
// survives restarts and is shared across invocations on the same day.
type QuotaManager struct {
	store  QuotaStore
	limits map[string]config.QuotaLimits
	now    func() time.Time
}

// NewQuotaManager builds a manager over the configured limits. A nil now
// defaults to the wall clock; tests inject a fixed clock.
func NewQuotaManager(store QuotaStore, limits map[string]config.QuotaLimits, now func() time.Time) *QuotaManager {
	if now == nil {
		now = time.Now
	}
	return &QuotaManager{store: store, limits: limits, now: now}
}

func (m *QuotaManager) today() string {
	return m.now().UTC().Format("2006-01-02")
}

// CanSearch reports whether another search may run today. A platform with no
// configured quota is unlimited.
func (m *QuotaManager) CanSearch(ctx context.Context, platform string) (bool, error) {
	limits, ok := m.limits[platform]
	if !ok {
		return true, nil
	}
	searches, _, err := m.store.GetQuota(ctx, platform, m.today())
	if err != nil {
		return false, fmt.Errorf("failed to read quota for %s: %w", platform, err)
	}
	return searches < limits.MaxSearchesPerDay, nil
}

// RemainingCandidates returns how many candidate slots are left today,
// floored at zero, or UnlimitedCandidates when no quota is configured.
func (m *QuotaManager) RemainingCandidates(ctx context.Context, platform string) (int, error) {
	limits, ok := m.limits[platform]
	if !ok {
		return UnlimitedCandidates, nil
	}
	_, candidates, err := m.store.GetQuota(ctx, platform, m.today())
	if err != nil {
		return 0, fmt.Errorf("failed to read quota for %s: %w", platform, err)
	}
	remaining := limits.MaxCandidatesPerDay - candidates
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// RecordSearch increments today's search counter by one.
func (m *QuotaManager) RecordSearch(ctx context.Context, platform string) error {
	return m.store.AddQuota(ctx, platform, m.today(), 1, 0)
}

// RecordCandidates increments today's candidate counter.
func (m *QuotaManager) RecordCandidates(ctx context.Context, platform string, count int) error {
	if count <= 0 {
		return nil
	}
	return m.store.AddQuota(ctx, platform, m.today(), 0, count)
}
