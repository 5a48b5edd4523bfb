// Package platform defines the job-board adapter contract and the registry
// of available platforms.
package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/types"
)

// Adapter is implemented once per job board. Search runs one configured
// keyword search and returns the raw candidates it extracted; deduplication,
// filtering, and scoring happen downstream.
type Adapter interface {
	// PlatformID is the stable identifier stored with each candidate,
	// e.g. "linkedin".
	PlatformID() string

	Search(ctx context.Context, search config.SearchConfig) ([]types.JobCandidate, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Adapter{}
)

// Register makes an adapter available under its platform ID.
// Registering the same ID twice panics; that is a wiring bug, not a runtime
// condition.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	id := a.PlatformID()
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("platform: duplicate adapter registration for %q", id))
	}
	registry[id] = a
}

// Get returns the adapter registered for the platform ID.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q (available: %v)", id, availableLocked())
	}
	return a, nil
}

// Available lists the registered platform IDs in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return availableLocked()
}

func availableLocked() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
