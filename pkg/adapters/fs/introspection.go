package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// TreeState exposes internal state for observability.
type TreeState struct {
	Path          string     `json:"path"`
	Exclude       []string   `json:"exclude"`
	Extensions    []string   `json:"extensions"`
	WatcherActive bool       `json:"watcher_active"`
	Refreshes     int        `json:"refreshes"`
	LastRefresh   *time.Time `json:"last_refresh,omitempty"`
}

// State implements introspection.Introspectable.
func (t *Tree) State() any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return TreeState{
		Path:          t.Path,
		Exclude:       append([]string(nil), t.config.Exclude...),
		Extensions:    append([]string(nil), t.config.Extensions...),
		WatcherActive: t.watcherActive,
		Refreshes:     t.refreshes,
		LastRefresh:   t.lastRefresh,
	}
}

// ComponentType implements introspection.Component.
func (t *Tree) ComponentType() string {
	return "fs-tree"
}

var _ introspection.Introspectable = (*Tree)(nil)
var _ introspection.Component = (*Tree)(nil)

func (t *Tree) setWatcherActive(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.watcherActive = active
}

func (t *Tree) recordRefresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.lastRefresh = &now
	t.refreshes++
}
