package workers

import (
	"context"
	"log/slog"
	"time"
)

// SessionEvictor is the slice of the session store the janitor needs.
type SessionEvictor interface {
	EvictIdle(maxIdle time.Duration, inUse func(sessionID string) bool) []string
}

// ConnectionChecker reports whether a session still has live subscribers.
type ConnectionChecker interface {
	HasConnections(sessionID string) bool
}

// Janitor periodically evicts sessions that have had no operator action for
// longer than the idle TTL and have no connected clients. Eviction is an
// operational nicety, not a correctness requirement: a session referenced
// again after eviction restarts from its initializer.
type Janitor struct {
	log      *slog.Logger
	store    SessionEvictor
	registry ConnectionChecker
	interval time.Duration
	maxIdle  time.Duration
}

func NewJanitor(log *slog.Logger, store SessionEvictor, registry ConnectionChecker,
	interval, maxIdle time.Duration) *Janitor {
	return &Janitor{
		log:      log,
		store:    store,
		registry: registry,
		interval: interval,
		maxIdle:  maxIdle,
	}
}

func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Debug("Stopping janitor")
			return nil
		case <-ticker.C:
			evicted := j.store.EvictIdle(j.maxIdle, j.registry.HasConnections)
			if len(evicted) > 0 {
				j.log.Info("Evicted idle sessions", "count", len(evicted), "sessions", evicted)
			}
		}
	}
}
