package poller

import (
	"context"
	"sync"
	"time"
	"zoodash/internal/providers"

	"go.uber.org/atomic"
)

// FetchFunc loads the resource value for one scope key.
type FetchFunc[T any] func(ctx context.Context, scope string) (T, error)

// Resource is a per-resource cache with polling semantics: a load replaces
// the cached value wholesale, a failed load degrades to an explicit
// no-data state, and a load that finishes after the scope has moved on is
// discarded instead of overwriting the new scope's data. The generation
// counter is bumped on every scope change; a commit only happens when the
// generation observed before the fetch is still current.
type Resource[T any] struct {
	name    string
	fetch   FetchFunc[T]
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	gen atomic.Int64

	mu        sync.RWMutex
	scope     string
	data      T
	hasData   bool
	stale     bool
	updatedAt time.Time
}

func NewResource[T any](name string, fetch FetchFunc[T], logger providers.Logger, metrics providers.MetricsProviderInterface) *Resource[T] {
	return &Resource[T]{
		name:    name,
		fetch:   fetch,
		logger:  logger,
		metrics: metrics,
	}
}

// SetScope switches the resource to a new scope key. Cached data for the
// old scope is dropped immediately so the UI shows "no data" rather than
// the previous scope's values while the first load is in flight.
func (r *Resource[T]) SetScope(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope == scope {
		return
	}
	r.gen.Inc()
	r.scope = scope
	var zero T
	r.data = zero
	r.hasData = false
	r.stale = false
}

func (r *Resource[T]) Scope() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scope
}

// Load fetches the current scope and commits the result if the scope has
// not changed meanwhile. A failed load clears fresh data to the no-data
// state but keeps stale (snapshot-restored) data visible, since that is
// already marked degraded.
func (r *Resource[T]) Load(ctx context.Context) {
	// scope and generation must be read as one consistent pair; SetScope
	// bumps the generation under the same lock.
	r.mu.RLock()
	scope := r.scope
	gen := r.gen.Load()
	r.mu.RUnlock()

	r.metrics.IncPollCycles(r.name)
	data, err := r.fetch(ctx, scope)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen.Load() != gen {
		r.metrics.IncStaleDrops(r.name)
		r.logger.Debugf(providers.TypePoll, "Discarding stale %s response for scope %q", r.name, scope)
		return
	}

	if err != nil {
		r.metrics.IncPollFailures(r.name)
		r.logger.Warnf(providers.TypePoll, "Fetch %s failed: %s", r.name, err)
		if !r.stale {
			var zero T
			r.data = zero
			r.hasData = false
		}
		return
	}

	r.data = data
	r.hasData = true
	r.stale = false
	r.updatedAt = time.Now()
}

// Get returns the cached value and whether usable data is present.
func (r *Resource[T]) Get() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data, r.hasData
}

// Stale reports whether the current value came from a restored snapshot
// and has not yet been confirmed by a successful load.
func (r *Resource[T]) Stale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}

func (r *Resource[T]) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

// Mutate applies an in-place local update to the cached value, for
// optimistic UI changes. It does not touch the generation counter: a
// reconciling Load afterwards replaces the value with server truth.
func (r *Resource[T]) Mutate(fn func(T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasData {
		return
	}
	r.data = fn(r.data)
}

// Restore seeds the resource from a persisted snapshot. The value is
// marked stale until the first successful load confirms it.
func (r *Resource[T]) Restore(scope string, data T, savedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen.Inc()
	r.scope = scope
	r.data = data
	r.hasData = true
	r.stale = true
	r.updatedAt = savedAt
}
