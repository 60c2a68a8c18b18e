package poller

import (
	"context"
	"sync"
	"time"
	"zoodash/internal/aggregate"
	"zoodash/internal/providers"
	"zoodash/internal/zooapi"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

// Historical day distributions never change once the day is over; cache
// them for two days so a window slide still hits.
const historyCacheTTL = 48 * 3600

// HistoryResource maintains the trailing per-day distribution window for
// one animal. Today's entry is re-fetched every poll; past dates are
// fetched once and then served from the cache. Dates whose fetch failed
// stay missing in the map and aggregate to all-zero deviations, so the
// window keeps its fixed width.
type HistoryResource struct {
	api     zooapi.ClientInterface
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	loc     *time.Location
	days    int
	now     func() time.Time

	gen atomic.Int64

	mu        sync.RWMutex
	scope     string
	window    []string
	dists     map[string]*zooapi.DayDistribution
	hasData   bool
	stale     bool
	updatedAt time.Time
}

func NewHistoryResource(api zooapi.ClientInterface, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, loc *time.Location, days int) *HistoryResource {
	return &HistoryResource{
		api:     api,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
		loc:     loc,
		days:    days,
		now:     time.Now,
	}
}

func (h *HistoryResource) SetScope(scope string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scope == scope {
		return
	}
	h.gen.Inc()
	h.scope = scope
	h.window = nil
	h.dists = nil
	h.hasData = false
	h.stale = false
}

func (h *HistoryResource) Scope() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scope
}

func (h *HistoryResource) Load(ctx context.Context) {
	h.mu.RLock()
	scope := h.scope
	gen := h.gen.Load()
	h.mu.RUnlock()

	if scope == "" {
		return
	}

	h.metrics.IncPollCycles("history")
	today := h.now().In(h.loc).Format(aggregate.DateFormat)
	window := aggregate.Window(h.now().In(h.loc), h.days)

	dists := make(map[string]*zooapi.DayDistribution, len(window))
	failed := 0
	for _, date := range window {
		if date != today {
			if dist, ok := h.cached(scope, date); ok {
				dists[date] = dist
				continue
			}
		}

		dist, err := h.api.DayDistribution(ctx, scope, date)
		if err != nil {
			h.logger.Warnf(providers.TypePoll, "Fetch day distribution %s/%s failed: %s", scope, date, err)
			failed++
			continue
		}
		dists[date] = dist
		if date != today {
			h.store(scope, date, dist)
		}
	}
	if failed > 0 {
		h.metrics.IncPollFailures("history")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.gen.Load() != gen {
		h.metrics.IncStaleDrops("history")
		h.logger.Debugf(providers.TypePoll, "Discarding stale history response for scope %q", scope)
		return
	}
	h.window = window
	h.dists = dists
	h.hasData = true
	h.stale = false
	h.updatedAt = time.Now()
}

// Get returns the current window (oldest first) and the distributions
// fetched so far; missing dates are simply absent from the map.
func (h *HistoryResource) Get() ([]string, map[string]*zooapi.DayDistribution, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.window, h.dists, h.hasData
}

func (h *HistoryResource) Stale() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stale
}

func (h *HistoryResource) UpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.updatedAt
}

func (h *HistoryResource) Restore(scope string, window []string, dists map[string]*zooapi.DayDistribution, savedAt time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen.Inc()
	h.scope = scope
	h.window = window
	h.dists = dists
	h.hasData = len(dists) > 0
	h.stale = true
	h.updatedAt = savedAt
}

func historyCacheKey(scope, date string) string {
	return "daydist:" + scope + ":" + date
}

func (h *HistoryResource) cached(scope, date string) (*zooapi.DayDistribution, bool) {
	raw, ok := h.cache.Get(historyCacheKey(scope, date))
	if !ok {
		return nil, false
	}
	var dist zooapi.DayDistribution
	if err := json.Unmarshal(raw, &dist); err != nil {
		return nil, false
	}
	return &dist, true
}

func (h *HistoryResource) store(scope, date string, dist *zooapi.DayDistribution) {
	raw, err := json.Marshal(dist)
	if err != nil {
		return
	}
	h.cache.SetWithTTL(historyCacheKey(scope, date), raw, historyCacheTTL)
}
