package providers

import (
	"time"
	"zoodash/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncBackendRequests(endpoint string, status int)
	ObserveBackendDuration(endpoint string, duration time.Duration)
	IncPollCycles(resource string)
	IncPollFailures(resource string)
	IncStaleDrops(resource string)
	ObservePersistenceDuration(duration time.Duration)
	SetUnreadAlerts(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	backendRequests     *prometheus.CounterVec
	backendDuration     *prometheus.HistogramVec
	pollCycles          *prometheus.CounterVec
	pollFailures        *prometheus.CounterVec
	staleDrops          *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	unreadAlerts        prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncBackendRequests(endpoint string, status int) {
	m.backendRequests.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveBackendDuration(endpoint string, duration time.Duration) {
	m.backendDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPollCycles(resource string) {
	m.pollCycles.WithLabelValues(resource).Inc()
}

func (m *MetricsProvider) IncPollFailures(resource string) {
	m.pollFailures.WithLabelValues(resource).Inc()
}

func (m *MetricsProvider) IncStaleDrops(resource string) {
	m.staleDrops.WithLabelValues(resource).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetUnreadAlerts(count int) {
	m.unreadAlerts.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zoodash_requests_total",
			Help: "Total number of HTTP requests served by the dashboard",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zoodash_request_duration_seconds",
			Help:    "Dashboard HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zoodash_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zoodash_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		backendRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zoodash_backend_requests_total",
			Help: "Total number of requests issued to the zoo backend API",
		}, []string{"endpoint", "status"}),

		backendDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zoodash_backend_request_duration_seconds",
			Help:    "Zoo backend API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		pollCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zoodash_poll_cycles_total",
			Help: "Total number of poll cycles per resource",
		}, []string{"resource"}),

		pollFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zoodash_poll_failures_total",
			Help: "Total number of failed poll cycles per resource",
		}, []string{"resource"}),

		staleDrops: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zoodash_stale_drops_total",
			Help: "Responses discarded because their scope was no longer current",
		}, []string{"resource"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zoodash_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		unreadAlerts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zoodash_unread_alerts",
			Help: "Number of unread alerts in the current scope",
		}),
	}

	return m
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncBackendRequests(_ string, _ int)                {}
func (n *noopMetrics) ObserveBackendDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncPollCycles(_ string)                            {}
func (n *noopMetrics) IncPollFailures(_ string)                          {}
func (n *noopMetrics) IncStaleDrops(_ string)                            {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) SetUnreadAlerts(_ int)                             {}
