package providers

import (
	"sidebard/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	ObserveUpstreamDuration(operation string, duration time.Duration)
	IncUpstreamErrors(operation string)
	IncTakeoverOutcome(outcome string)
}

// ChatsCounter is satisfied by the chats store.
type ChatsCounter interface {
	Len() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	upstreamDuration    *prometheus.HistogramVec
	upstreamErrors      *prometheus.CounterVec
	takeoverOutcomes    *prometheus.CounterVec
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveUpstreamDuration(operation string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncUpstreamErrors(operation string) {
	m.upstreamErrors.WithLabelValues(operation).Inc()
}

func (m *MetricsProvider) IncTakeoverOutcome(outcome string) {
	m.takeoverOutcomes.WithLabelValues(outcome).Inc()
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

func NewMetricsProvider(conf *structures.Config, chats ChatsCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sidebard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sidebard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidebard_cache_hits_total",
			Help: "Total number of statistics cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidebard_cache_misses_total",
			Help: "Total number of statistics cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sidebard_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sidebard_upstream_duration_seconds",
			Help:    "Duration of admin API calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		upstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sidebard_upstream_errors_total",
			Help: "Total number of failed admin API calls",
		}, []string{"operation"}),

		takeoverOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sidebard_takeover_outcomes_total",
			Help: "Takeover mutations by outcome",
		}, []string{"outcome"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sidebard_chats_total",
		Help: "Number of chats in the loaded collection",
	}, func() float64 {
		return float64(chats.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncUpstreamErrors(_ string)                        {}
func (n *noopMetrics) IncTakeoverOutcome(_ string)                       {}
