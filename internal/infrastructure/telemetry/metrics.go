package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the catalog collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	cacheRequests   *prometheus.CounterVec
	cacheFailures   *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	staleListWrites *prometheus.CounterVec
	httpRequests    *prometheus.HistogramVec
}

// NewMetrics registers the catalog collectors (plus Go/process collectors)
// on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Cache lookups by entity and result (hit, miss, error).",
		}, []string{"entity", "result"}),
		cacheFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_failures_total",
			Help: "Cache operations that failed and were swallowed.",
		}, []string{"entity", "op"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_store_duration_seconds",
			Help:    "Latency of store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity", "op"}),
		staleListWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_stale_list_writes_total",
			Help: "Writes after which cached list pages are left to expire by TTL.",
		}, []string{"entity"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.cacheRequests,
		m.cacheFailures,
		m.storeDuration,
		m.staleListWrites,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CacheHit(entity string) {
	if m != nil {
		m.cacheRequests.WithLabelValues(entity, "hit").Inc()
	}
}

func (m *Metrics) CacheMiss(entity string) {
	if m != nil {
		m.cacheRequests.WithLabelValues(entity, "miss").Inc()
	}
}

// CacheFailure records a swallowed cache error. Failed gets also count as an "error" lookup.
func (m *Metrics) CacheFailure(entity, op string) {
	if m == nil {
		return
	}
	m.cacheFailures.WithLabelValues(entity, op).Inc()
	if op == "get" {
		m.cacheRequests.WithLabelValues(entity, "error").Inc()
	}
}

// ObserveStore records the duration of a store call started at start.
func (m *Metrics) ObserveStore(entity, op string, start time.Time) {
	if m != nil {
		m.storeDuration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) StaleListWrite(entity string) {
	if m != nil {
		m.staleListWrites.WithLabelValues(entity).Inc()
	}
}

// ObserveHTTP records one served request. route is the matched pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m != nil {
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	}
}
