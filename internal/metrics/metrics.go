package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	cacheEvents      *prometheus.CounterVec
	archivesTotal    *prometheus.CounterVec
	catalogSize      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptotracker_upstream_requests_total",
			Help: "Total number of requests issued to the market-data API",
		},
		[]string{"endpoint", "status"},
	)
	r.upstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cryptotracker_upstream_duration_seconds",
			Help:    "Market-data API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.cacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptotracker_cache_events_total",
			Help: "Memoization cache hits and misses",
		},
		[]string{"key", "event"},
	)
	r.archivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptotracker_archives_total",
			Help: "Total number of series snapshots written",
		},
		[]string{"backend", "status"},
	)
	r.catalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptotracker_catalog_coins",
			Help: "Number of coins in the last fetched catalog",
		},
	)

	reg.MustRegister(r.upstreamRequests)
	reg.MustRegister(r.upstreamDuration)
	reg.MustRegister(r.cacheEvents)
	reg.MustRegister(r.archivesTotal)
	reg.MustRegister(r.catalogSize)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordUpstream records one market-data API call.
func (r *Registry) RecordUpstream(endpoint, status string, duration float64) {
	r.upstreamRequests.WithLabelValues(endpoint, status).Inc()
	r.upstreamDuration.Observe(duration)
}

// RecordCacheHit records a memoization cache hit.
func (r *Registry) RecordCacheHit(key string) {
	r.cacheEvents.WithLabelValues(key, "hit").Inc()
}

// RecordCacheMiss records a memoization cache miss.
func (r *Registry) RecordCacheMiss(key string) {
	r.cacheEvents.WithLabelValues(key, "miss").Inc()
}

// RecordArchive records a snapshot write.
func (r *Registry) RecordArchive(backend, status string) {
	r.archivesTotal.WithLabelValues(backend, status).Inc()
}

// SetCatalogSize sets the size of the last fetched catalog.
func (r *Registry) SetCatalogSize(n int) {
	r.catalogSize.Set(float64(n))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
