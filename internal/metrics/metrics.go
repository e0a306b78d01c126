package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OptimizeTotal counts completed optimizations by solver strategy.
	OptimizeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimize_total", Help: "Completed route optimizations by strategy."},
		[]string{"strategy"},
	)
	// SolverDuration tracks solver runtime in seconds per strategy.
	SolverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solver_duration_seconds", Help: "Solver runtime in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5}},
		[]string{"strategy"},
	)
	// CacheHits counts route cache hits.
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_cache_hits_total", Help: "Route cache hits."},
	)
	// CacheMisses counts route cache misses.
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_cache_misses_total", Help: "Route cache misses."},
	)
	// Adjustments counts monitor adjustments by reason.
	Adjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "monitor_adjustments_total", Help: "Monitor adjustments by reason."},
		[]string{"reason"},
	)
)

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OptimizeTotal)
		Registry.MustRegister(SolverDuration)
		Registry.MustRegister(CacheHits)
		Registry.MustRegister(CacheMisses)
		Registry.MustRegister(Adjustments)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
