package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the console API.
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

	// GeocodeLookups counts address resolutions by outcome.
	GeocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_lookups_total", Help: "Address resolutions by outcome."},
		[]string{"outcome"},
	)

	// PlanningRuns counts batch planning runs by outcome.
	PlanningRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planning_runs_total", Help: "Batch planning runs by outcome."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterMetrics registers all collectors on the dedicated registry.
func RegisterMetrics() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(GeocodeLookups)
		Registry.MustRegister(PlanningRuns)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
