package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the external metrics collaborator: request-scoped
// measurements are handed to it explicitly instead of being accumulated in
// process-global counters with unbounded lifetime.
type Recorder struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a Recorder registered on reg. Pass
// prometheus.DefaultRegisterer in production; tests use their own registry
// so repeated construction never collides.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickerpulse_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tickerpulse_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordRequest records one finished request.
func (r *Recorder) RecordRequest(method, path string, status int, seconds float64) {
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, path).Observe(seconds)
}
