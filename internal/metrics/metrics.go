package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitforge_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitforge_ai_requests_total",
			Help: "Total number of AI gateway requests.",
		},
		[]string{"action", "status"},
	)

	ModelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitforge_model_call_duration_seconds",
			Help:    "Model provider call duration in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"action"},
	)

	RateLimitDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitforge_rate_limit_denied_total",
			Help: "Requests denied by the per-action sliding window.",
		},
		[]string{"action"},
	)

	QuotaDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitforge_quota_denied_total",
			Help: "Requests denied by the monthly free-tier quota.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AIRequestsTotal,
		ModelCallDuration,
		RateLimitDeniedTotal,
		QuotaDeniedTotal,
	)
}
