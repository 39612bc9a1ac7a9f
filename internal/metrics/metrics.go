package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_http_requests_total",
		Help: "Total number of HTTP requests to the web adapter",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booksearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	SubmitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_submits_total",
		Help: "Widget submits by host and outcome",
	}, []string{"host", "outcome"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_upstream_requests_total",
		Help: "Requests to the Open Library search API by status",
	}, []string{"status"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booksearch_upstream_request_duration_seconds",
		Help:    "Duration of Open Library search requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	WebsocketSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booksearch_ws_sessions",
		Help: "Open live search sessions",
	})
)
