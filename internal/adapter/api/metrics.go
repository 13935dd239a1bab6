package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestsTotal counts remote API calls by endpoint and outcome.
var RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nnn",
	Subsystem: "api",
	Name:      "requests_total",
	Help:      "Total remote API requests by endpoint and status code.",
}, []string{"endpoint", "code"})

// RequestDuration tracks remote API latency.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "nnn",
	Subsystem: "api",
	Name:      "request_duration_seconds",
	Help:      "Remote API request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"endpoint"})
