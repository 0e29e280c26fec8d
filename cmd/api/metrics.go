package main

import (
	"expvar"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// stats holds the request counters updated by the metrics middleware. The expvar map is only published
// by publishVars in main, and the Prometheus collectors are registered on a per-application registry.
type stats struct {
	vars     *expvar.Map
	byStatus *expvar.Map

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newStats() *stats {
	s := &stats{
		vars:     new(expvar.Map).Init(),
		byStatus: new(expvar.Map).Init(),
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviefinder",
			Name:      "http_requests_total",
			Help:      "Number of HTTP responses sent, by request method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moviefinder",
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests, by request method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	s.vars.Set("total_responses_sent_by_status", s.byStatus)

	s.registry.MustRegister(
		s.requests,
		s.duration,
		collectors.NewGoCollector(),
	)

	return s
}
