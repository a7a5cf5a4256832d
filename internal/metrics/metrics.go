// Package metrics provides Prometheus metrics for the sightings service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks handled requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sightings",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sightings",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// PageCacheLookups tracks page cache hits and misses
	PageCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sightings",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of page cache lookups by result",
		},
		[]string{"result"},
	)

	// PageCacheInvalidations tracks cache flushes after writes
	PageCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sightings",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total number of page cache invalidations",
		},
	)

	// RateLimitRejections tracks requests refused by the token bucket
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sightings",
			Subsystem: "ratelimit",
			Name:      "rejections_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	// SightingEventsPublished tracks sighting events by publish outcome
	SightingEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sightings",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of sighting events by publish status",
		},
		[]string{"status"},
	)
)
