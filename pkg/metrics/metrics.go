package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillfolio_http_requests_total",
		Help: "HTTP requests processed, by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillfolio_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// UpstreamFallbacksTotal counts requests answered from static content
	// because the upstream provider failed or is not configured.
	UpstreamFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillfolio_upstream_fallbacks_total",
		Help: "Responses served from static fallback content, by provider.",
	}, []string{"provider"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillfolio_upstream_request_duration_seconds",
		Help:    "Latency of outbound calls to recommendation, course and chat providers.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"provider", "outcome"})

	VerificationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillfolio_verification_decisions_total",
		Help: "Verification requests reaching a terminal state, by status.",
	}, []string{"status"})

	WorkerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillfolio_worker_events_total",
		Help: "Events consumed by the worker, by type and outcome.",
	}, []string{"event_type", "outcome"})
)

const (
	ProviderRecommender = "recommender"
	ProviderCourses     = "courses"
	ProviderChat        = "chat"
)
