// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package metrics provides Prometheus instrumentation for the API and
// the recommendation engine. Collectors register on the default
// registry through promauto; the HTTP server exposes them at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation engine metrics
	RecommendGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_generations_total",
			Help: "Total number of recommendation generation runs",
		},
		[]string{"trigger", "outcome"}, // trigger: "api", "scheduler"; outcome: "success", "error"
	)

	RecommendGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_generation_duration_seconds",
			Help:    "Duration of one recommendation generation run",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	RecommendCandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_scored",
			Help:    "Candidates scored per generation run",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	RecommendPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_persist_failures_total",
			Help: "Recommendation rows that failed to persist and were skipped",
		},
	)

	// Background refresh metrics
	SchedulerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_runs_total",
			Help: "Background refresh cycles by outcome",
		},
		[]string{"outcome"},
	)

	SchedulerPrunedRecommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_pruned_recommendations_total",
			Help: "Stored recommendations removed by retention pruning",
		},
	)

	// Notification metrics
	NotificationsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Notification messages published to the bus",
		},
	)

	NotificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_delivered_total",
			Help: "Notification messages written to storage by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordGeneration records one recommendation generation run.
func RecordGeneration(trigger string, err error, duration time.Duration, candidates, failed int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	RecommendGenerations.WithLabelValues(trigger, outcome).Inc()
	RecommendGenerationDuration.Observe(duration.Seconds())
	RecommendCandidatesScored.Observe(float64(candidates))
	if failed > 0 {
		RecommendPersistFailures.Add(float64(failed))
	}
}
