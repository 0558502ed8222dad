// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/attendly/attendly/internal/auth"
)

// Version is the reported service version.
const Version = "1.0.0"

// Router wires handlers, authentication, and middleware into the HTTP
// routing tree.
type Router struct {
	handler       *Handler
	tokens        *auth.TokenManager
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, tokens *auth.TokenManager, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		tokens:        tokens,
		chiMiddleware: mw,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chiMiddleware.CORS())
	r.Use(PrometheusMetrics)

	// Operational endpoints.
	r.Get("/api/v1/health", rt.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Authentication endpoints carry strict rate limiting to slow
	// down brute forcing.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(rt.chiMiddleware.RateLimitAuth())
		r.Post("/register", rt.handler.Register)
		r.Post("/login", rt.handler.Login)
	})

	// Public read endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.chiMiddleware.RateLimit())

		r.Get("/events", rt.handler.Events)
		r.Get("/events/popular", rt.handler.PopularEvents)
		r.Get("/events/{id}", rt.handler.Event)
		r.Get("/events/{id}/reviews", rt.handler.EventReviews)
		r.Get("/categories", rt.handler.Categories)

		// Everything below requires a verified token.
		r.Group(func(r chi.Router) {
			r.Use(rt.Authenticate)

			r.Post("/events/{id}/reviews", rt.handler.CreateReview)

			r.Get("/calendar", rt.handler.Calendar)
			r.Post("/calendar/{event_id}", rt.handler.AddCalendarEntry)
			r.Delete("/calendar/{event_id}", rt.handler.RemoveCalendarEntry)

			r.Get("/recommendations", rt.handler.Recommendations)
			r.Post("/recommendations/generate", rt.handler.GenerateRecommendations)
			r.Delete("/recommendations/{event_id}", rt.handler.DeleteRecommendation)

			r.Get("/notifications", rt.handler.Notifications)
			r.Post("/notifications/{id}/read", rt.handler.MarkNotificationRead)
		})
	})

	return r
}
