// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/attendly/attendly/internal/database"
	"github.com/attendly/attendly/internal/logging"
	"github.com/attendly/attendly/internal/metrics"
	"github.com/attendly/attendly/internal/notify"
	"github.com/attendly/attendly/internal/recommend"
)

// GenerateRecommendations handles POST /api/v1/recommendations/generate.
// It runs a full generation pass for the authenticated user and returns
// the freshly persisted ranking.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	result, err := h.engine.Generate(r.Context(), claims.UserID)
	metrics.RecordGeneration("api", err, time.Since(started), resultCandidates(result), resultFailed(result))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Could not generate recommendations", err)
		return
	}

	if h.bus != nil && result.Persisted > 0 {
		event := notify.RecommendationsGenerated{
			UserID: claims.UserID,
			Count:  result.Persisted,
		}
		if len(result.Recommendations) > 0 {
			event.TopEventTitle = result.Recommendations[0].Title
		}
		if err := h.bus.PublishGenerated(event); err != nil {
			logging.Warn().Err(err).Int64("user_id", claims.UserID).Msg("Notification publish failed")
		}
	}

	logging.Info().
		Int64("user_id", claims.UserID).
		Int("candidates", result.Candidates).
		Int("persisted", result.Persisted).
		Int("failed", result.Failed).
		Msg("Recommendations generated")
	respondSuccess(w, http.StatusOK, result, started)
}

// Recommendations handles GET /api/v1/recommendations?limit=N.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	limit := getIntParam(r, "limit", 0)
	recs, err := h.engine.TopRecommendations(r.Context(), claims.UserID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not read recommendations", err)
		return
	}
	respondSuccess(w, http.StatusOK, recs, started)
}

// DeleteRecommendation handles DELETE /api/v1/recommendations/{event_id},
// dismissing one stored recommendation.
func (h *Handler) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	eventID, err := urlParamID(r, "event_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Event ID must be a positive integer", nil)
		return
	}

	err = h.db.DeleteRecommendation(r.Context(), claims.UserID, eventID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No recommendation for this event", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not delete recommendation", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"event_id": eventID}, started)
}

// Notifications handles GET /api/v1/notifications?unread=true&limit=N.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := getIntParam(r, "limit", 50)
	notifications, err := h.db.ListNotifications(r.Context(), claims.UserID, unreadOnly, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not list notifications", err)
		return
	}
	respondSuccess(w, http.StatusOK, notifications, started)
}

// MarkNotificationRead handles POST /api/v1/notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	notificationID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Notification ID must be a positive integer", nil)
		return
	}

	err = h.db.MarkNotificationRead(r.Context(), claims.UserID, notificationID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not mark notification read", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"id": notificationID}, started)
}

func resultCandidates(result *recommend.GenerateResult) int {
	if result == nil {
		return 0
	}
	return result.Candidates
}

func resultFailed(result *recommend.GenerateResult) int {
	if result == nil {
		return 0
	}
	return result.Failed
}
