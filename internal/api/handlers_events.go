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
	"github.com/attendly/attendly/internal/models"
)

// Events handles GET /api/v1/events with optional filters:
// from, to, category_ids, statuses, search, min_rating, page, per_page.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	filter := database.EventFilter{
		From:        getTimeParam(r, "from"),
		To:          getTimeParam(r, "to"),
		CategoryIDs: parseIDList(r.URL.Query().Get("category_ids")),
		Statuses:    parseCommaSeparated(r.URL.Query().Get("statuses")),
		Search:      r.URL.Query().Get("search"),
		MinRating:   getFloatParam(r, "min_rating", 0),
		Page:        getIntParam(r, "page", 1),
		PerPage:     getIntParam(r, "per_page", database.DefaultPageSize),
	}

	listing, err := h.db.ListEvents(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not list events", err)
		return
	}
	respondSuccess(w, http.StatusOK, listing, started)
}

// Event handles GET /api/v1/events/{id}.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	eventID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Event ID must be a positive integer", nil)
		return
	}

	event, err := h.db.GetEvent(r.Context(), eventID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not load event", err)
		return
	}
	respondSuccess(w, http.StatusOK, event, started)
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	categories, err := h.db.ListCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not list categories", err)
		return
	}
	respondSuccess(w, http.StatusOK, categories, started)
}

// EventReviews handles GET /api/v1/events/{id}/reviews.
func (h *Handler) EventReviews(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	eventID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Event ID must be a positive integer", nil)
		return
	}

	page := getIntParam(r, "page", 1)
	perPage := getIntParam(r, "per_page", database.DefaultPageSize)
	reviews, err := h.db.ListEventReviews(r.Context(), eventID, page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not list reviews", err)
		return
	}
	respondSuccess(w, http.StatusOK, reviews, started)
}

// CreateReview handles POST /api/v1/events/{id}/reviews. The review's
// sentiment label is derived from its text before it is stored.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	eventID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Event ID must be a positive integer", nil)
		return
	}

	var req models.CreateReviewRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	review, err := h.db.CreateReview(r.Context(), &models.Review{
		UserID:    claims.UserID,
		EventID:   eventID,
		Rating:    req.Rating,
		Text:      req.Text,
		Sentiment: string(h.tagger.Tag(req.Text).Label),
	})
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
		return
	}
	if errors.Is(err, database.ErrDuplicate) {
		respondError(w, http.StatusConflict, "CONFLICT", "You have already reviewed this event", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not create review", err)
		return
	}

	logging.Info().
		Int64("user_id", claims.UserID).
		Int64("event_id", eventID).
		Int("rating", req.Rating).
		Str("sentiment", review.Sentiment).
		Msg("Review created")
	respondSuccess(w, http.StatusCreated, review, started)
}

// Calendar handles GET /api/v1/calendar.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	events, err := h.db.ListUserCalendar(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not list calendar", err)
		return
	}
	respondSuccess(w, http.StatusOK, events, started)
}

// AddCalendarEntry handles POST /api/v1/calendar/{event_id}.
func (h *Handler) AddCalendarEntry(w http.ResponseWriter, r *http.Request) {
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

	entry, err := h.db.AddCalendarEntry(r.Context(), claims.UserID, eventID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
		return
	}
	if errors.Is(err, database.ErrDuplicate) {
		respondError(w, http.StatusConflict, "CONFLICT", "Event is already on your calendar", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not add calendar entry", err)
		return
	}
	respondSuccess(w, http.StatusCreated, entry, started)
}

// RemoveCalendarEntry handles DELETE /api/v1/calendar/{event_id}.
func (h *Handler) RemoveCalendarEntry(w http.ResponseWriter, r *http.Request) {
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

	err = h.db.RemoveCalendarEntry(r.Context(), claims.UserID, eventID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Event is not on your calendar", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not remove calendar entry", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"event_id": eventID}, started)
}

// PopularEvents handles GET /api/v1/events/popular with optional
// category_id and limit parameters. This is the cold-start path for
// users without enough history for personalized recommendations.
func (h *Handler) PopularEvents(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	categoryID := int64(getIntParam(r, "category_id", 0))
	limit := getIntParam(r, "limit", 0)

	popular, err := h.engine.PopularEvents(r.Context(), categoryID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not rank popular events", err)
		return
	}
	respondSuccess(w, http.StatusOK, popular, started)
}
