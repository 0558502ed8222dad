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

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RegisterRequest
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

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not process password", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, database.ErrDuplicate) {
		respondError(w, http.StatusConflict, "CONFLICT", "Username or email already registered", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not create user", err)
		return
	}

	logging.Info().Int64("user_id", user.ID).Str("username", sanitizeLogValue(user.Username)).Msg("User registered")
	respondSuccess(w, http.StatusCreated, user, started)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.LoginRequest
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

	user, err := h.db.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, database.ErrNotFound) {
		// Same response as a bad password so usernames can't be probed.
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Could not look up user", err)
		return
	}

	if !h.hasher.Check(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not issue token", err)
		return
	}

	logging.Info().Int64("user_id", user.ID).Msg("User logged in")
	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		UserID:    user.ID,
	}, started)
}
