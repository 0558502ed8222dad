// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package api

import (
	"net/http"
	"time"

	"github.com/attendly/attendly/internal/models"
)

// Health handles GET /api/v1/health. The service is degraded when the
// database does not answer a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "healthy"
	httpStatus := http.StatusOK
	if !dbConnected {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondSuccess(w, httpStatus, models.HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, started)
}
