// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package api

import (
	"time"

	"github.com/attendly/attendly/internal/auth"
	"github.com/attendly/attendly/internal/config"
	"github.com/attendly/attendly/internal/database"
	"github.com/attendly/attendly/internal/notify"
	"github.com/attendly/attendly/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health endpoint
//   - handlers_auth.go: registration and login
//   - handlers_events.go: event listing, reviews, calendar, popularity
//   - handlers_recommend.go: recommendations and notifications
type Handler struct {
	db        *database.DB
	engine    *recommend.Engine
	bus       *notify.Bus
	tokens    *auth.TokenManager
	hasher    *auth.PasswordHasher
	tagger    *recommend.Tagger
	config    *config.Config
	startTime time.Time
}

// NewHandler creates an API handler. bus may be nil when notifications
// are disabled.
func NewHandler(db *database.DB, engine *recommend.Engine, bus *notify.Bus, tokens *auth.TokenManager, hasher *auth.PasswordHasher, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		bus:       bus,
		tokens:    tokens,
		hasher:    hasher,
		tagger:    recommend.NewTagger(engine.Config().Lexicon),
		config:    cfg,
		startTime: time.Now(),
	}
}
