// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package scheduler refreshes stored recommendations in the background
// and prunes entries past their retention window.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendly/attendly/internal/config"
	"github.com/attendly/attendly/internal/metrics"
	"github.com/attendly/attendly/internal/notify"
	"github.com/attendly/attendly/internal/recommend"
)

// Store is the storage the scheduler needs beyond the engine's own.
type Store interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
	DeleteRecommendationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler periodically regenerates recommendations for every user.
// It implements suture.Service through Serve.
type Scheduler struct {
	cfg    config.SchedulerConfig
	engine *recommend.Engine
	store  Store
	bus    *notify.Bus
	logger zerolog.Logger
}

// New creates a scheduler. bus may be nil to skip notifications.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.SchedulerConfig, engine *recommend.Engine, store Store, bus *notify.Bus, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		engine: engine,
		store:  store,
		bus:    bus,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Serve runs refresh cycles until ctx is cancelled. The first cycle
// runs immediately so a fresh deployment has recommendations before the
// first full interval elapses.
func (s *Scheduler) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.cfg.Interval).
		Int("retention_days", s.cfg.RetentionDays).
		Msg("Recommendation scheduler started")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle refreshes every user and prunes old rows. Per-user failures
// are logged and skipped; one broken profile must not starve the rest.
func (s *Scheduler) runCycle(ctx context.Context) {
	start := time.Now()

	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		metrics.SchedulerRuns.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("Refresh cycle aborted, cannot list users")
		return
	}

	var refreshed, failed int
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}
		if err := s.refreshUser(ctx, userID); err != nil {
			failed++
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("User refresh failed")
			continue
		}
		refreshed++
	}

	if err := s.prune(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Retention pruning failed")
	}

	outcome := "success"
	if failed > 0 {
		outcome = "partial"
	}
	metrics.SchedulerRuns.WithLabelValues(outcome).Inc()

	s.logger.Info().
		Int("users", len(userIDs)).
		Int("refreshed", refreshed).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("Refresh cycle complete")
}

// refreshUser regenerates one user's recommendations and publishes the
// notification event.
func (s *Scheduler) refreshUser(ctx context.Context, userID int64) error {
	start := time.Now()
	result, err := s.engine.Generate(ctx, userID)
	if err != nil {
		metrics.RecordGeneration("scheduler", err, time.Since(start), 0, 0)
		return fmt.Errorf("generate for user %d: %w", userID, err)
	}
	metrics.RecordGeneration("scheduler", nil, time.Since(start), result.Candidates, result.Failed)

	if s.bus != nil && result.Persisted > 0 {
		event := notify.RecommendationsGenerated{
			UserID: userID,
			Count:  result.Persisted,
		}
		if len(result.Recommendations) > 0 {
			event.TopEventTitle = result.Recommendations[0].Title
		}
		if err := s.bus.PublishGenerated(event); err != nil {
			// Notification loss is acceptable; the refresh itself stands.
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Notification publish failed")
		}
	}
	return nil
}

// prune removes recommendations older than the retention window.
func (s *Scheduler) prune(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	n, err := s.store.DeleteRecommendationsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		metrics.SchedulerPrunedRecommendations.Add(float64(n))
		s.logger.Debug().Int64("pruned", n).Time("cutoff", cutoff).Msg("Pruned stale recommendations")
	}
	return nil
}
