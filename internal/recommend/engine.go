// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Engine orchestrates profile building, scoring, ranking, and
// persistence for one user at a time. It is safe for concurrent use;
// concurrent generation for the same user is a benign last-write-wins
// race since recommendations are idempotent to recompute.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	store   Store
	builder *ProfileBuilder
	scorer  *Scorer
	ranker  *PopularityRanker

	// Jitter source, guarded for concurrent generation runs.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store Store, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		store:   store,
		builder: NewProfileBuilder(cfg),
		scorer:  NewScorer(cfg.Weights),
		ranker:  NewPopularityRanker(cfg.Popularity),
		rng:     rand.New(rand.NewSource(cfg.Jitter.Seed)), //nolint:gosec // math/rand is fine for score jitter
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Generate builds the user's preference profile, scores the eligible
// candidate events, and upserts the top entries into the recommendation
// store. An empty candidate set yields an empty result, not an error.
// Candidate sets larger than Limits.MaxCandidates are capped before
// scoring, so with very large catalogs only the first MaxCandidates
// fetched events are considered. Persistence failures are per-row: the
// failed row is logged and skipped, and the tally is reported in the
// result.
func (e *Engine) Generate(ctx context.Context, userID int64) (*GenerateResult, error) {
	logger := e.logger.With().Int64("user_id", userID).Logger()

	profile, err := e.buildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := e.store.FetchCandidateEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) > e.config.Limits.MaxCandidates {
		candidates = candidates[:e.config.Limits.MaxCandidates]
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no candidate events")
		return &GenerateResult{Recommendations: []ScoredEvent{}}, nil
	}

	scored := e.scoreAll(ctx, profile, candidates)

	// Stable sort keeps candidate input order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.config.Limits.GenerateLimit {
		scored = scored[:e.config.Limits.GenerateLimit]
	}

	result := &GenerateResult{
		Recommendations: make([]ScoredEvent, 0, len(scored)),
		Candidates:      len(candidates),
	}

	for _, se := range scored {
		if err := e.store.UpsertRecommendation(ctx, userID, se.EventID, se.Score, se.Reason); err != nil {
			result.Failed++
			logger.Warn().
				Int64("event_id", se.EventID).
				Err(err).
				Msg("recommendation upsert failed, skipping row")
			continue
		}
		result.Persisted++
		result.Recommendations = append(result.Recommendations, se)
	}

	logger.Debug().
		Int("candidates", result.Candidates).
		Int("persisted", result.Persisted).
		Int("failed", result.Failed).
		Bool("cold_start", profile.IsCold()).
		Msg("recommendation generation complete")

	return result, nil
}

// TopRecommendations reads back the user's stored recommendations,
// highest score first. A non-positive limit falls back to the configured
// top-view limit.
func (e *Engine) TopRecommendations(ctx context.Context, userID int64, limit int) ([]StoredRecommendation, error) {
	if limit <= 0 {
		limit = e.config.Limits.TopLimit
	}

	recs, err := e.store.FetchTopRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch top recommendations: %w", err)
	}
	if recs == nil {
		recs = []StoredRecommendation{}
	}
	return recs, nil
}

// PopularEvents ranks upcoming events by raw engagement. categoryID 0
// means no category filter. This path needs no preference signal and is
// callable independently of Generate.
func (e *Engine) PopularEvents(ctx context.Context, categoryID int64, limit int) ([]PopularEvent, error) {
	if limit <= 0 {
		limit = e.config.Limits.TopLimit
	}

	events, err := e.store.FetchPopularEvents(ctx, categoryID, e.config.Limits.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("fetch popular events: %w", err)
	}

	ranked := e.ranker.Rank(events)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// buildProfile fetches the user's signals and folds them into a profile.
// Empty signal sets are valid and produce a cold-start profile.
func (e *Engine) buildProfile(ctx context.Context, userID int64) (*PreferenceProfile, error) {
	reviews, err := e.store.FetchReviewSignals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch review signals: %w", err)
	}

	calendar, err := e.store.FetchCalendarSignals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar signals: %w", err)
	}

	return e.builder.BuildProfile(reviews, calendar), nil
}

// scoreAll scores candidates across a bounded worker pool. Scoring is a
// pure function with no shared mutable state, so fan-out is safe;
// results are slotted by candidate index to preserve input order for
// the stable sort.
func (e *Engine) scoreAll(ctx context.Context, profile *PreferenceProfile, candidates []CandidateEvent) []ScoredEvent {
	workers := e.config.Limits.ScoreWorkers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	scored := make([]ScoredEvent, len(candidates))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				scored[i] = e.scoreOne(profile, candidates[i])
			}
		}()
	}

	for i := range candidates {
		select {
		case indices <- i:
		case <-ctx.Done():
			// Remaining slots keep their zero score; the sort and
			// truncation still behave, and the caller sees ctx.Err()
			// on the next storage call.
			close(indices)
			wg.Wait()
			return scored
		}
	}
	close(indices)
	wg.Wait()

	return scored
}

// scoreOne scores a single candidate and attaches the reason string.
func (e *Engine) scoreOne(profile *PreferenceProfile, event CandidateEvent) ScoredEvent {
	score := e.scorer.Score(profile, event)

	if e.config.Jitter.Enabled {
		e.rngMu.Lock()
		score += e.rng.Float64() * e.config.Jitter.Amount
		e.rngMu.Unlock()
		score = clamp01(score)
	}

	return ScoredEvent{
		EventID: event.ID,
		Title:   event.Title,
		Score:   score,
		Reason:  ReasonFor(score),
	}
}
