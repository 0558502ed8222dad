// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package recommend implements the event recommendation engine.
//
// The engine turns a user's review and calendar history into a
// preference profile, scores every eligible upcoming event against that
// profile, and persists the best matches:
//
//  1. Profile building: reviews (weighted by rating) and calendar adds
//     (weighted by a fixed implicit-interest constant) are folded into
//     per-category affinity statistics plus sentiment keyword sets.
//  2. Scoring: each candidate event receives a compatibility score in
//     [0, 1] from three weighted components (category affinity, rating
//     proximity, keyword overlap). Scoring is a pure function and is
//     fanned out across a bounded worker pool.
//  3. Ranking and persistence: candidates are stably sorted by score,
//     truncated to the generation limit, and upserted one row at a
//     time; a failed row is logged and skipped, never aborting the run.
//
// A separate popularity ranker serves the "what's popular" path for
// users and surfaces without a preference signal. It is an independent
// entry point, not a fallback branch inside the scorer.
//
// # Determinism
//
// Scoring is deterministic by default: identical inputs always produce
// identical scores and ordering. Optional score jitter can be enabled
// in configuration for UI variety, seeded for reproducibility.
//
// # Dependencies
//
// The package depends only on the Store interface for data access; the
// database layer implements it. No other internal packages are
// imported, keeping the core independently testable.
package recommend
