// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "sort"

// PopularityRanker ranks events by raw engagement, independent of any
// user profile. It backs the "what's popular" surface and serves as the
// signal-free ranking path; it is deliberately a separate entry point
// rather than a branch inside the personalized scorer.
type PopularityRanker struct {
	weights PopularityWeights
}

// NewPopularityRanker creates a ranker with the given weights.
func NewPopularityRanker(weights PopularityWeights) *PopularityRanker {
	return &PopularityRanker{weights: weights}
}

// Rank fills in the popularity score for each event and returns the
// slice sorted descending, stable on ties. The input slice is not
// modified.
func (r *PopularityRanker) Rank(events []PopularEvent) []PopularEvent {
	ranked := make([]PopularEvent, len(events))
	copy(ranked, events)

	for i := range ranked {
		ranked[i].Popularity = r.score(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Popularity > ranked[j].Popularity
	})

	return ranked
}

// score computes the weighted popularity value for one event.
func (r *PopularityRanker) score(ev PopularEvent) float64 {
	return ev.AvgRating*r.weights.Rating +
		float64(ev.CalendarCount)*r.weights.Calendar +
		float64(ev.ReviewCount)*r.weights.Review
}
