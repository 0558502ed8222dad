// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import (
	"math"
	"strings"
)

// Reason strings, chosen by score threshold, highest first, strict
// comparison: a score exactly on a boundary falls into the lower bucket.
const (
	ReasonStrongMatch = "highly matches your interests"
	ReasonSimilar     = "similar to events you've enjoyed"
	ReasonInteresting = "you might find this interesting"
	ReasonDifferent   = "offers something different from your usual preferences"
)

// keywordStep is the score delta per matched lexicon keyword.
const keywordStep = 0.1

// ScoreBreakdown exposes the per-component scores for one candidate.
// Components are normalized to [0, 1] before weighting.
type ScoreBreakdown struct {
	// Category is the category-affinity component.
	Category float64 `json:"category"`

	// Rating is the rating-proximity component.
	Rating float64 `json:"rating"`

	// Keyword is the keyword-overlap component, remapped to [0, 1].
	Keyword float64 `json:"keyword"`

	// Total is the weighted, clamped final score.
	Total float64 `json:"total"`
}

// Scorer computes compatibility scores between a preference profile and
// candidate events. It is stateless and safe for concurrent use.
type Scorer struct {
	weights ScoreWeights
}

// NewScorer creates a scorer with the given component weights.
func NewScorer(weights ScoreWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the compatibility score for one candidate. The result
// is always in [0.0, 1.0]; scoring never fails.
func (s *Scorer) Score(profile *PreferenceProfile, event CandidateEvent) float64 {
	return s.Breakdown(profile, event).Total
}

// Breakdown computes the score with its per-component parts.
func (s *Scorer) Breakdown(profile *PreferenceProfile, event CandidateEvent) ScoreBreakdown {
	bd := ScoreBreakdown{
		Category: s.categoryScore(profile, event),
		Rating:   s.ratingScore(profile, event),
		Keyword:  s.keywordScore(profile, event),
	}

	total := bd.Category*s.weights.Category +
		bd.Rating*s.weights.Rating +
		bd.Keyword*s.weights.Keyword
	bd.Total = clamp01(total)

	return bd
}

// categoryScore accumulates (avg/5)*(count/10) over the event's
// categories present in the profile, clamps the sum to at most 1.0, and
// averages across the event's category count. An event with no
// categories scores 0 outright.
func (s *Scorer) categoryScore(profile *PreferenceProfile, event CandidateEvent) float64 {
	if len(event.CategoryIDs) == 0 {
		return 0
	}

	var sum float64
	for _, catID := range event.CategoryIDs {
		aff, ok := profile.Categories[catID]
		if !ok {
			continue
		}
		sum += (aff.AvgRating / 5) * (float64(aff.Count) / 10)
	}

	if sum > 1 {
		sum = 1
	}
	return sum / float64(len(event.CategoryIDs))
}

// ratingScore rewards events whose crowd rating sits close to the user's
// typical rating behavior. With no reviews the overall average is 0, so
// cold-start users see lower-rated events score higher; that inversion
// is the documented behavior and is kept intact.
func (s *Scorer) ratingScore(profile *PreferenceProfile, event CandidateEvent) float64 {
	return 1 - math.Abs(event.AvgRating-profile.OverallAvgRating)/5
}

// keywordScore adds keywordStep per positive profile keyword found in
// the event text and subtracts it per negative keyword, clamps the sum
// to [-1, 1], then remaps to [0, 1].
func (s *Scorer) keywordScore(profile *PreferenceProfile, event CandidateEvent) float64 {
	text := strings.ToLower(event.Title + " " + event.Description)

	var raw float64
	for word := range profile.PositiveKeywords {
		if strings.Contains(text, word) {
			raw += keywordStep
		}
	}
	for word := range profile.NegativeKeywords {
		if strings.Contains(text, word) {
			raw -= keywordStep
		}
	}

	if raw > 1 {
		raw = 1
	}
	if raw < -1 {
		raw = -1
	}
	return (raw + 1) / 2
}

// ReasonFor maps a score to its explanation bucket. Thresholds are
// exclusive on the lower bound: exactly 0.8 reads "similar", not
// "highly matches".
func ReasonFor(score float64) string {
	switch {
	case score > 0.8:
		return ReasonStrongMatch
	case score > 0.6:
		return ReasonSimilar
	case score > 0.4:
		return ReasonInteresting
	default:
		return ReasonDifferent
	}
}

// clamp01 clamps v to [0.0, 1.0].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
