// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import (
	"math"
	"testing"
)

const scoreEpsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < scoreEpsilon
}

func profileWith(categories map[int64]CategoryAffinity, overallAvg float64) *PreferenceProfile {
	if categories == nil {
		categories = make(map[int64]CategoryAffinity)
	}
	return &PreferenceProfile{
		Categories:       categories,
		OverallAvgRating: overallAvg,
		PositiveKeywords: make(map[string]struct{}),
		NegativeKeywords: make(map[string]struct{}),
	}
}

func TestScorerScore(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	tests := []struct {
		name      string
		profile   *PreferenceProfile
		event     CandidateEvent
		wantScore float64
	}{
		{
			// category 1.0*0.4 + rating 1.0*0.3 + keyword 0.5*0.3 = 0.85
			name: "strong category affinity with matching rating",
			profile: profileWith(map[int64]CategoryAffinity{
				1: {Count: 10, CumulativeRating: 50, AvgRating: 5},
			}, 4.5),
			event: CandidateEvent{
				ID:          100,
				Title:       "Jazz Night",
				AvgRating:   4.5,
				CategoryIDs: []int64{1},
			},
			wantScore: 0.85,
		},
		{
			// category 0 + rating (1-5/5)*0.3 + keyword 0.5*0.3 = 0.15
			name:    "cold start with highly rated event",
			profile: profileWith(nil, 0),
			event: CandidateEvent{
				ID:          101,
				Title:       "Gala Dinner",
				AvgRating:   5,
				CategoryIDs: []int64{7},
			},
			wantScore: 0.15,
		},
		{
			// no categories at all: component is 0, not an error
			name: "event without categories",
			profile: profileWith(map[int64]CategoryAffinity{
				1: {Count: 10, CumulativeRating: 50, AvgRating: 5},
			}, 4),
			event: CandidateEvent{
				ID:        102,
				Title:     "Pop-up Market",
				AvgRating: 4,
			},
			wantScore: 0.45,
		},
		{
			// affinity sum 2.0 clamps to 1.0 before the per-category average
			name: "category sum clamps before averaging",
			profile: profileWith(map[int64]CategoryAffinity{
				1: {Count: 10, CumulativeRating: 50, AvgRating: 5},
				2: {Count: 10, CumulativeRating: 50, AvgRating: 5},
			}, 5),
			event: CandidateEvent{
				ID:          103,
				Title:       "Food Festival",
				AvgRating:   5,
				CategoryIDs: []int64{1, 2},
			},
			wantScore: 0.4*0.5 + 0.3*1 + 0.3*0.5,
		},
		{
			// unknown categories contribute nothing but still dilute the average
			name: "mixed known and unknown categories",
			profile: profileWith(map[int64]CategoryAffinity{
				1: {Count: 10, CumulativeRating: 50, AvgRating: 5},
			}, 5),
			event: CandidateEvent{
				ID:          104,
				Title:       "Craft Fair",
				AvgRating:   5,
				CategoryIDs: []int64{1, 9},
			},
			wantScore: 0.4*0.5 + 0.3*1 + 0.3*0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.profile, tt.event)
			if !almostEqual(got, tt.wantScore) {
				t.Errorf("Score() = %v, want %v", got, tt.wantScore)
			}
		})
	}
}

func TestScorerScoreRange(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	profiles := []*PreferenceProfile{
		profileWith(nil, 0),
		profileWith(map[int64]CategoryAffinity{
			1: {Count: 100, CumulativeRating: 500, AvgRating: 5},
			2: {Count: 1, CumulativeRating: 1, AvgRating: 1},
		}, 5),
	}
	profiles[1].NegativeKeywords = map[string]struct{}{
		"boring": {}, "awful": {}, "terrible": {}, "bad": {},
	}

	events := []CandidateEvent{
		{ID: 1, Title: "A", AvgRating: 0},
		{ID: 2, Title: "B", AvgRating: 5, CategoryIDs: []int64{1, 2}},
		{ID: 3, Title: "boring awful terrible bad", Description: "boring", AvgRating: 2.5, CategoryIDs: []int64{2}},
	}

	for _, p := range profiles {
		for _, ev := range events {
			got := scorer.Score(p, ev)
			if got < 0 || got > 1 {
				t.Errorf("Score(profile=%+v, event=%d) = %v, out of [0, 1]", p, ev.ID, got)
			}
		}
	}
}

func TestScorerKeywordComponent(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	tests := []struct {
		name     string
		positive []string
		negative []string
		event    CandidateEvent
		want     float64
	}{
		{
			name: "no profile keywords is neutral",
			event: CandidateEvent{
				Title: "Great Amazing Show",
			},
			want: 0.5,
		},
		{
			name:     "positive matches raise the component",
			positive: []string{"jazz", "live"},
			event: CandidateEvent{
				Title:       "Live Jazz Night",
				Description: "an evening of live jazz",
			},
			want: 0.6,
		},
		{
			name:     "negative matches lower the component",
			negative: []string{"crowded", "overpriced"},
			event: CandidateEvent{
				Title:       "Downtown Street Fair",
				Description: "often crowded and overpriced",
			},
			want: 0.4,
		},
		{
			name:     "positive and negative cancel",
			positive: []string{"music"},
			negative: []string{"crowded"},
			event: CandidateEvent{
				Title:       "Music in the Park",
				Description: "can get crowded",
			},
			want: 0.5,
		},
		{
			name:  "matching is case insensitive on the event text",
			event: CandidateEvent{Title: "JAZZ Festival"},
			positive: []string{
				"jazz",
			},
			want: 0.55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := profileWith(nil, 0)
			for _, w := range tt.positive {
				profile.PositiveKeywords[w] = struct{}{}
			}
			for _, w := range tt.negative {
				profile.NegativeKeywords[w] = struct{}{}
			}

			got := scorer.keywordScore(profile, tt.event)
			if !almostEqual(got, tt.want) {
				t.Errorf("keywordScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorerRatingProximity(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	tests := []struct {
		name       string
		overallAvg float64
		eventAvg   float64
		want       float64
	}{
		{"identical ratings", 4.5, 4.5, 1},
		{"maximum distance", 0, 5, 0},
		{"half distance", 2.5, 5, 0.5},
		{"unrated event near cold profile", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := profileWith(nil, tt.overallAvg)
			event := CandidateEvent{AvgRating: tt.eventAvg}

			got := scorer.ratingScore(profile, event)
			if !almostEqual(got, tt.want) {
				t.Errorf("ratingScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorerBreakdown(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	profile := profileWith(map[int64]CategoryAffinity{
		3: {Count: 5, CumulativeRating: 20, AvgRating: 4},
	}, 4)
	event := CandidateEvent{
		ID:          1,
		Title:       "Weekend Hike",
		AvgRating:   3,
		CategoryIDs: []int64{3},
	}

	bd := scorer.Breakdown(profile, event)

	wantCategory := (4.0 / 5) * (5.0 / 10)
	if !almostEqual(bd.Category, wantCategory) {
		t.Errorf("Breakdown().Category = %v, want %v", bd.Category, wantCategory)
	}
	if !almostEqual(bd.Rating, 0.8) {
		t.Errorf("Breakdown().Rating = %v, want 0.8", bd.Rating)
	}
	if !almostEqual(bd.Keyword, 0.5) {
		t.Errorf("Breakdown().Keyword = %v, want 0.5", bd.Keyword)
	}

	wantTotal := wantCategory*0.4 + 0.8*0.3 + 0.5*0.3
	if !almostEqual(bd.Total, wantTotal) {
		t.Errorf("Breakdown().Total = %v, want %v", bd.Total, wantTotal)
	}
	if got := scorer.Score(profile, event); !almostEqual(got, bd.Total) {
		t.Errorf("Score() = %v, want Breakdown().Total = %v", got, bd.Total)
	}
}

func TestReasonFor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"well above strong threshold", 0.95, ReasonStrongMatch},
		{"just above strong threshold", 0.8000001, ReasonStrongMatch},
		{"exactly 0.8 falls to similar", 0.8, ReasonSimilar},
		{"mid similar band", 0.7, ReasonSimilar},
		{"exactly 0.6 falls to interesting", 0.6, ReasonInteresting},
		{"mid interesting band", 0.5, ReasonInteresting},
		{"exactly 0.4 falls to different", 0.4, ReasonDifferent},
		{"zero score", 0, ReasonDifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonFor(tt.score); got != tt.want {
				t.Errorf("ReasonFor(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}
