// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import (
	"context"
	"time"
)

// ReviewSignal is a snapshot of one past review by the user, joined to
// the reviewed event's categories. Signals are immutable per scoring run.
type ReviewSignal struct {
	// EventID is the reviewed event.
	EventID int64 `json:"event_id"`

	// Rating is the 1-5 star rating the user gave.
	Rating int `json:"rating"`

	// CategoryIDs are the categories of the reviewed event.
	CategoryIDs []int64 `json:"category_ids"`

	// ReviewText is the free-text body of the review.
	ReviewText string `json:"review_text"`
}

// CalendarSignal is a snapshot of one event the user added to their
// calendar. A calendar add is a weaker interest signal than a review.
type CalendarSignal struct {
	// EventID is the calendared event.
	EventID int64 `json:"event_id"`

	// CategoryIDs are the categories of the calendared event.
	CategoryIDs []int64 `json:"category_ids"`
}

// CategoryAffinity aggregates how much a user has engaged with one category.
type CategoryAffinity struct {
	// Count is the number of signals touching this category.
	Count int `json:"count"`

	// CumulativeRating is the sum of signal weights for this category.
	CumulativeRating float64 `json:"cumulative_rating"`

	// AvgRating is CumulativeRating / Count.
	AvgRating float64 `json:"avg_rating"`
}

// PreferenceProfile is the per-user taste model derived from signals.
// It is rebuilt fresh on every scoring run and read-only afterward.
type PreferenceProfile struct {
	// Categories maps category ID to its affinity statistics.
	Categories map[int64]CategoryAffinity `json:"categories"`

	// OverallAvgRating is the mean of all review ratings, 0 with no
	// reviews so downstream proximity scoring degrades instead of failing.
	OverallAvgRating float64 `json:"overall_avg_rating"`

	// PositiveKeywords are lexicon words present in the user's review texts.
	PositiveKeywords map[string]struct{} `json:"-"`

	// NegativeKeywords are lexicon words present in the user's review texts.
	NegativeKeywords map[string]struct{} `json:"-"`
}

// IsCold reports whether the profile carries no preference signal at all.
func (p *PreferenceProfile) IsCold() bool {
	return len(p.Categories) == 0
}

// CandidateEvent is an event eligible for scoring: upcoming, and neither
// reviewed nor calendared by the user at fetch time. The storage layer
// applies those filters before the event reaches the scorer.
type CandidateEvent struct {
	// ID is the event identifier.
	ID int64 `json:"id"`

	// Title is the event title.
	Title string `json:"title"`

	// Description is the event description.
	Description string `json:"description"`

	// AvgRating is the crowd rating (0-5); missing ratings are 0.
	AvgRating float64 `json:"avg_rating"`

	// CategoryIDs are the event's categories.
	CategoryIDs []int64 `json:"category_ids"`
}

// ScoredEvent pairs a candidate with its compatibility score and reason.
type ScoredEvent struct {
	// EventID is the scored event.
	EventID int64 `json:"event_id"`

	// Title is carried along for display.
	Title string `json:"title"`

	// Score is the compatibility score in [0, 1].
	Score float64 `json:"score"`

	// Reason is the human-readable explanation bucket for the score.
	Reason string `json:"reason"`
}

// StoredRecommendation is a persisted recommendation row read back for display.
type StoredRecommendation struct {
	// EventID is the recommended event.
	EventID int64 `json:"event_id"`

	// Score is the compatibility score at generation time.
	Score float64 `json:"score"`

	// Reason is the explanation recorded at generation time.
	Reason string `json:"reason"`

	// CreatedAt is when the recommendation was generated or last refreshed.
	CreatedAt time.Time `json:"created_at"`
}

// PopularEvent is a candidate event enriched with engagement counts for
// the popularity ranking path.
type PopularEvent struct {
	// EventID is the event identifier.
	EventID int64 `json:"event_id"`

	// Title is the event title.
	Title string `json:"title"`

	// AvgRating is the crowd rating (0-5); missing ratings are 0.
	AvgRating float64 `json:"avg_rating"`

	// CalendarCount is how many users calendared the event.
	CalendarCount int `json:"calendar_count"`

	// ReviewCount is how many reviews the event has.
	ReviewCount int `json:"review_count"`

	// Popularity is the weighted popularity score, filled by the ranker.
	Popularity float64 `json:"popularity"`
}

// GenerateResult summarizes one recommendation generation run.
type GenerateResult struct {
	// Recommendations are the kept, persisted entries in rank order.
	Recommendations []ScoredEvent `json:"recommendations"`

	// Candidates is how many eligible events were scored.
	Candidates int `json:"candidates"`

	// Persisted counts upserts that succeeded.
	Persisted int `json:"persisted"`

	// Failed counts upserts that failed and were skipped.
	Failed int `json:"failed"`
}

// Store defines the storage operations the engine requires. The database
// layer implements it; tests substitute stubs.
type Store interface {
	// FetchReviewSignals returns the user's review signals with event categories.
	FetchReviewSignals(ctx context.Context, userID int64) ([]ReviewSignal, error)

	// FetchCalendarSignals returns the user's calendar signals with event categories.
	FetchCalendarSignals(ctx context.Context, userID int64) ([]CalendarSignal, error)

	// FetchCandidateEvents returns upcoming events the user has neither
	// reviewed nor calendared.
	FetchCandidateEvents(ctx context.Context, userID int64) ([]CandidateEvent, error)

	// UpsertRecommendation inserts or overwrites the recommendation row
	// keyed by (userID, eventID).
	UpsertRecommendation(ctx context.Context, userID, eventID int64, score float64, reason string) error

	// FetchTopRecommendations returns the user's stored recommendations,
	// highest score first, at most limit rows.
	FetchTopRecommendations(ctx context.Context, userID int64, limit int) ([]StoredRecommendation, error)

	// FetchPopularEvents returns upcoming events with engagement counts.
	// categoryID 0 means no category filter.
	FetchPopularEvents(ctx context.Context, categoryID int64, limit int) ([]PopularEvent, error)
}
