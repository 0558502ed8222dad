// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
// The engine is constructed with an explicit Config; there is no global
// mutable state, so scoring stays independently testable.
type Config struct {
	// Weights defines the contribution of each scoring component.
	Weights ScoreWeights `json:"weights" koanf:"weights"`

	// CalendarImplicitRating is the rating-scale weight assigned to a
	// calendar add when folding signals into the profile. It sits on the
	// same 1-5 scale as review ratings.
	// Default: 3.
	CalendarImplicitRating float64 `json:"calendar_implicit_rating" koanf:"calendar_implicit_rating"`

	// Lexicon holds the sentiment keyword lists. Membership is a
	// configuration constant, never derived from data.
	Lexicon Lexicon `json:"lexicon" koanf:"lexicon"`

	// Popularity defines the weighting for the popularity ranking path.
	Popularity PopularityWeights `json:"popularity" koanf:"popularity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Jitter controls optional randomized score perturbation.
	Jitter JitterConfig `json:"jitter" koanf:"jitter"`
}

// ScoreWeights defines the contribution of each scoring component.
// The three weights should sum to 1.0.
type ScoreWeights struct {
	// Category weights the per-category affinity component.
	// Default: 0.4.
	Category float64 `json:"category" koanf:"category"`

	// Rating weights the rating-proximity component.
	// Default: 0.3.
	Rating float64 `json:"rating" koanf:"rating"`

	// Keyword weights the keyword-overlap component.
	// Default: 0.3.
	Keyword float64 `json:"keyword" koanf:"keyword"`
}

// Lexicon holds the hand-curated sentiment word lists. Words are matched
// case-insensitively as substrings.
type Lexicon struct {
	// Positive lists words signaling enjoyment.
	Positive []string `json:"positive" koanf:"positive"`

	// Negative lists words signaling disappointment.
	Negative []string `json:"negative" koanf:"negative"`
}

// PopularityWeights defines the weighting for the popularity ranker.
// popularity = avg_rating*Rating + calendar_count*Calendar + review_count*Review.
type PopularityWeights struct {
	// Rating weights the crowd rating. Default: 0.5.
	Rating float64 `json:"rating" koanf:"rating"`

	// Calendar weights the calendar-add count. Default: 0.3.
	Calendar float64 `json:"calendar" koanf:"calendar"`

	// Review weights the review count. Default: 0.2.
	Review float64 `json:"review" koanf:"review"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// GenerateLimit is how many recommendations a generation run keeps
	// and persists. Default: 20.
	GenerateLimit int `json:"generate_limit" koanf:"generate_limit"`

	// TopLimit is the default size of the "top recommendations" read
	// view, configured independently of GenerateLimit. Default: 5.
	TopLimit int `json:"top_limit" koanf:"top_limit"`

	// ScoreWorkers bounds the scoring fan-out. Default: 4.
	ScoreWorkers int `json:"score_workers" koanf:"score_workers"`

	// MaxCandidates caps how many candidates one run will score.
	// Default: 1000.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`
}

// JitterConfig controls optional randomized score perturbation.
// Disabled by default: deterministic scoring keeps repeated generation
// stable for the same inputs. Enable only when the product wants tie
// variety in the UI.
type JitterConfig struct {
	// Enabled turns jitter on. Default: false.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// Amount is the maximum perturbation added to a score. Default: 0.1.
	Amount float64 `json:"amount" koanf:"amount"`

	// Seed makes jitter reproducible. Default: 42.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Category: 0.4,
			Rating:   0.3,
			Keyword:  0.3,
		},
		CalendarImplicitRating: 3,
		Lexicon: Lexicon{
			Positive: []string{
				"amazing", "awesome", "excellent", "fantastic", "great",
				"fun", "love", "loved", "incredible", "wonderful",
				"enjoyable", "perfect", "best", "memorable",
			},
			Negative: []string{
				"awful", "bad", "boring", "disappointing", "terrible",
				"horrible", "waste", "worst", "poor", "mediocre",
				"crowded", "overpriced",
			},
		},
		Popularity: PopularityWeights{
			Rating:   0.5,
			Calendar: 0.3,
			Review:   0.2,
		},
		Limits: LimitsConfig{
			GenerateLimit: 20,
			TopLimit:      5,
			ScoreWorkers:  4,
			MaxCandidates: 1000,
		},
		Jitter: JitterConfig{
			Enabled: false,
			Amount:  0.1,
			Seed:    42,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, w := range map[string]float64{
		"weights.category": c.Weights.Category,
		"weights.rating":   c.Weights.Rating,
		"weights.keyword":  c.Weights.Keyword,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, w)
		}
	}

	sum := c.Weights.Category + c.Weights.Rating + c.Weights.Keyword
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("score weights must sum to 1.0, got %f", sum)
	}

	if c.CalendarImplicitRating < 0 || c.CalendarImplicitRating > 5 {
		return fmt.Errorf("calendar_implicit_rating must be in [0, 5], got %f", c.CalendarImplicitRating)
	}

	if c.Limits.GenerateLimit < 1 {
		return fmt.Errorf("limits.generate_limit must be positive, got %d", c.Limits.GenerateLimit)
	}
	if c.Limits.TopLimit < 1 {
		return fmt.Errorf("limits.top_limit must be positive, got %d", c.Limits.TopLimit)
	}
	if c.Limits.ScoreWorkers < 1 {
		return fmt.Errorf("limits.score_workers must be positive, got %d", c.Limits.ScoreWorkers)
	}
	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}

	if c.Jitter.Amount < 0 || c.Jitter.Amount > 1 {
		return fmt.Errorf("jitter.amount must be in [0, 1], got %f", c.Jitter.Amount)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Lexicon.Positive = append([]string(nil), c.Lexicon.Positive...)
	cp.Lexicon.Negative = append([]string(nil), c.Lexicon.Negative...)
	return &cp
}
