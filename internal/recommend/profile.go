// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "strings"

// ProfileBuilder folds signals into a PreferenceProfile. It is stateless
// and safe for concurrent use; BuildProfile is a pure function of its
// inputs and always succeeds.
type ProfileBuilder struct {
	implicitRating float64
	positive       []string
	negative       []string
}

// NewProfileBuilder creates a builder with the engine's configuration.
func NewProfileBuilder(cfg *Config) *ProfileBuilder {
	return &ProfileBuilder{
		implicitRating: cfg.CalendarImplicitRating,
		positive:       lowerAll(cfg.Lexicon.Positive),
		negative:       lowerAll(cfg.Lexicon.Negative),
	}
}

// BuildProfile derives a preference profile from the user's signals.
// Empty signal collections are valid and produce a cold-start profile
// with no category affinities and an overall average of 0.
func (b *ProfileBuilder) BuildProfile(reviews []ReviewSignal, calendar []CalendarSignal) *PreferenceProfile {
	profile := &PreferenceProfile{
		Categories:       make(map[int64]CategoryAffinity),
		PositiveKeywords: make(map[string]struct{}),
		NegativeKeywords: make(map[string]struct{}),
	}

	var ratingSum float64
	var texts strings.Builder

	for _, sig := range reviews {
		for _, catID := range sig.CategoryIDs {
			acc := profile.Categories[catID]
			acc.Count++
			acc.CumulativeRating += float64(sig.Rating)
			profile.Categories[catID] = acc
		}
		ratingSum += float64(sig.Rating)
		texts.WriteString(sig.ReviewText)
		texts.WriteByte(' ')
	}

	for _, sig := range calendar {
		for _, catID := range sig.CategoryIDs {
			acc := profile.Categories[catID]
			acc.Count++
			acc.CumulativeRating += b.implicitRating
			profile.Categories[catID] = acc
		}
	}

	for catID, acc := range profile.Categories {
		acc.AvgRating = acc.CumulativeRating / float64(acc.Count)
		profile.Categories[catID] = acc
	}

	// Overall average covers explicit review ratings only; 0 with no
	// reviews so rating proximity degrades instead of failing.
	if len(reviews) > 0 {
		profile.OverallAvgRating = ratingSum / float64(len(reviews))
	}

	lowered := strings.ToLower(texts.String())
	profile.PositiveKeywords = matchKeywords(lowered, b.positive)
	profile.NegativeKeywords = matchKeywords(lowered, b.negative)

	return profile
}
