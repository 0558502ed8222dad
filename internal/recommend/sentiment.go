// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "strings"

// Sentiment is the label produced by the tagger.
type Sentiment string

const (
	// SentimentPositive means positive lexicon hits outnumber negative ones.
	SentimentPositive Sentiment = "positive"
	// SentimentNegative means negative lexicon hits outnumber positive ones.
	SentimentNegative Sentiment = "negative"
	// SentimentNeutral means the counts are equal (including zero hits).
	SentimentNeutral Sentiment = "neutral"
)

// TagResult holds the tagger output for one text.
type TagResult struct {
	// Label is the sentiment classification.
	Label Sentiment `json:"label"`

	// PositiveHits is the number of distinct positive lexicon words found.
	PositiveHits int `json:"positive_hits"`

	// NegativeHits is the number of distinct negative lexicon words found.
	NegativeHits int `json:"negative_hits"`
}

// Tagger classifies free text with a keyword-count heuristic over the
// configured lexicon. It is stateless and safe for concurrent use.
type Tagger struct {
	positive []string
	negative []string
}

// NewTagger creates a tagger for the given lexicon. Lexicon words are
// lowercased once at construction.
func NewTagger(lexicon Lexicon) *Tagger {
	return &Tagger{
		positive: lowerAll(lexicon.Positive),
		negative: lowerAll(lexicon.Negative),
	}
}

// Tag classifies text. Each lexicon word counts at most once: presence,
// not frequency, is what the heuristic measures.
func (t *Tagger) Tag(text string) TagResult {
	lowered := strings.ToLower(text)

	result := TagResult{Label: SentimentNeutral}
	for _, word := range t.positive {
		if strings.Contains(lowered, word) {
			result.PositiveHits++
		}
	}
	for _, word := range t.negative {
		if strings.Contains(lowered, word) {
			result.NegativeHits++
		}
	}

	switch {
	case result.PositiveHits > result.NegativeHits:
		result.Label = SentimentPositive
	case result.NegativeHits > result.PositiveHits:
		result.Label = SentimentNegative
	}

	return result
}

// matchKeywords returns the lexicon words present in lowered as a set.
func matchKeywords(lowered string, lexicon []string) map[string]struct{} {
	found := make(map[string]struct{})
	for _, word := range lexicon {
		if strings.Contains(lowered, word) {
			found[word] = struct{}{}
		}
	}
	return found
}

// lowerAll returns a lowercased copy of the given words.
func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
