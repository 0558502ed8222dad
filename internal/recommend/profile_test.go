// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "testing"

func TestBuildProfileColdStart(t *testing.T) {
	builder := NewProfileBuilder(DefaultConfig())

	profile := builder.BuildProfile(nil, nil)

	if !profile.IsCold() {
		t.Error("IsCold() = false, want true for empty signals")
	}
	if len(profile.Categories) != 0 {
		t.Errorf("Categories has %d entries, want 0", len(profile.Categories))
	}
	if profile.OverallAvgRating != 0 {
		t.Errorf("OverallAvgRating = %v, want 0", profile.OverallAvgRating)
	}
	if len(profile.PositiveKeywords) != 0 || len(profile.NegativeKeywords) != 0 {
		t.Error("cold profile should carry no keywords")
	}
}

func TestBuildProfileReviewAccumulation(t *testing.T) {
	builder := NewProfileBuilder(DefaultConfig())

	reviews := []ReviewSignal{
		{EventID: 1, Rating: 5, CategoryIDs: []int64{1, 2}},
		{EventID: 2, Rating: 4, CategoryIDs: []int64{1}},
		{EventID: 3, Rating: 2, CategoryIDs: []int64{3}},
	}

	profile := builder.BuildProfile(reviews, nil)

	tests := []struct {
		catID     int64
		wantCount int
		wantCum   float64
		wantAvg   float64
	}{
		{1, 2, 9, 4.5},
		{2, 1, 5, 5},
		{3, 1, 2, 2},
	}
	for _, tt := range tests {
		aff, ok := profile.Categories[tt.catID]
		if !ok {
			t.Errorf("category %d missing from profile", tt.catID)
			continue
		}
		if aff.Count != tt.wantCount {
			t.Errorf("category %d Count = %d, want %d", tt.catID, aff.Count, tt.wantCount)
		}
		if !almostEqual(aff.CumulativeRating, tt.wantCum) {
			t.Errorf("category %d CumulativeRating = %v, want %v", tt.catID, aff.CumulativeRating, tt.wantCum)
		}
		if !almostEqual(aff.AvgRating, tt.wantAvg) {
			t.Errorf("category %d AvgRating = %v, want %v", tt.catID, aff.AvgRating, tt.wantAvg)
		}
	}

	// (5+4+2)/3
	if want := 11.0 / 3; !almostEqual(profile.OverallAvgRating, want) {
		t.Errorf("OverallAvgRating = %v, want %v", profile.OverallAvgRating, want)
	}
}

func TestBuildProfileCalendarWeight(t *testing.T) {
	builder := NewProfileBuilder(DefaultConfig())

	calendar := []CalendarSignal{
		{EventID: 10, CategoryIDs: []int64{4}},
		{EventID: 11, CategoryIDs: []int64{4}},
	}

	profile := builder.BuildProfile(nil, calendar)

	aff, ok := profile.Categories[4]
	if !ok {
		t.Fatal("category 4 missing from profile")
	}
	if aff.Count != 2 {
		t.Errorf("Count = %d, want 2", aff.Count)
	}
	// Two calendar adds at the implicit weight of 3 each.
	if !almostEqual(aff.CumulativeRating, 6) {
		t.Errorf("CumulativeRating = %v, want 6", aff.CumulativeRating)
	}
	if !almostEqual(aff.AvgRating, 3) {
		t.Errorf("AvgRating = %v, want 3", aff.AvgRating)
	}

	// Calendar adds never contribute to the overall review average.
	if profile.OverallAvgRating != 0 {
		t.Errorf("OverallAvgRating = %v, want 0 with no reviews", profile.OverallAvgRating)
	}
}

func TestBuildProfileMixedSignals(t *testing.T) {
	builder := NewProfileBuilder(DefaultConfig())

	reviews := []ReviewSignal{
		{EventID: 1, Rating: 5, CategoryIDs: []int64{1}},
	}
	calendar := []CalendarSignal{
		{EventID: 2, CategoryIDs: []int64{1}},
	}

	profile := builder.BuildProfile(reviews, calendar)

	aff := profile.Categories[1]
	if aff.Count != 2 {
		t.Errorf("Count = %d, want 2", aff.Count)
	}
	// rating 5 + implicit 3, averaged over both signals
	if !almostEqual(aff.AvgRating, 4) {
		t.Errorf("AvgRating = %v, want 4", aff.AvgRating)
	}
	if !almostEqual(profile.OverallAvgRating, 5) {
		t.Errorf("OverallAvgRating = %v, want 5", profile.OverallAvgRating)
	}
}

func TestBuildProfileKeywords(t *testing.T) {
	builder := NewProfileBuilder(DefaultConfig())

	tests := []struct {
		name         string
		reviews      []ReviewSignal
		wantPositive []string
		wantNegative []string
	}{
		{
			name: "positive words collected across reviews",
			reviews: []ReviewSignal{
				{EventID: 1, Rating: 5, ReviewText: "Amazing night, great music"},
				{EventID: 2, Rating: 4, ReviewText: "the food was excellent"},
			},
			wantPositive: []string{"amazing", "great", "excellent"},
		},
		{
			name: "negative words collected",
			reviews: []ReviewSignal{
				{EventID: 1, Rating: 2, ReviewText: "Boring and way too crowded"},
			},
			wantNegative: []string{"boring", "crowded"},
		},
		{
			name: "repeated word counts once",
			reviews: []ReviewSignal{
				{EventID: 1, Rating: 5, ReviewText: "great great great"},
				{EventID: 2, Rating: 5, ReviewText: "still great"},
			},
			wantPositive: []string{"great"},
		},
		{
			name: "matching ignores case",
			reviews: []ReviewSignal{
				{EventID: 1, Rating: 5, ReviewText: "FANTASTIC show, LOVED it"},
			},
			wantPositive: []string{"fantastic", "loved", "love"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := builder.BuildProfile(tt.reviews, nil)

			if len(profile.PositiveKeywords) != len(tt.wantPositive) {
				t.Errorf("PositiveKeywords = %v, want %v", profile.PositiveKeywords, tt.wantPositive)
			}
			for _, w := range tt.wantPositive {
				if _, ok := profile.PositiveKeywords[w]; !ok {
					t.Errorf("PositiveKeywords missing %q", w)
				}
			}
			if len(profile.NegativeKeywords) != len(tt.wantNegative) {
				t.Errorf("NegativeKeywords = %v, want %v", profile.NegativeKeywords, tt.wantNegative)
			}
			for _, w := range tt.wantNegative {
				if _, ok := profile.NegativeKeywords[w]; !ok {
					t.Errorf("NegativeKeywords missing %q", w)
				}
			}
		})
	}
}
