// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "testing"

func TestPopularityRankerRank(t *testing.T) {
	ranker := NewPopularityRanker(DefaultConfig().Popularity)

	events := []PopularEvent{
		{EventID: 1, Title: "Quiet Reading", AvgRating: 4, CalendarCount: 1, ReviewCount: 2},
		{EventID: 2, Title: "Street Festival", AvgRating: 4.5, CalendarCount: 30, ReviewCount: 12},
		{EventID: 3, Title: "Open Mic", AvgRating: 3, CalendarCount: 5, ReviewCount: 4},
	}

	ranked := ranker.Rank(events)

	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if ranked[i].EventID != want {
			t.Errorf("ranked[%d].EventID = %d, want %d", i, ranked[i].EventID, want)
		}
	}

	// popularity = avg*0.5 + calendar*0.3 + reviews*0.2
	if want := 4.5*0.5 + 30*0.3 + 12*0.2; !almostEqual(ranked[0].Popularity, want) {
		t.Errorf("ranked[0].Popularity = %v, want %v", ranked[0].Popularity, want)
	}
	if want := 4*0.5 + 1*0.3 + 2*0.2; !almostEqual(ranked[2].Popularity, want) {
		t.Errorf("ranked[2].Popularity = %v, want %v", ranked[2].Popularity, want)
	}
}

func TestPopularityRankerStableOnTies(t *testing.T) {
	ranker := NewPopularityRanker(DefaultConfig().Popularity)

	// Identical engagement, identical popularity: input order must hold.
	events := []PopularEvent{
		{EventID: 10, AvgRating: 4, CalendarCount: 2, ReviewCount: 2},
		{EventID: 11, AvgRating: 4, CalendarCount: 2, ReviewCount: 2},
		{EventID: 12, AvgRating: 4, CalendarCount: 2, ReviewCount: 2},
	}

	ranked := ranker.Rank(events)

	for i, want := range []int64{10, 11, 12} {
		if ranked[i].EventID != want {
			t.Errorf("ranked[%d].EventID = %d, want %d", i, ranked[i].EventID, want)
		}
	}
}

func TestPopularityRankerDoesNotMutateInput(t *testing.T) {
	ranker := NewPopularityRanker(DefaultConfig().Popularity)

	events := []PopularEvent{
		{EventID: 1, AvgRating: 1},
		{EventID: 2, AvgRating: 5},
	}

	_ = ranker.Rank(events)

	if events[0].EventID != 1 || events[1].EventID != 2 {
		t.Error("Rank reordered the input slice")
	}
	if events[0].Popularity != 0 || events[1].Popularity != 0 {
		t.Error("Rank wrote popularity into the input slice")
	}
}

func TestPopularityRankerEmpty(t *testing.T) {
	ranker := NewPopularityRanker(DefaultConfig().Popularity)

	if got := ranker.Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) returned %d events, want 0", len(got))
	}
}
