// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"weights sum below one", func(c *Config) { c.Weights.Keyword = 0.1 }, true},
		{"weights sum above one", func(c *Config) { c.Weights.Category = 0.9 }, true},
		{"negative weight", func(c *Config) { c.Weights.Rating = -0.3 }, true},
		{"implicit rating above scale", func(c *Config) { c.CalendarImplicitRating = 6 }, true},
		{"zero generate limit", func(c *Config) { c.Limits.GenerateLimit = 0 }, true},
		{"zero top limit", func(c *Config) { c.Limits.TopLimit = 0 }, true},
		{"zero workers", func(c *Config) { c.Limits.ScoreWorkers = 0 }, true},
		{"zero max candidates", func(c *Config) { c.Limits.MaxCandidates = 0 }, true},
		{"jitter amount above one", func(c *Config) { c.Jitter.Amount = 1.5 }, true},
		{
			"rebalanced weights still sum to one",
			func(c *Config) {
				c.Weights = ScoreWeights{Category: 0.5, Rating: 0.25, Keyword: 0.25}
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Weights.Category = 0.9
	clone.Lexicon.Positive[0] = "changed"

	if original.Weights.Category != 0.4 {
		t.Error("mutating clone weights changed the original")
	}
	if original.Lexicon.Positive[0] == "changed" {
		t.Error("mutating clone lexicon changed the original")
	}
}
