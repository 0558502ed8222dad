// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/logging"
	"github.com/attendly/attendly/internal/models"
)

// seedMockData loads a small demo dataset for local development.
// It is a no-op when users already exist, so restarts do not duplicate
// rows.
func (db *DB) seedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		logging.Debug().Msg("Mock data already present, skipping seed")
		return nil
	}

	categoryNames := []string{"music", "sports", "food", "art", "tech", "outdoors"}
	categoryIDs := make(map[string]int64, len(categoryNames))
	for _, name := range categoryNames {
		var id int64
		if err := db.conn.QueryRowContext(ctx,
			`INSERT INTO categories (name) VALUES (?) RETURNING id`, name).Scan(&id); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	// bcrypt hash of "password" at cost 12, demo accounts only.
	const demoHash = "$2a$12$d0VZayjVX8qHHjmzh0YCsOPnaHL3GPysJiJCH5RshM60OHxeSBZGO"
	users := []models.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: demoHash},
		{Username: "bob", Email: "bob@example.com", PasswordHash: demoHash},
	}
	for i := range users {
		if _, err := db.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %q: %w", users[i].Username, err)
		}
	}

	now := time.Now()
	events := []struct {
		event      models.Event
		categories []string
	}{
		{
			event: models.Event{
				Title:       "Riverside Jazz Evening",
				Description: "An open-air night of live jazz by the river.",
				Venue:       "Riverside Park",
				StartsAt:    now.AddDate(0, 0, 7),
				Status:      models.EventStatusUpcoming,
			},
			categories: []string{"music", "outdoors"},
		},
		{
			event: models.Event{
				Title:       "City Marathon Expo",
				Description: "Gear, talks, and registration for the city marathon.",
				Venue:       "Convention Center",
				StartsAt:    now.AddDate(0, 0, 14),
				Status:      models.EventStatusUpcoming,
			},
			categories: []string{"sports"},
		},
		{
			event: models.Event{
				Title:       "Street Food Fair",
				Description: "Food trucks and stalls from across the region.",
				Venue:       "Market Square",
				StartsAt:    now.AddDate(0, 0, 3),
				Status:      models.EventStatusUpcoming,
			},
			categories: []string{"food", "outdoors"},
		},
		{
			event: models.Event{
				Title:       "Open Source Meetup",
				Description: "Lightning talks and project showcases.",
				Venue:       "Tech Hub",
				StartsAt:    now.AddDate(0, 0, 10),
				Status:      models.EventStatusUpcoming,
			},
			categories: []string{"tech"},
		},
		{
			event: models.Event{
				Title:       "Gallery Night",
				Description: "Late-night openings across downtown galleries.",
				Venue:       "Arts District",
				StartsAt:    now.AddDate(0, 0, -30),
				Status:      models.EventStatusFinished,
			},
			categories: []string{"art"},
		},
	}

	eventIDs := make([]int64, 0, len(events))
	for i := range events {
		ids := make([]int64, 0, len(events[i].categories))
		for _, name := range events[i].categories {
			ids = append(ids, categoryIDs[name])
		}
		created, err := db.CreateEvent(ctx, &events[i].event, ids)
		if err != nil {
			return fmt.Errorf("seed event %q: %w", events[i].event.Title, err)
		}
		eventIDs = append(eventIDs, created.ID)
	}

	reviews := []models.Review{
		{UserID: users[0].ID, EventID: eventIDs[4], Rating: 5,
			Text: "Amazing curation, a wonderful night out.", Sentiment: "positive"},
		{UserID: users[1].ID, EventID: eventIDs[4], Rating: 3,
			Text: "Good art but very crowded.", Sentiment: "negative"},
	}
	for i := range reviews {
		if _, err := db.CreateReview(ctx, &reviews[i]); err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
	}

	if _, err := db.AddCalendarEntry(ctx, users[0].ID, eventIDs[0]); err != nil {
		return fmt.Errorf("seed calendar entry: %w", err)
	}

	logging.Info().
		Int("users", len(users)).
		Int("events", len(events)).
		Msg("Mock data seeded")
	return nil
}
