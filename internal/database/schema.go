// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the full schema. DuckDB has no AUTO_INCREMENT,
// so every table with a synthetic key gets a sequence. Statements are
// idempotent; startup always runs the whole list.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_users_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_categories_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_events_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_reviews_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_calendar_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_notifications_id START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_users_id'),
		username VARCHAR NOT NULL UNIQUE,
		email VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_categories_id'),
		name VARCHAR NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_events_id'),
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		venue VARCHAR NOT NULL DEFAULT '',
		starts_at TIMESTAMP NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'upcoming',
		avg_rating DOUBLE NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS event_categories (
		event_id BIGINT NOT NULL,
		category_id BIGINT NOT NULL,
		PRIMARY KEY (event_id, category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_reviews_id'),
		user_id BIGINT NOT NULL,
		event_id BIGINT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		text VARCHAR NOT NULL DEFAULT '',
		sentiment VARCHAR NOT NULL DEFAULT 'neutral',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, event_id)
	)`,

	`CREATE TABLE IF NOT EXISTS calendar_entries (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_calendar_id'),
		user_id BIGINT NOT NULL,
		event_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, event_id)
	)`,

	// Composite key so regeneration overwrites in place.
	`CREATE TABLE IF NOT EXISTS recommendations (
		user_id BIGINT NOT NULL,
		event_id BIGINT NOT NULL,
		score DOUBLE NOT NULL,
		reason VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, event_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_notifications_id'),
		user_id BIGINT NOT NULL,
		kind VARCHAR NOT NULL,
		message VARCHAR NOT NULL,
		read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events (starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_status ON events (status)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_event ON reviews (event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_user ON calendar_entries (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_event ON calendar_entries (event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_user_score ON recommendations (user_id, score)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id)`,
}

// initSchema creates all tables, sequences, and indexes.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
