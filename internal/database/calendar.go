// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package database

import (
	"context"
	"fmt"

	"github.com/attendly/attendly/internal/models"
)

// AddCalendarEntry marks an event as planned by the user. Returns
// ErrNotFound when the event does not exist and ErrDuplicate when the
// entry already exists.
func (db *DB) AddCalendarEntry(ctx context.Context, userID, eventID int64) (*models.CalendarEntry, error) {
	var exists bool
	if err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = ?)`, eventID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check event %d: %w", eventID, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	entry := &models.CalendarEntry{UserID: userID, EventID: eventID}
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO calendar_entries (user_id, event_id)
		VALUES (?, ?)
		RETURNING id, created_at`,
		userID, eventID).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert calendar entry: %w", err)
	}
	return entry, nil
}

// RemoveCalendarEntry deletes the user's entry for an event.
func (db *DB) RemoveCalendarEntry(ctx context.Context, userID, eventID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM calendar_entries WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete calendar entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserCalendar returns the events on the user's calendar, soonest
// first.
func (db *DB) ListUserCalendar(ctx context.Context, userID int64) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT e.id, e.title, e.description, e.venue, e.starts_at, e.status,
		       e.avg_rating, e.review_count, e.created_at
		FROM calendar_entries c
		JOIN events e ON e.id = c.event_id
		WHERE c.user_id = ?
		ORDER BY e.starts_at, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user calendar: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.StartsAt,
			&ev.Status, &ev.AvgRating, &ev.ReviewCount, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachCategories(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}
