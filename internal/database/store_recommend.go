// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/recommend"
)

// The DB is the production implementation of recommend.Store.
var _ recommend.Store = (*DB)(nil)

// FetchReviewSignals returns the user's reviews joined to the reviewed
// events' categories, folded into one signal per review.
func (db *DB) FetchReviewSignals(ctx context.Context, userID int64) ([]recommend.ReviewSignal, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.event_id, r.rating, r.text, ec.category_id
		FROM reviews r
		LEFT JOIN event_categories ec ON ec.event_id = r.event_id
		WHERE r.user_id = ?
		ORDER BY r.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query review signals: %w", err)
	}
	defer rows.Close()

	var signals []recommend.ReviewSignal
	index := make(map[int64]int)

	for rows.Next() {
		var (
			eventID    int64
			rating     int
			text       string
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&eventID, &rating, &text, &categoryID); err != nil {
			return nil, fmt.Errorf("scan review signal: %w", err)
		}

		i, ok := index[eventID]
		if !ok {
			i = len(signals)
			index[eventID] = i
			signals = append(signals, recommend.ReviewSignal{
				EventID:    eventID,
				Rating:     rating,
				ReviewText: text,
			})
		}
		if categoryID.Valid {
			signals[i].CategoryIDs = append(signals[i].CategoryIDs, categoryID.Int64)
		}
	}
	return signals, rows.Err()
}

// FetchCalendarSignals returns the user's calendar entries joined to the
// calendared events' categories.
func (db *DB) FetchCalendarSignals(ctx context.Context, userID int64) ([]recommend.CalendarSignal, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.event_id, ec.category_id
		FROM calendar_entries c
		LEFT JOIN event_categories ec ON ec.event_id = c.event_id
		WHERE c.user_id = ?
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query calendar signals: %w", err)
	}
	defer rows.Close()

	var signals []recommend.CalendarSignal
	index := make(map[int64]int)

	for rows.Next() {
		var (
			eventID    int64
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&eventID, &categoryID); err != nil {
			return nil, fmt.Errorf("scan calendar signal: %w", err)
		}

		i, ok := index[eventID]
		if !ok {
			i = len(signals)
			index[eventID] = i
			signals = append(signals, recommend.CalendarSignal{EventID: eventID})
		}
		if categoryID.Valid {
			signals[i].CategoryIDs = append(signals[i].CategoryIDs, categoryID.Int64)
		}
	}
	return signals, rows.Err()
}

// FetchCandidateEvents returns upcoming events the user has neither
// reviewed nor calendared, with their categories. Ordered by event ID so
// repeated runs see identical input order.
func (db *DB) FetchCandidateEvents(ctx context.Context, userID int64) ([]recommend.CandidateEvent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT e.id, e.title, e.description, e.avg_rating, ec.category_id
		FROM events e
		LEFT JOIN event_categories ec ON ec.event_id = e.id
		WHERE e.status = 'upcoming'
		  AND e.starts_at >= CURRENT_TIMESTAMP
		  AND e.id NOT IN (SELECT event_id FROM reviews WHERE user_id = ?)
		  AND e.id NOT IN (SELECT event_id FROM calendar_entries WHERE user_id = ?)
		ORDER BY e.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("query candidate events: %w", err)
	}
	defer rows.Close()

	var candidates []recommend.CandidateEvent
	index := make(map[int64]int)

	for rows.Next() {
		var (
			id          int64
			title       string
			description string
			avgRating   float64
			categoryID  sql.NullInt64
		)
		if err := rows.Scan(&id, &title, &description, &avgRating, &categoryID); err != nil {
			return nil, fmt.Errorf("scan candidate event: %w", err)
		}

		i, ok := index[id]
		if !ok {
			i = len(candidates)
			index[id] = i
			candidates = append(candidates, recommend.CandidateEvent{
				ID:          id,
				Title:       title,
				Description: description,
				AvgRating:   avgRating,
			})
		}
		if categoryID.Valid {
			candidates[i].CategoryIDs = append(candidates[i].CategoryIDs, categoryID.Int64)
		}
	}
	return candidates, rows.Err()
}

// UpsertRecommendation inserts or overwrites the recommendation row
// keyed by (userID, eventID). Regeneration refreshes score, reason, and
// timestamp in place.
func (db *DB) UpsertRecommendation(ctx context.Context, userID, eventID int64, score float64, reason string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO recommendations (user_id, event_id, score, reason, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, event_id) DO UPDATE SET
			score = excluded.score,
			reason = excluded.reason,
			created_at = excluded.created_at`,
		userID, eventID, score, reason)
	if err != nil {
		return fmt.Errorf("upsert recommendation user=%d event=%d: %w", userID, eventID, err)
	}
	return nil
}

// FetchTopRecommendations returns the user's stored recommendations,
// highest score first. Event ID breaks score ties for stable reads.
func (db *DB) FetchTopRecommendations(ctx context.Context, userID int64, limit int) ([]recommend.StoredRecommendation, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT event_id, score, reason, created_at
		FROM recommendations
		WHERE user_id = ?
		ORDER BY score DESC, event_id
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query top recommendations: %w", err)
	}
	defer rows.Close()

	var recs []recommend.StoredRecommendation
	for rows.Next() {
		var rec recommend.StoredRecommendation
		if err := rows.Scan(&rec.EventID, &rec.Score, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// FetchPopularEvents returns upcoming events with their engagement
// counts. categoryID 0 means no category filter.
func (db *DB) FetchPopularEvents(ctx context.Context, categoryID int64, limit int) ([]recommend.PopularEvent, error) {
	query := `
		SELECT e.id, e.title, e.avg_rating, e.review_count,
		       (SELECT COUNT(*) FROM calendar_entries c WHERE c.event_id = e.id) AS calendar_count
		FROM events e
		WHERE e.status = 'upcoming'
		  AND e.starts_at >= CURRENT_TIMESTAMP`
	args := []interface{}{}

	if categoryID > 0 {
		query += ` AND e.id IN (SELECT event_id FROM event_categories WHERE category_id = ?)`
		args = append(args, categoryID)
	}
	query += ` ORDER BY e.id LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query popular events: %w", err)
	}
	defer rows.Close()

	var events []recommend.PopularEvent
	for rows.Next() {
		var ev recommend.PopularEvent
		if err := rows.Scan(&ev.EventID, &ev.Title, &ev.AvgRating, &ev.ReviewCount, &ev.CalendarCount); err != nil {
			return nil, fmt.Errorf("scan popular event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteRecommendation removes one stored recommendation, e.g. when the
// user dismisses it.
func (db *DB) DeleteRecommendation(ctx context.Context, userID, eventID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM recommendations WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecommendationsBefore prunes recommendations older than cutoff.
// Returns the number of rows removed.
func (db *DB) DeleteRecommendationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM recommendations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune recommendations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil //nolint:nilerr // prune count is advisory
	}
	return n, nil
}

// ListUserIDs returns all user IDs, used by the background refresh loop.
func (db *DB) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
