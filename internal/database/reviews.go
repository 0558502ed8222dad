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

// CreateReview inserts a review and updates the event's denormalized
// rating aggregates in the same transaction, so avg_rating and
// review_count never drift from the review rows. Returns ErrDuplicate
// when the user already reviewed the event and ErrNotFound when the
// event does not exist.
func (db *DB) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create review: %w", err)
	}
	defer rollbackQuietly(tx)

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = ?)`, review.EventID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check event %d: %w", review.EventID, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, event_id, rating, text, sentiment)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		review.UserID, review.EventID, review.Rating, review.Text, review.Sentiment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE events SET
			avg_rating = (SELECT AVG(rating) FROM reviews WHERE event_id = ?),
			review_count = (SELECT COUNT(*) FROM reviews WHERE event_id = ?)
		WHERE id = ?`,
		review.EventID, review.EventID, review.EventID)
	if err != nil {
		return nil, fmt.Errorf("refresh event aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create review: %w", err)
	}
	return review, nil
}

// ListEventReviews returns an event's reviews, newest first, with the
// reviewer's username and pagination metadata.
func (db *DB) ListEventReviews(ctx context.Context, eventID int64, page, perPage int) (*models.ReviewsResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE event_id = ?`, eventID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.username, r.event_id, r.rating, r.text, r.sentiment, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = ?
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?`,
		eventID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.EventID, &r.Rating,
			&r.Text, &r.Sentiment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.ReviewsResponse{
		Reviews: reviews,
		Pagination: models.PaginationInfo{
			Page:       page,
			PerPage:    perPage,
			TotalCount: total,
			TotalPages: (total + perPage - 1) / perPage,
		},
	}, nil
}
