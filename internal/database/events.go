// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/database/query"
	"github.com/attendly/attendly/internal/models"
)

// Listing page size bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// EventFilter describes an event listing query. All fields are optional
// and combine with AND; values bind as parameters, never as SQL text.
type EventFilter struct {
	From        *time.Time
	To          *time.Time
	CategoryIDs []int64
	Statuses    []string
	Search      string
	MinRating   float64
	Page        int
	PerPage     int
}

// normalize clamps pagination to sane bounds.
func (f *EventFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPageSize
	}
	if f.PerPage > MaxPageSize {
		f.PerPage = MaxPageSize
	}
}

// where builds the filter's WHERE clause.
func (f *EventFilter) where() (string, []interface{}) {
	return query.NewWhereBuilder().
		AddDateRange(f.From, f.To).
		AddCategories(f.CategoryIDs).
		AddStatuses(f.Statuses).
		AddSearch(f.Search).
		AddMinRating(f.MinRating).
		Build()
}

// ListEvents returns a filtered, paginated event listing with total
// counts for the pagination envelope.
func (db *DB) ListEvents(ctx context.Context, filter EventFilter) (*models.EventsResponse, error) {
	filter.normalize()
	whereClause, args := filter.where()

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events e WHERE %s`, whereClause)
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage
	listQuery := fmt.Sprintf(`
		SELECT e.id, e.title, e.description, e.venue, e.starts_at, e.status,
		       e.avg_rating, e.review_count, e.created_at
		FROM events e
		WHERE %s
		ORDER BY e.starts_at, e.id
		LIMIT ? OFFSET ?`, whereClause)
	listArgs := append(append([]interface{}{}, args...), filter.PerPage, offset)

	rows, err := db.conn.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.StartsAt,
			&ev.Status, &ev.AvgRating, &ev.ReviewCount, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachCategories(ctx, events); err != nil {
		return nil, err
	}

	totalPages := (total + filter.PerPage - 1) / filter.PerPage
	return &models.EventsResponse{
		Events: events,
		Pagination: models.PaginationInfo{
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetEvent returns one event with its categories, or ErrNotFound.
func (db *DB) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	var ev models.Event
	err := db.conn.QueryRowContext(ctx, `
		SELECT e.id, e.title, e.description, e.venue, e.starts_at, e.status,
		       e.avg_rating, e.review_count, e.created_at
		FROM events e
		WHERE e.id = ?`, eventID).
		Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.StartsAt,
			&ev.Status, &ev.AvgRating, &ev.ReviewCount, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}

	events := []models.Event{ev}
	if err := db.attachCategories(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// attachCategories fills in Categories for the given events in one
// query instead of one per event.
func (db *DB) attachCategories(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	placeholders := ""
	args := make([]interface{}, 0, len(events))
	index := make(map[int64]int, len(events))
	for i := range events {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, events[i].ID)
		index[events[i].ID] = i
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT ec.event_id, c.id, c.name
		FROM event_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id IN (%s)
		ORDER BY ec.event_id, c.id`, placeholders), args...)
	if err != nil {
		return fmt.Errorf("query event categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID int64
			cat     models.Category
		)
		if err := rows.Scan(&eventID, &cat.ID, &cat.Name); err != nil {
			return fmt.Errorf("scan event category: %w", err)
		}
		if i, ok := index[eventID]; ok {
			events[i].Categories = append(events[i].Categories, cat)
		}
	}
	return rows.Err()
}

// ListCategories returns all categories ordered by name.
func (db *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// CreateEvent inserts an event with its category links and returns it.
func (db *DB) CreateEvent(ctx context.Context, ev *models.Event, categoryIDs []int64) (*models.Event, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create event: %w", err)
	}
	defer rollbackQuietly(tx)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO events (title, description, venue, starts_at, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		ev.Title, ev.Description, ev.Venue, ev.StartsAt, ev.Status).
		Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	for _, catID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_categories (event_id, category_id) VALUES (?, ?)`,
			ev.ID, catID); err != nil {
			return nil, fmt.Errorf("link event %d to category %d: %w", ev.ID, catID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create event: %w", err)
	}
	return db.GetEvent(ctx, ev.ID)
}

// rollbackQuietly rolls back; a failed rollback after commit is expected
// and ignored.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}
