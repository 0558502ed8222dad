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

// InsertNotification stores a notification for later delivery through
// the API.
func (db *DB) InsertNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, kind, message)
		VALUES (?, ?, ?)
		RETURNING id, created_at`,
		n.UserID, n.Kind, n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns the user's notifications, newest first.
// unreadOnly narrows to undelivered ones.
func (db *DB) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := `
		SELECT id, user_id, kind, message, read, created_at
		FROM notifications
		WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flags one notification as delivered. Scoped to
// the user so one account cannot touch another's rows.
func (db *DB) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = ? AND user_id = ?`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
