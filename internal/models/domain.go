// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package models

import "time"

// Event statuses. Candidate selection and popularity only consider
// "upcoming" events.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusFinished  = "finished"
	EventStatusCancelled = "cancelled"
)

// User is a registered account. PasswordHash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category is an event category such as "music" or "sports".
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Event is a listed event with denormalized rating aggregates.
// AvgRating and ReviewCount are maintained transactionally when reviews
// are written, so reads never recompute them.
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    time.Time  `json:"starts_at"`
	Status      string     `json:"status"`
	AvgRating   float64    `json:"avg_rating"`
	ReviewCount int        `json:"review_count"`
	Categories  []Category `json:"categories,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Review is one user's rating and write-up for an event. A user reviews
// an event at most once.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	EventID   int64     `json:"event_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// CalendarEntry marks an event a user plans to attend.
type CalendarEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a message delivered to a user, currently emitted when
// a recommendation run completes.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token for subsequent requests.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	UserID    int64     `json:"user_id"`
}

// CreateReviewRequest submits a review for an event.
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=4000"`
}
