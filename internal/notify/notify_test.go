// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendly/attendly/internal/models"
)

type memoryStore struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (s *memoryStore) InsertNotification(_ context.Context, n *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, *n)
	return n, nil
}

func (s *memoryStore) all() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func TestBusDeliversToConsumer(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()

	store := &memoryStore{}
	consumer := NewConsumer(bus, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Serve(ctx)
	}()

	// Give the subscription a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	err := bus.PublishGenerated(RecommendationsGenerated{
		UserID:        7,
		Count:         5,
		TopEventTitle: "Riverside Jazz Evening",
	})
	if err != nil {
		t.Fatalf("PublishGenerated() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if got := store.all(); len(got) == 1 {
			n := got[0]
			if n.UserID != 7 {
				t.Errorf("UserID = %d, want 7", n.UserID)
			}
			if n.Kind != "recommendations" {
				t.Errorf("Kind = %q, want recommendations", n.Kind)
			}
			if n.Message == "" {
				t.Error("Message is empty")
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("notification was not stored in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
}

func TestConsumerSkipsEmptyRuns(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()

	store := &memoryStore{}
	consumer := NewConsumer(bus, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := bus.PublishGenerated(RecommendationsGenerated{UserID: 7, Count: 0}); err != nil {
		t.Fatalf("PublishGenerated() error = %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := store.all(); len(got) != 0 {
		t.Errorf("stored %d notifications for empty run, want 0", len(got))
	}
}
