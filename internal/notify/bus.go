// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package notify fans out domain events over an in-process pub/sub bus
// and turns them into stored user notifications. The bus decouples
// recommendation generation from notification delivery: publishers
// never block on storage, and a slow consumer cannot fail a generation
// run.
package notify

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/attendly/attendly/internal/metrics"
)

// TopicRecommendationsGenerated carries RecommendationsGenerated events.
const TopicRecommendationsGenerated = "recommendations.generated"

// RecommendationsGenerated is published after a generation run persists
// its results.
type RecommendationsGenerated struct {
	// UserID is the user whose recommendations were refreshed.
	UserID int64 `json:"user_id"`

	// Count is how many recommendations were persisted.
	Count int `json:"count"`

	// TopEventTitle is the highest ranked event's title, for display.
	TopEventTitle string `json:"top_event_title,omitempty"`
}

// Bus is an in-process pub/sub wrapper around watermill's GoChannel.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates the bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(logger zerolog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, NewLoggerAdapter(logger))

	return &Bus{
		pubsub: pubsub,
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// PublishGenerated publishes a RecommendationsGenerated event.
func (b *Bus) PublishGenerated(event RecommendationsGenerated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(TopicRecommendationsGenerated, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	metrics.NotificationsPublished.Inc()
	return nil
}

// SubscribeGenerated subscribes to RecommendationsGenerated events.
// The channel closes when ctx is cancelled or the bus shuts down.
func (b *Bus) SubscribeGenerated(ctx context.Context) (<-chan *message.Message, error) {
	messages, err := b.pubsub.Subscribe(ctx, TopicRecommendationsGenerated)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return messages, nil
}

// Close shuts the bus down, closing all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
