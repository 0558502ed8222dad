// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package notify

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/attendly/attendly/internal/metrics"
	"github.com/attendly/attendly/internal/models"
)

// NotificationStore is the storage the consumer writes to.
type NotificationStore interface {
	InsertNotification(ctx context.Context, n *models.Notification) (*models.Notification, error)
}

// Consumer drains the bus and persists notifications. It implements
// suture.Service through Serve.
type Consumer struct {
	bus    *Bus
	store  NotificationStore
	logger zerolog.Logger
}

// NewConsumer creates a consumer for the given bus and store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(bus *Bus, store NotificationStore, logger zerolog.Logger) *Consumer {
	return &Consumer{
		bus:    bus,
		store:  store,
		logger: logger.With().Str("component", "notify-consumer").Logger(),
	}
}

// Serve consumes events until ctx is cancelled. A malformed or
// unpersistable message is logged, acked, and dropped; notifications
// are best-effort and never wedge the subscription.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.bus.SubscribeGenerated(ctx)
	if err != nil {
		return fmt.Errorf("consumer subscribe: %w", err)
	}

	c.logger.Info().Str("topic", TopicRecommendationsGenerated).Msg("Notification consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.handle(ctx, msg)
			msg.Ack()
		}
	}
}

// handle converts one event into a stored notification.
func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	var event RecommendationsGenerated
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		metrics.NotificationsDelivered.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed event")
		return
	}

	if event.Count == 0 {
		// Nothing to tell the user about.
		return
	}

	text := fmt.Sprintf("%d new event recommendations are ready for you", event.Count)
	if event.TopEventTitle != "" {
		text = fmt.Sprintf("%d new event recommendations are ready, starting with %q", event.Count, event.TopEventTitle)
	}

	_, err := c.store.InsertNotification(ctx, &models.Notification{
		UserID:  event.UserID,
		Kind:    "recommendations",
		Message: text,
	})
	if err != nil {
		metrics.NotificationsDelivered.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Int64("user_id", event.UserID).Msg("Notification insert failed")
		return
	}

	metrics.NotificationsDelivered.WithLabelValues("success").Inc()
	c.logger.Debug().Int64("user_id", event.UserID).Int("count", event.Count).Msg("Notification stored")
}
