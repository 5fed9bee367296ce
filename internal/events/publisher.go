// Package events publishes category blacklist change events to Redis
// Streams so downstream consumers can react to curation decisions.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/product-curator/internal/logger"
)

// StreamName is the Redis stream carrying category events.
const StreamName = "product-curator:category-events"

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

type EventType string

const (
	EventCategoryBlacklisted EventType = "category.blacklisted"
	EventCategoryReinstated  EventType = "category.reinstated"
)

// CategoryEvent records one blacklist flag change.
type CategoryEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	EventType     EventType `json:"event_type"`
	CategoryID    string    `json:"category_id"`
	IsBlacklisted bool      `json:"is_blacklisted"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewCategoryEvent builds the event for a flag change.
func NewCategoryEvent(categoryID string, isBlacklisted bool) CategoryEvent {
	eventType := EventCategoryReinstated
	if isBlacklisted {
		eventType = EventCategoryBlacklisted
	}
	return CategoryEvent{
		EventID:       uuid.New(),
		EventType:     eventType,
		CategoryID:    categoryID,
		IsBlacklisted: isBlacklisted,
		Timestamp:     time.Now().UTC(),
	}
}

// Publisher publishes category events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a new event publisher. Returns nil if client is
// nil; a nil Publisher is safe to call and does nothing.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish sends an event to the Redis stream.
func (p *Publisher) Publish(ctx context.Context, event CategoryEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.String("category_id", event.CategoryID),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published category event",
			logger.String("event_type", string(event.EventType)),
			logger.String("category_id", event.CategoryID),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// PublishAsync publishes an event asynchronously. Errors are logged but
// not returned.
func (p *Publisher) PublishAsync(event CategoryEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("category_id", event.CategoryID),
				logger.Error(err),
			)
		}
	}()
}
