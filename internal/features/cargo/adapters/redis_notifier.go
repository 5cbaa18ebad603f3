package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"privacy-cargo-tracking/internal/core/cache"
	"privacy-cargo-tracking/internal/features/cargo/domain"
)

// RedisNotifier implements ports.Notifier by publishing events on a
// Redis pub/sub channel for local consumers (indexers, dashboards).
type RedisNotifier struct {
	store   cache.Store
	channel string
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(s cache.Store, channel string) *RedisNotifier {
	return &RedisNotifier{
		store:   s,
		channel: channel,
	}
}

// Notify publishes the event as JSON.
func (n *RedisNotifier) Notify(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.store.Publish(ctx, n.channel, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
