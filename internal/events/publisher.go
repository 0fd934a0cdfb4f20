// Package events fans system log entries out over Redis pub/sub so other
// processes (dashboards, alerting) can follow the simulated backend.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/redis/go-redis/v9"
)

// SystemLogChannel carries one JSON-encoded SystemLogEvent per message.
const SystemLogChannel = "jobmatch:system-logs"

type SystemLogEvent struct {
	Type      string    `json:"type"`
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Publisher sends events to Redis. A nil *Publisher, or one without a
// client, drops everything, so callers need no Redis in development.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// PublishLog announces a new system log entry.
func (p *Publisher) PublishLog(ctx context.Context, entry models.SystemLog) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(SystemLogEvent{
		Type:      "SYSTEM_LOG",
		ID:        entry.ID,
		Status:    entry.Status,
		Message:   entry.Message,
		Timestamp: entry.CreatedAt,
	})
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, SystemLogChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", SystemLogChannel, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
