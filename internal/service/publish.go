package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/job_tracker/internal/events"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

const publishTimeout = 5 * time.Second

type UserEvent struct {
	Type   string    `json:"type"`
	UserID uint      `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

type TrackerEvent struct {
	Type      string    `json:"type"`
	TrackerID uint      `json:"tracker_id"`
	UserID    uint      `json:"user_id"`
	At        time.Time `json:"at"`
}

// publish never fails the caller; a broker outage only costs the event.
func publish(ctx context.Context, pub events.Publisher, topic, key string, event any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := pub.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", topic, "key", key, "error", err)
	}
}
