package usage

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/fitforge-app/fitforge/internal/events"
)

// Consumer listens on the usage event subject and persists request history.
type Consumer struct {
	repo        *Repository
	consumerMgr *events.ConsumerManager
}

func NewConsumer(repo *Repository, consumerMgr *events.ConsumerManager) *Consumer {
	return &Consumer{
		repo:        repo,
		consumerMgr: consumerMgr,
	}
}

// Start begins the consume loop. Blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	consumer, err := c.consumerMgr.EnsureConsumer(ctx, events.StreamEvents, "usage-persister", events.SubjectUsageEvent)
	if err != nil {
		return err
	}

	slog.Info("usage consumer started", "consumer", "usage-persister")

	for {
		msgs, err := consumer.Fetch(10, jetstream.FetchMaxWait(events.FetchTimeout))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Debug("usage consumer: fetching events", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleEvent(ctx, msg)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) handleEvent(ctx context.Context, msg jetstream.Msg) {
	var event events.UsageEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		slog.Error("usage consumer: unmarshaling event", "error", err)
		_ = msg.Nak()
		return
	}

	log := &RequestLog{
		UserID:     event.UserID,
		Action:     event.Action,
		Status:     event.Status,
		DurationMs: event.DurationMs,
		CreatedAt:  event.Timestamp,
	}

	if err := c.repo.Insert(ctx, log); err != nil {
		slog.Error("usage consumer: persisting request log", "error", err, "action", event.Action)
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()

	slog.Debug("usage consumer: persisted event",
		"action", event.Action,
		"status", event.Status,
		"user_id", event.UserID,
	)
}
