package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/segmentio/kafka-go"
)

// EventHandler reacts to one decoded marketplace event.
type EventHandler interface {
	Handle(ctx context.Context, event models.Event) error
}

type EventHandlerFunc func(ctx context.Context, event models.Event) error

func (f EventHandlerFunc) Handle(ctx context.Context, event models.Event) error {
	return f(ctx, event)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader  messageReader
	handler EventHandler
}

func NewConsumer(brokers []string, topic, groupID string, handler EventHandler) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		handler: handler,
	}
}

// Consume blocks until ctx is cancelled. Malformed messages and handler
// failures are logged and skipped; the offset still advances.
func (c *Consumer) Consume(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
				slog.Info("Kafka consumer stopped")
				return
			}
			slog.Error("failed to read Kafka message", "error", err)
			continue
		}

		slog.Debug("Kafka message received", "topic", msg.Topic, "key", string(msg.Key))

		var event models.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("failed to unmarshal marketplace event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			continue
		}

		switch event.Type {
		case models.EventPurchaseCompleted, models.EventListingRotated, models.EventOperatorAlert:
		default:
			slog.Warn("unknown event type", "type", event.Type, "offset", msg.Offset)
			continue
		}

		if err := c.handler.Handle(ctx, event); err != nil {
			// TODO: Send to dead-letter queue
			slog.Error("failed to handle marketplace event", "type", event.Type, "listing_id", event.ListingID, "error", err)
			continue
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
