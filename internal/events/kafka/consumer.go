package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"skillfund/internal/events"
)

// Handler processes one decoded recorded-investment event. A non-nil error
// leaves the message uncommitted so the group redelivers it.
type Handler func(ctx context.Context, event *events.InvestmentRecorded) error

// Consumer reads recorded-investment events for a consumer group. Offsets
// are committed only after the handler succeeds, so delivery is
// at-least-once and handlers must tolerate replays.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
	}
}

// Run fetches, handles and then commits messages until ctx is cancelled or
// the handler fails.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		var event events.InvestmentRecorded
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// skip malformed payloads rather than wedging the partition
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}
		if err := handle(ctx, &event); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
