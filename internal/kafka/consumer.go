package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a new Kafka consumer for the given topic and group
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

// StartUserVerified consumes user-verified events and hands the user ID to
// the handler. Runs until the context is cancelled; malformed messages are
// logged and skipped.
func (c *Consumer) StartUserVerified(ctx context.Context, handler func(userID string)) {
	fmt.Println("🔄 Kafka consumer started...")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("❌ Error reading message: %v\n", err)
			continue
		}

		var event struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("❌ Error unmarshalling user-verified event: %v\n", err)
			continue
		}
		if event.UserID == "" {
			continue
		}

		handler(event.UserID)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
