package kafka

import (
	"context"
	"encoding/json"
	"time"

	"ms-marketplace/internal/config"
	"ms-marketplace/internal/models"

	"github.com/segmentio/kafka-go"
)

// Producer streams marketplace events. Publishing is best effort: callers log
// failures and carry on, a lost event never fails the business operation.
type Producer struct {
	writer *kafka.Writer
	topics config.TopicConfig
}

func NewProducer(brokers []string, topics config.TopicConfig) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, topics: topics}
}

type orderEvent struct {
	OrderID   string             `json:"order_id"`
	BuyerID   string             `json:"buyer_id"`
	SellerID  string             `json:"seller_id"`
	Status    models.OrderStatus `json:"status"`
	Total     float64            `json:"total_amount"`
	Timestamp time.Time          `json:"timestamp"`
}

type ratingEvent struct {
	RaterID      string    `json:"rater_id"`
	TargetUserID string    `json:"target_user_id"`
	OrderID      string    `json:"order_id"`
	Rating       int       `json:"rating"`
	Timestamp    time.Time `json:"timestamp"`
}

type verifiedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *Producer) publish(topic, key string, payload any) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
}

func (p *Producer) PublishOrderCreated(order models.Order) error {
	return p.publish(p.topics.OrderCreated, order.OrderID, orderEvent{
		OrderID:   order.OrderID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		Status:    order.Status,
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	})
}

func (p *Producer) PublishOrderStatusChanged(order models.Order) error {
	return p.publish(p.topics.OrderStatusChanged, order.OrderID, orderEvent{
		OrderID:   order.OrderID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		Status:    order.Status,
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	})
}

func (p *Producer) PublishRatingAdded(review models.Review, targetUserID string) error {
	return p.publish(p.topics.RatingAdded, targetUserID, ratingEvent{
		RaterID:      review.RaterID,
		TargetUserID: targetUserID,
		OrderID:      review.OrderID,
		Rating:       review.Rating,
		Timestamp:    time.Now(),
	})
}

func (p *Producer) PublishUserVerified(userID string) error {
	return p.publish(p.topics.UserVerified, userID, verifiedEvent{
		UserID:    userID,
		Timestamp: time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
