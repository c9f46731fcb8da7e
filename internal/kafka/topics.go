package kafka

import (
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"ms-marketplace/internal/config"

	"github.com/segmentio/kafka-go"
)

// EnsureTopicsExist creates the marketplace topics if they don't already exist.
func EnsureTopicsExist(brokers []string, topics config.TopicConfig) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	names := []string{
		topics.OrderCreated,
		topics.OrderStatusChanged,
		topics.RatingAdded,
		topics.UserVerified,
	}

	for _, topic := range names {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				log.Printf("Topic %s already exists", topic)
				continue
			}
			log.Printf("Error creating topic %s: %v", topic, err)
			// Keep going, a broker restart may fix the rest
		} else {
			log.Printf("Created topic: %s", topic)
		}
	}

	// Give the brokers a moment to settle new topics
	time.Sleep(1 * time.Second)
	return nil
}
