// Package kafka publishes order-changed notifications for connected kitchen
// displays.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// ordersChangedEvent is the wire payload consumed by the display gateway.
// Keys are partitioned by restaurant so one display's events stay ordered.
type ordersChangedEvent struct {
	RestaurantID string    `json:"restaurantId"`
	OrderIDs     []string  `json:"orderIds"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// OrderNotifier implements ports.OrderNotifier on top of a Kafka topic.
type OrderNotifier struct {
	writer *kafka.Writer
}

// NewOrderNotifier creates a notifier over an existing writer.
func NewOrderNotifier(writer *kafka.Writer) *OrderNotifier {
	return &OrderNotifier{writer: writer}
}

// NewWriter builds the topic writer the notifier expects. Messages are
// hashed by key, so every event of one restaurant lands on one partition.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

// NotifyOrdersChanged publishes one event for the batch of changed orders.
func (n *OrderNotifier) NotifyOrdersChanged(ctx context.Context, restaurantID kernel.UUID, orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}

	event := ordersChangedEvent{
		RestaurantID: restaurantID.String(),
		OrderIDs:     ids,
		OccurredAt:   time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal orders-changed event: %w", err)
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RestaurantID),
		Value: payload,
	})
}

// Close closes the underlying writer.
func (n *OrderNotifier) Close() error {
	return n.writer.Close()
}
