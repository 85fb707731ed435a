package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"souqeats/internal/domain"
	"souqeats/internal/service"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

var _ service.OrderPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderEvent writes one event keyed by order id, so events for the
// same order stay in one partition.
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: payload,
	})
}
