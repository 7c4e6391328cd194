package pkg

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventPublisher writes JSON events to a single kafka topic.
type EventPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &EventPublisher{writer: w, topic: topic}
}

func (p *EventPublisher) Topic() string { return p.topic }

// Publish marshals v and writes it under key; same key lands on the same partition.
func (p *EventPublisher) Publish(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
}

func (p *EventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// KeyFromID formats a numeric id as a message key.
func KeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
