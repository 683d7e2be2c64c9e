// Package kafkaout implements the outbound event publisher port on Kafka.
package kafkaout

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"orders/internal/core/domain/model/outbox"
	"orders/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// eventEnvelope is the wire format of a published order event. The event id
// is stable across redeliveries so consumers can deduplicate: the relay
// guarantees at-least-once, never exactly-once.
type eventEnvelope struct {
	EventID     string          `json:"event_id"`
	AggregateID string          `json:"aggregate_id"`
	EventType   string          `json:"event_type"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Publisher writes order events to a Kafka topic. Messages are keyed by
// aggregate id, so every event of one order lands in the same partition and
// consumers observe them in publish order.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to topic on the given brokers.
// Writes are synchronous and require acknowledgement from all in-sync
// replicas, as the relay marks records published on a nil return.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	cleaned := make([]string, 0, len(brokers))
	for _, broker := range brokers {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			cleaned = append(cleaned, broker)
		}
	}
	if len(cleaned) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cleaned...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}, nil
}

// Publish implements ports.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, record *outbox.Record) error {
	if record == nil {
		return errs.NewValueIsRequiredError("record")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(eventEnvelope{
		EventID:     record.ID().String(),
		AggregateID: record.AggregateID().String(),
		EventType:   record.EventType(),
		OccurredAt:  record.OccurredAt(),
		Payload:     json.RawMessage(record.Payload()),
	})
	if err != nil {
		return err
	}

	key := record.AggregateID().Bytes()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key[:],
		Value: value,
		Time:  record.OccurredAt(),
	})
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
