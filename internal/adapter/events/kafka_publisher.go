package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vetclinic/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each domain event to the topic <prefix>.<event type>,
// keyed by aggregate id so one appointment or invoice keeps its order.
type KafkaPublisher struct {
	writer      messageWriter
	topicPrefix string
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
		},
		topicPrefix: topicPrefix,
	}
}

func (p *KafkaPublisher) Topic(eventType string) string {
	if p.topicPrefix == "" {
		return eventType
	}
	return p.topicPrefix + "." + eventType
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt interfaces.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.Topic(evt.Type),
		Key:   []byte(evt.AggregateID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(evt.ID)},
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}
	msg.Headers = InjectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	log.Printf("[events][kafka] published topic=%s event_id=%s aggregate_id=%s", msg.Topic, evt.ID, evt.AggregateID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
