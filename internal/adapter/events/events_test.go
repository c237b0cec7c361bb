package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"vetclinic/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topicPrefix: "vetclinic"}

	err := p.Publish(ctx, interfaces.Event{
		ID:          "evt-1",
		Type:        interfaces.EventInvoicePaid,
		AggregateID: "inv-1",
		Payload:     map[string]string{"id": "inv-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(w.msgs))
	}

	msg := w.msgs[0]
	if msg.Topic != "vetclinic.invoice.paid" || string(msg.Key) != "inv-1" {
		t.Fatalf("unexpected routing topic=%s key=%s", msg.Topic, msg.Key)
	}
	if header(msg, "event_id") != "evt-1" || header(msg, "event_type") != "invoice.paid" {
		t.Fatalf("unexpected headers %+v", msg.Headers)
	}
	if got := header(msg, "traceparent"); got != "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01" {
		t.Fatalf("unexpected traceparent %q", got)
	}

	var body map[string]string
	if err := json.Unmarshal(msg.Value, &body); err != nil || body["id"] != "inv-1" {
		t.Fatalf("unexpected payload %s (%v)", msg.Value, err)
	}
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), interfaces.Event{ID: "evt-1", Type: "appointment.booked"})
	if err == nil || err.Error() != "broker down" {
		t.Fatalf("expected broker error, got %v", err)
	}
	if p.Topic("appointment.booked") != "appointment.booked" {
		t.Fatalf("empty prefix must leave the event type as topic")
	}
}

func TestLogPublisher(t *testing.T) {
	if err := (LogPublisher{}).Publish(context.Background(), interfaces.Event{Type: "appointment.booked", Payload: map[string]int{"n": 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (LogPublisher{}).Publish(context.Background(), interfaces.Event{Payload: make(chan int)}); err == nil {
		t.Fatalf("expected marshal error")
	}
}
