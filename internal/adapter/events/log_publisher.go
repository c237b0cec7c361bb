package events

import (
	"context"
	"encoding/json"
	"log"

	"vetclinic/internal/usecase/interfaces"
)

// LogPublisher is used when no broker is configured: events only reach the
// service log.
type LogPublisher struct{}

var _ interfaces.IEventPublisher = LogPublisher{}

func (LogPublisher) Publish(_ context.Context, evt interfaces.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}
	log.Printf("[events][log] type=%s event_id=%s aggregate_id=%s payload=%s", evt.Type, evt.ID, evt.AggregateID, payload)
	return nil
}
