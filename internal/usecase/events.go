package usecase

import (
	"context"
	"log"

	"vetclinic/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// publish emits a domain event after commit. Delivery failures never undo the
// committed change, so they are only logged.
func publish(ctx context.Context, p interfaces.IEventPublisher, eventType, aggregateID string, payload any) {
	if p == nil {
		return
	}
	evt := interfaces.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     payload,
	}
	if err := p.Publish(ctx, evt); err != nil {
		log.Printf("[events][usecase] publish failed type=%s aggregate_id=%s err=%v", eventType, aggregateID, err)
	}
}
