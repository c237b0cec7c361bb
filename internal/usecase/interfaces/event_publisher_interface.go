package interfaces

import "context"

//go:generate mockgen -source=event_publisher_interface.go -destination=mocks/mock_event_publisher.go -package=mock_interfaces

const (
	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventConsultationCompleted    = "consultation.completed"
	EventInvoiceCreated           = "invoice.created"
	EventInvoicePaid              = "invoice.paid"
	EventInvoiceVoided            = "invoice.voided"
	EventInvoicePaymentUnapplied  = "invoice.payment_unapplied"
)

// Event is a domain fact emitted after a successful commit.
type Event struct {
	ID          string
	Type        string
	AggregateID string
	Payload     any
}

// IEventPublisher delivers domain events. Use cases publish after commit and
// only log failures.
type IEventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
