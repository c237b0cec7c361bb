package interfaces

import (
	"context"
	"time"

	"vetclinic/internal/domain/entities"
)

//go:generate mockgen -source=appointment_repository_interface.go -destination=mocks/mock_appointment_repository.go -package=mock_interfaces

// IAppointmentRepository abstracts persistence for Appointment.
//
// Lookups return a zero Appointment (empty ID) and a nil error when nothing
// matches. The store guarantees a single scheduled/confirmed appointment per
// (date, slot); violations are reported as ErrConflict.
type IAppointmentRepository interface {
	Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	ListByDate(ctx context.Context, date time.Time, statuses ...entities.AppointmentStatus) ([]entities.Appointment, error)
	ListByPetID(ctx context.Context, petID string) ([]entities.Appointment, error)
	// UpdateStatus persists a.Status and a.UpdatedAt only if the stored status
	// still equals from.
	UpdateStatus(ctx context.Context, a entities.Appointment, from entities.AppointmentStatus) (entities.Appointment, error)
}
