package usecase

import (
	"errors"
	"time"

	"vetclinic/internal/domain/entities"
)

var (
	ErrFutureDateNotCompletable = errors.New("cannot complete an appointment scheduled in the future")
	ErrPastDateNotCancellable   = errors.New("cannot cancel an appointment in the past")
)

// transitionGuard decides whether a may move to the guarded target status.
type transitionGuard func(a entities.Appointment, today time.Time) error

// appointmentGuards lists every legal target status. Any current status may
// move to any target here; only the two date rules below can refuse.
var appointmentGuards = map[entities.AppointmentStatus]transitionGuard{
	entities.AppointmentStatusScheduled: allowTransition,
	entities.AppointmentStatusConfirmed: allowTransition,
	entities.AppointmentStatusCompleted: func(a entities.Appointment, today time.Time) error {
		if a.Date.After(today) {
			return ErrFutureDateNotCompletable
		}
		return nil
	},
	entities.AppointmentStatusCancelled: func(a entities.Appointment, today time.Time) error {
		if a.Date.Before(today) {
			return ErrPastDateNotCancellable
		}
		return nil
	},
}

func allowTransition(entities.Appointment, time.Time) error { return nil }

// CheckAppointmentTransition returns nil when a may move to target today.
func CheckAppointmentTransition(a entities.Appointment, target entities.AppointmentStatus, today time.Time) error {
	guard, ok := appointmentGuards[target]
	if !ok {
		return ErrInvalidStatus
	}
	return guard(a, today)
}
