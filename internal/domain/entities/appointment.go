package entities

import "time"

// AppointmentStatus represents the lifecycle of a clinic appointment.
//
// Domain notes:
//   - Appointments are never deleted; cancelled is a terminal-looking state that
//     can still be re-activated through the status endpoint.
//   - Only scheduled and confirmed appointments hold their slot.

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus returns the status matching raw, or false when raw is
// not one of the known appointment statuses.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	switch s := AppointmentStatus(raw); s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return s, true
	}
	return "", false
}

// HoldsSlot reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) HoldsSlot() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

// Appointment is a visit booked into the daily timetable.
//
// Storage model:
//   - PK: id
//   - index on date (slot listing)
//   - index on pet_id
//   - unique (date, slot) among scheduled/confirmed appointments
//
// Date is a civil date stored as midnight UTC; Slot is "HH:MM".
type Appointment struct {
	ID        string            `json:"id"`
	PetID     string            `json:"pet_id"`
	StaffID   *string           `json:"staff_id,omitempty"`
	Date      time.Time         `json:"date"`
	Slot      string            `json:"slot"`
	Reason    string            `json:"reason,omitempty"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
