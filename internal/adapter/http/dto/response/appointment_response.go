package response

import (
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/domain/schedule"
)

type AppointmentResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	StaffID   *string   `json:"staff_id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		PetID:     a.PetID,
		StaffID:   a.StaffID,
		Date:      schedule.FormatDate(a.Date),
		Slot:      a.Slot,
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromAppointments(in []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, FromAppointment(a))
	}
	return out
}

type SlotValidationResponse struct {
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	IsAvailable bool   `json:"is_available"`
}
