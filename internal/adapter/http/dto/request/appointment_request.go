package request

import "vetclinic/internal/usecase"

// BookAppointmentRequest books a slot. Date is YYYY-MM-DD and Slot is HH:MM.
type BookAppointmentRequest struct {
	PetID   string  `json:"pet_id" binding:"required"`
	StaffID *string `json:"staff_id"`
	Date    string  `json:"date" binding:"required"`
	Slot    string  `json:"slot" binding:"required"`
	Reason  string  `json:"reason"`
}

func (r BookAppointmentRequest) ToCommand() usecase.BookAppointmentCommand {
	return usecase.BookAppointmentCommand{
		PetID:   r.PetID,
		StaffID: r.StaffID,
		Date:    r.Date,
		Slot:    r.Slot,
		Reason:  r.Reason,
	}
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
