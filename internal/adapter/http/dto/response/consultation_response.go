package response

import (
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/domain/schedule"
	"vetclinic/internal/usecase"
)

type ConsultationResponse struct {
	ID            string    `json:"id"`
	PetID         string    `json:"pet_id"`
	StaffID       string    `json:"staff_id"`
	AppointmentID *string   `json:"appointment_id"`
	Date          string    `json:"date"`
	Reason        string    `json:"reason"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Treatment     string    `json:"treatment,omitempty"`
	Medications   string    `json:"medications,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Cost          string    `json:"cost"`
	WeightKg      *float64  `json:"weight_kg,omitempty"`
	TemperatureC  *float64  `json:"temperature_c,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromConsultation(c entities.Consultation) ConsultationResponse {
	return ConsultationResponse{
		ID:            c.ID,
		PetID:         c.PetID,
		StaffID:       c.StaffID,
		AppointmentID: c.AppointmentID,
		Date:          schedule.FormatDate(c.Date),
		Reason:        c.Reason,
		Diagnosis:     c.Diagnosis,
		Treatment:     c.Treatment,
		Medications:   c.Medications,
		Notes:         c.Notes,
		Cost:          c.Cost.StringFixed(2),
		WeightKg:      c.WeightKg,
		TemperatureC:  c.TemperatureC,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromConsultations(in []entities.Consultation) []ConsultationResponse {
	out := make([]ConsultationResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromConsultation(c))
	}
	return out
}

// PendingInvoiceResponse is a completed consultation awaiting its invoice.
type PendingInvoiceResponse struct {
	ConsultationResponse
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func FromPendingInvoices(in []usecase.PendingInvoice) []PendingInvoiceResponse {
	out := make([]PendingInvoiceResponse, 0, len(in))
	for _, p := range in {
		out = append(out, PendingInvoiceResponse{
			ConsultationResponse: FromConsultation(p.Consultation),
			Subtotal:             p.Subtotal.StringFixed(2),
			Tax:                  p.Tax.StringFixed(2),
			Total:                p.Total.StringFixed(2),
		})
	}
	return out
}

type PrescriptionResponse struct {
	ConsultationID string `json:"consultation_id"`
	IssueDate      string `json:"issue_date"`
	PetName        string `json:"pet_name"`
	Species        string `json:"species"`
	OwnerName      string `json:"owner_name"`
	StaffID        string `json:"staff_id"`
	Diagnosis      string `json:"diagnosis"`
	Treatment      string `json:"treatment,omitempty"`
	Medications    string `json:"medications,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Instructions   string `json:"instructions"`
}

func FromPrescription(p usecase.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ConsultationID: p.ConsultationID,
		IssueDate:      schedule.FormatDate(p.IssueDate),
		PetName:        p.PetName,
		Species:        p.Species,
		OwnerName:      p.OwnerName,
		StaffID:        p.StaffID,
		Diagnosis:      p.Diagnosis,
		Treatment:      p.Treatment,
		Medications:    p.Medications,
		Notes:          p.Notes,
		Instructions:   p.Instructions,
	}
}
