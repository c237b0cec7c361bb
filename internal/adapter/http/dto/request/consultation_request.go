package request

import (
	"vetclinic/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateConsultationRequest opens a consultation. Cost accepts either a JSON
// number or a decimal string ("45.50").
type CreateConsultationRequest struct {
	PetID         string           `json:"pet_id" binding:"required"`
	StaffID       string           `json:"staff_id" binding:"required"`
	AppointmentID *string          `json:"appointment_id"`
	Reason        string           `json:"reason" binding:"required"`
	Diagnosis     string           `json:"diagnosis"`
	Treatment     string           `json:"treatment"`
	Medications   string           `json:"medications"`
	Notes         string           `json:"notes"`
	Cost          *decimal.Decimal `json:"cost" binding:"required"`
	WeightKg      *float64         `json:"weight_kg"`
	TemperatureC  *float64         `json:"temperature_c"`
}

func (r CreateConsultationRequest) ToCommand() usecase.CreateConsultationCommand {
	cmd := usecase.CreateConsultationCommand{
		PetID:         r.PetID,
		StaffID:       r.StaffID,
		AppointmentID: r.AppointmentID,
		Reason:        r.Reason,
		Diagnosis:     r.Diagnosis,
		Treatment:     r.Treatment,
		Medications:   r.Medications,
		Notes:         r.Notes,
		WeightKg:      r.WeightKg,
		TemperatureC:  r.TemperatureC,
	}
	if r.Cost != nil {
		cmd.Cost = *r.Cost
	}
	return cmd
}
