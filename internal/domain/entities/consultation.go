package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationStatusOpen      ConsultationStatus = "open"
	ConsultationStatusCompleted ConsultationStatus = "completed"
)

// Consultation is the billable record of a visit.
//
// Once completed it becomes the immutable input of invoicing: the invoice
// engine reads Cost and Reason and never writes back to it.
type Consultation struct {
	ID            string             `json:"id"`
	PetID         string             `json:"pet_id"`
	StaffID       string             `json:"staff_id"`
	AppointmentID *string            `json:"appointment_id,omitempty"`
	Date          time.Time          `json:"date"`
	Reason        string             `json:"reason"`
	Diagnosis     string             `json:"diagnosis"`
	Treatment     string             `json:"treatment,omitempty"`
	Medications   string             `json:"medications,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Cost          decimal.Decimal    `json:"cost"`
	WeightKg      *float64           `json:"weight_kg,omitempty"`
	TemperatureC  *float64           `json:"temperature_c,omitempty"`
	Status        ConsultationStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
