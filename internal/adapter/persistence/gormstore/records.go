package gormstore

import (
	"time"

	"vetclinic/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Dates are stored as YYYY-MM-DD text so the partial unique index on
// (date, slot) behaves the same on postgres and sqlite.

type appointmentRecord struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	PetID     string  `gorm:"type:varchar(36);not null;index"`
	StaffID   *string `gorm:"type:varchar(64)"`
	Date      string  `gorm:"type:varchar(10);not null;index"`
	Slot      string  `gorm:"type:varchar(5);not null"`
	Reason    string  `gorm:"type:text"`
	Status    string  `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (appointmentRecord) TableName() string { return "appointments" }

type consultationRecord struct {
	ID            string          `gorm:"type:varchar(36);primaryKey"`
	PetID         string          `gorm:"type:varchar(36);not null;index"`
	StaffID       string          `gorm:"type:varchar(64);not null"`
	AppointmentID *string         `gorm:"type:varchar(36);index"`
	Date          string          `gorm:"type:varchar(10);not null"`
	Reason        string          `gorm:"type:text;not null"`
	Diagnosis     string          `gorm:"type:text"`
	Treatment     string          `gorm:"type:text"`
	Medications   string          `gorm:"type:text"`
	Notes         string          `gorm:"type:text"`
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	WeightKg      *float64
	TemperatureC  *float64
	Status        string `gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (consultationRecord) TableName() string { return "consultations" }

type invoiceRecord struct {
	ID                string          `gorm:"type:varchar(36);primaryKey"`
	Number            string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	ConsultationID    string          `gorm:"type:varchar(36);not null;uniqueIndex"`
	ClientID          string          `gorm:"type:varchar(36);index"`
	PetID             string          `gorm:"type:varchar(36);not null"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxRate           decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	IssueDate         string          `gorm:"type:varchar(10);not null"`
	DueDate           string          `gorm:"type:varchar(10);not null"`
	Status            string          `gorm:"type:varchar(16);not null;index"`
	PaymentMethod     string          `gorm:"type:varchar(32)"`
	PaidDate          *string         `gorm:"type:varchar(10)"`
	ProviderPaymentID string          `gorm:"type:varchar(64)"`
	Notes             string          `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (invoiceRecord) TableName() string { return "invoices" }

type petRecord struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	OwnerID   string `gorm:"type:varchar(36);not null;index"`
	Name      string `gorm:"type:varchar(120);not null"`
	Species   string `gorm:"type:varchar(60);not null"`
	Breed     string `gorm:"type:varchar(120)"`
	AgeYears  int
	Sex       string `gorm:"type:varchar(1)"`
	CreatedAt time.Time
}

func (petRecord) TableName() string { return "pets" }

type clientRecord struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	Email     string `gorm:"type:varchar(254)"`
	Phone     string `gorm:"type:varchar(32)"`
	CreatedAt time.Time
}

func (clientRecord) TableName() string { return "clients" }

func formatDate(t time.Time) string { return t.UTC().Format(dateLayout) }

func parseDate(raw string) time.Time {
	t, _ := time.Parse(dateLayout, raw)
	return t
}

func toAppointmentRecord(a entities.Appointment) appointmentRecord {
	return appointmentRecord{
		ID:        a.ID,
		PetID:     a.PetID,
		StaffID:   a.StaffID,
		Date:      formatDate(a.Date),
		Slot:      a.Slot,
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r appointmentRecord) entity() entities.Appointment {
	return entities.Appointment{
		ID:        r.ID,
		PetID:     r.PetID,
		StaffID:   r.StaffID,
		Date:      parseDate(r.Date),
		Slot:      r.Slot,
		Reason:    r.Reason,
		Status:    entities.AppointmentStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func toConsultationRecord(c entities.Consultation) consultationRecord {
	return consultationRecord{
		ID:            c.ID,
		PetID:         c.PetID,
		StaffID:       c.StaffID,
		AppointmentID: c.AppointmentID,
		Date:          formatDate(c.Date),
		Reason:        c.Reason,
		Diagnosis:     c.Diagnosis,
		Treatment:     c.Treatment,
		Medications:   c.Medications,
		Notes:         c.Notes,
		Cost:          c.Cost,
		WeightKg:      c.WeightKg,
		TemperatureC:  c.TemperatureC,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r consultationRecord) entity() entities.Consultation {
	return entities.Consultation{
		ID:            r.ID,
		PetID:         r.PetID,
		StaffID:       r.StaffID,
		AppointmentID: r.AppointmentID,
		Date:          parseDate(r.Date),
		Reason:        r.Reason,
		Diagnosis:     r.Diagnosis,
		Treatment:     r.Treatment,
		Medications:   r.Medications,
		Notes:         r.Notes,
		Cost:          r.Cost,
		WeightKg:      r.WeightKg,
		TemperatureC:  r.TemperatureC,
		Status:        entities.ConsultationStatus(r.Status),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func toInvoiceRecord(inv entities.Invoice) invoiceRecord {
	rec := invoiceRecord{
		ID:                inv.ID,
		Number:            inv.Number,
		ConsultationID:    inv.ConsultationID,
		ClientID:          inv.ClientID,
		PetID:             inv.PetID,
		Subtotal:          inv.Subtotal,
		Tax:               inv.Tax,
		Total:             inv.Total,
		TaxRate:           inv.TaxRate,
		IssueDate:         formatDate(inv.IssueDate),
		DueDate:           formatDate(inv.DueDate),
		Status:            string(inv.Status),
		PaymentMethod:     string(inv.PaymentMethod),
		ProviderPaymentID: inv.ProviderPaymentID,
		Notes:             inv.Notes,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	if inv.PaidDate != nil {
		paid := formatDate(*inv.PaidDate)
		rec.PaidDate = &paid
	}
	return rec
}

func (r invoiceRecord) entity() entities.Invoice {
	inv := entities.Invoice{
		ID:                r.ID,
		Number:            r.Number,
		ConsultationID:    r.ConsultationID,
		ClientID:          r.ClientID,
		PetID:             r.PetID,
		Subtotal:          r.Subtotal,
		Tax:               r.Tax,
		Total:             r.Total,
		TaxRate:           r.TaxRate,
		IssueDate:         parseDate(r.IssueDate),
		DueDate:           parseDate(r.DueDate),
		Status:            entities.InvoiceStatus(r.Status),
		PaymentMethod:     entities.PaymentMethod(r.PaymentMethod),
		ProviderPaymentID: r.ProviderPaymentID,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
	if r.PaidDate != nil {
		paid := parseDate(*r.PaidDate)
		inv.PaidDate = &paid
	}
	return inv
}
