package response

import (
	"time"

	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/domain/schedule"
)

// Amounts are rendered as fixed two decimal strings so clients never round
// them through a float.
type InvoiceResponse struct {
	ID                string    `json:"id"`
	Number            string    `json:"number"`
	ConsultationID    string    `json:"consultation_id"`
	ClientID          string    `json:"client_id"`
	PetID             string    `json:"pet_id"`
	Subtotal          string    `json:"subtotal"`
	Tax               string    `json:"tax"`
	Total             string    `json:"total"`
	TaxRate           string    `json:"tax_rate"`
	IssueDate         string    `json:"issue_date"`
	DueDate           string    `json:"due_date"`
	Status            string    `json:"status"`
	PaymentMethod     string    `json:"payment_method,omitempty"`
	PaidDate          *string   `json:"paid_date"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:                inv.ID,
		Number:            inv.Number,
		ConsultationID:    inv.ConsultationID,
		ClientID:          inv.ClientID,
		PetID:             inv.PetID,
		Subtotal:          inv.Subtotal.StringFixed(2),
		Tax:               inv.Tax.StringFixed(2),
		Total:             inv.Total.StringFixed(2),
		TaxRate:           inv.TaxRate.String(),
		IssueDate:         schedule.FormatDate(inv.IssueDate),
		DueDate:           schedule.FormatDate(inv.DueDate),
		Status:            string(inv.Status),
		PaymentMethod:     string(inv.PaymentMethod),
		ProviderPaymentID: inv.ProviderPaymentID,
		Notes:             inv.Notes,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	if inv.PaidDate != nil {
		paid := schedule.FormatDate(*inv.PaidDate)
		res.PaidDate = &paid
	}
	return res
}

func FromInvoices(in []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(in))
	for _, inv := range in {
		out = append(out, FromInvoice(inv))
	}
	return out
}

type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func FromTotals(t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}
