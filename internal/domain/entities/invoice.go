package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle of an invoice.
//
// pending -> paid, pending -> void. Paid and void are final.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// PaymentMethod is how a client settled an invoice.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodDebitCard   PaymentMethod = "debit_card"
	PaymentMethodCreditCard  PaymentMethod = "credit_card"
	PaymentMethodTransfer    PaymentMethod = "transfer"
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
)

func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch m := PaymentMethod(raw); m {
	case PaymentMethodCash, PaymentMethodDebitCard, PaymentMethodCreditCard, PaymentMethodTransfer, PaymentMethodMercadoPago:
		return m, true
	}
	return "", false
}

// Invoice is issued from exactly one completed consultation.
//
// Storage model:
//   - PK: id
//   - unique consultation_id
//   - index on status
//
// Monetary representation:
//   - Subtotal, Tax and Total are derived once at creation with TaxRate and
//     never recalculated.
//   - Notes is an append-only audit trail.
type Invoice struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	ConsultationID    string          `json:"consultation_id"`
	ClientID          string          `json:"client_id"`
	PetID             string          `json:"pet_id"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	IssueDate         time.Time       `json:"issue_date"`
	DueDate           time.Time       `json:"due_date"`
	Status            InvoiceStatus   `json:"status"`
	PaymentMethod     PaymentMethod   `json:"payment_method,omitempty"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AppendNote adds line to the audit trail without touching earlier lines.
func (i *Invoice) AppendNote(line string) {
	if i.Notes == "" {
		i.Notes = line
		return
	}
	i.Notes = i.Notes + "\n" + line
}
