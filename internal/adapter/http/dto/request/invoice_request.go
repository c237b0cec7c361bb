package request

import (
	"encoding/json"

	"vetclinic/internal/usecase"

	"github.com/shopspring/decimal"
)

type ComputeTotalsRequest struct {
	Base *decimal.Decimal `json:"base" binding:"required"`
}

type CreateInvoiceRequest struct {
	ConsultationID string `json:"consultation_id" binding:"required"`
}

// RegisterPaymentRequest settles an invoice.
//
// `mp_payload` is only read for the mercadopago method. It is the Mercado Pago
// payment request (token, payment_method_id, payer...) without the amount,
// which is always taken from the invoice.
type RegisterPaymentRequest struct {
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
	MPPayload     json.RawMessage `json:"mp_payload"`
}

func (r RegisterPaymentRequest) ToCommand() usecase.RegisterPaymentCommand {
	return usecase.RegisterPaymentCommand{
		Method:          r.PaymentMethod,
		Notes:           r.Notes,
		ProviderPayload: r.MPPayload,
	}
}

type VoidInvoiceRequest struct {
	Reason string `json:"reason"`
}
