package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotFound           = fmt.Errorf("invoice %w", ErrNotFound)
	ErrInvalidInvoiceID          = fmt.Errorf("%w: invoice id is required", ErrInvalidFormat)
	ErrInvalidPaymentMethod      = fmt.Errorf("%w: unknown payment method", ErrInvalidFormat)
	ErrInvalidAmount             = fmt.Errorf("%w: amount must not be negative", ErrInvalidFormat)
	ErrConsultationNotCompleted  = fmt.Errorf("%w: consultation is not completed", ErrConsultationNotFound)
	ErrAlreadyInvoiced           = errors.New("consultation already invoiced")
	ErrNotPending                = errors.New("only pending invoices can be paid")
	ErrExpired                   = errors.New("invoice is past its due date")
	ErrAlreadyPaid               = errors.New("invoice already paid")
	ErrAlreadyVoid               = errors.New("invoice already void")
	ErrPaymentGatewayUnavailable = errors.New("payment gateway not configured")
	ErrPaymentUnapplied          = errors.New("payment charged but not applied to the invoice")
)

const (
	DefaultInvoiceDueDays = 30
	VoidWarningOverdue    = "overdue"
)

// InvoiceConfig carries the deployment specific invoicing policy. TaxRate is
// used as given, zero included; config.Load resolves the default.
type InvoiceConfig struct {
	TaxRate decimal.Decimal
	DueDays int
	Payer   PayerPolicy
}

// RegisterPaymentCommand is the input of RegisterPayment. ProviderPayload is
// only read for the mercadopago method and is forwarded to the gateway after
// the amount and references are forced from the invoice.
type RegisterPaymentCommand struct {
	Method          string
	Notes           string
	ProviderPayload json.RawMessage
}

// VoidCheck is the pre-flight answer of CanVoid.
type VoidCheck struct {
	CanVoid bool   `json:"can_void"`
	Warning string `json:"warning,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// UnappliedPayment is the payload of invoice.payment_unapplied: a provider
// charge that went through while the invoice could no longer be paid.
type UnappliedPayment struct {
	InvoiceID         string          `json:"invoice_id"`
	ProviderPaymentID string          `json:"provider_payment_id"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
}

// IInvoiceUseCase is the invoice engine.
//
//   - ComputeTotals derives subtotal/tax/total from a base cost
//   - CreateFromConsultation issues the single invoice of a completed consultation
//   - RegisterPayment / VoidInvoice / CanVoid drive pending -> paid | void

type IInvoiceUseCase interface {
	ComputeTotals(base decimal.Decimal) (billing.Totals, error)
	CreateFromConsultation(ctx context.Context, consultationID string) (entities.Invoice, error)
	RegisterPayment(ctx context.Context, invoiceID string, cmd RegisterPaymentCommand) (entities.Invoice, error)
	VoidInvoice(ctx context.Context, invoiceID string, reason string) (entities.Invoice, error)
	CanVoid(ctx context.Context, invoiceID string) (VoidCheck, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context, status string) ([]entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo             interfaces.IInvoiceRepository
	consultationRepo interfaces.IConsultationRepository
	petRepo          interfaces.IPetRepository
	gateway          interfaces.IPaymentGateway
	tx               interfaces.ITransactor
	clock            interfaces.IClock
	publisher        interfaces.IEventPublisher
	cfg              InvoiceConfig
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	consultationRepo interfaces.IConsultationRepository,
	petRepo interfaces.IPetRepository,
	gateway interfaces.IPaymentGateway,
	tx interfaces.ITransactor,
	clock interfaces.IClock,
	publisher interfaces.IEventPublisher,
	cfg InvoiceConfig,
) *InvoiceUseCase {
	if cfg.DueDays <= 0 {
		cfg.DueDays = DefaultInvoiceDueDays
	}
	return &InvoiceUseCase{
		repo:             repo,
		consultationRepo: consultationRepo,
		petRepo:          petRepo,
		gateway:          gateway,
		tx:               tx,
		clock:            clock,
		publisher:        publisher,
		cfg:              cfg,
	}
}

func (u *InvoiceUseCase) ComputeTotals(base decimal.Decimal) (billing.Totals, error) {
	if base.IsNegative() {
		return billing.Totals{}, ErrInvalidAmount
	}
	return billing.ComputeTotals(base, u.cfg.TaxRate), nil
}

func (u *InvoiceUseCase) CreateFromConsultation(ctx context.Context, consultationID string) (entities.Invoice, error) {
	log.Printf("[invoice][usecase] create start consultation_id=%q", consultationID)
	consultationID = strings.TrimSpace(consultationID)
	if consultationID == "" {
		return entities.Invoice{}, ErrInvalidConsultationID
	}

	today := u.clock.Today()
	var created entities.Invoice
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.consultationRepo.GetByID(ctx, consultationID)
		if err != nil {
			return err
		}
		if c.ID == "" {
			return ErrConsultationNotFound
		}
		if c.Status != entities.ConsultationStatusCompleted {
			return ErrConsultationNotCompleted
		}

		existing, err := u.repo.GetByConsultationID(ctx, consultationID)
		if err != nil {
			return err
		}
		if existing.ID != "" {
			return ErrAlreadyInvoiced
		}

		pet, err := u.petRepo.GetByID(ctx, c.PetID)
		if err != nil {
			return err
		}
		if pet.ID == "" {
			log.Printf("[invoice][usecase] pet missing for consultation consultation_id=%s pet_id=%s", c.ID, c.PetID)
		}

		totals := billing.ComputeTotals(c.Cost, u.cfg.TaxRate)
		now := time.Now().UTC()
		inv := entities.Invoice{
			ID:             uuid.NewString(),
			Number:         newInvoiceNumber(now),
			ConsultationID: c.ID,
			ClientID:       pet.OwnerID,
			PetID:          c.PetID,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			TaxRate:        u.cfg.TaxRate,
			IssueDate:      today,
			DueDate:        today.AddDate(0, 0, u.cfg.DueDays),
			Status:         entities.InvoiceStatusPending,
			Notes:          "Invoice for consultation - " + c.Reason,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		created, err = u.repo.Create(ctx, inv)
		return err
	})
	if err != nil {
		log.Printf("[invoice][usecase] create failed consultation_id=%s err=%v", consultationID, err)
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] create success invoice_id=%s number=%s total=%s", created.ID, created.Number, created.Total.StringFixed(2))
	publish(ctx, u.publisher, interfaces.EventInvoiceCreated, created.ID, created)
	return created, nil
}

func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.Unix(), 1000+rand.IntN(9000))
}

// checkPayable applies the payment guards. A due date equal to today is
// still payable.
func checkPayable(inv entities.Invoice, today time.Time) error {
	if inv.Status != entities.InvoiceStatusPending {
		return ErrNotPending
	}
	if today.After(inv.DueDate) {
		return ErrExpired
	}
	return nil
}

func (u *InvoiceUseCase) RegisterPayment(ctx context.Context, invoiceID string, cmd RegisterPaymentCommand) (entities.Invoice, error) {
	log.Printf("[invoice][usecase] payment start invoice_id=%q method=%q", invoiceID, cmd.Method)
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	method, ok := entities.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(cmd.Method)))
	if !ok {
		return entities.Invoice{}, ErrInvalidPaymentMethod
	}

	today := u.clock.Today()
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := checkPayable(inv, today); err != nil {
		log.Printf("[invoice][usecase] payment rejected invoice_id=%s status=%s due=%s err=%v", invoiceID, inv.Status, inv.DueDate.Format(time.DateOnly), err)
		return entities.Invoice{}, err
	}

	providerPaymentID := ""
	if method == entities.PaymentMethodMercadoPago {
		providerPaymentID, err = u.charge(ctx, inv, cmd.ProviderPayload)
		if err != nil {
			return entities.Invoice{}, err
		}
	}

	var paid entities.Invoice
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.repo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrInvoiceNotFound
		}
		if err := checkPayable(current, today); err != nil {
			return err
		}

		next := current
		paidDate := today
		next.Status = entities.InvoiceStatusPaid
		next.PaymentMethod = method
		next.PaidDate = &paidDate
		next.ProviderPaymentID = providerPaymentID
		if notes := strings.TrimSpace(cmd.Notes); notes != "" {
			next.AppendNote("Payment registered: " + notes)
		}
		next.UpdatedAt = time.Now().UTC()
		paid, err = u.repo.Update(ctx, next, current.Status)
		return err
	})
	if err != nil {
		log.Printf("[invoice][usecase] payment failed invoice_id=%s provider_payment_id=%s err=%v", invoiceID, providerPaymentID, err)
		if providerPaymentID != "" {
			return entities.Invoice{}, u.recordUnappliedCharge(ctx, inv, providerPaymentID, err)
		}
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] payment success invoice_id=%s method=%s", invoiceID, method)
	publish(ctx, u.publisher, interfaces.EventInvoicePaid, paid.ID, paid)
	return paid, nil
}

// charge collects the invoice total through the payment gateway. The amount
// and references always come from the invoice, never from the caller.
func (u *InvoiceUseCase) charge(ctx context.Context, inv entities.Invoice, payload json.RawMessage) (string, error) {
	if u.gateway == nil {
		return "", ErrPaymentGatewayUnavailable
	}

	req := map[string]any{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidProviderPayload, err)
		}
	}
	req["transaction_amount"] = inv.Total.InexactFloat64()
	req["external_reference"] = inv.ID
	if _, ok := req["description"]; !ok {
		req["description"] = "Invoice " + inv.Number
	}
	if err := u.cfg.Payer.prepare(req); err != nil {
		return "", err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	providerID, providerStatus, _, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		log.Printf("[invoice][usecase] payment gateway failed invoice_id=%s err=%v", inv.ID, err)
		return "", classifyGatewayError(err)
	}
	log.Printf("[invoice][usecase] payment gateway success invoice_id=%s provider_payment_id=%s provider_status=%s", inv.ID, providerID, providerStatus)
	return providerID, nil
}

// recordUnappliedCharge leaves a reconcilable trace of a charge whose invoice
// update did not commit: a note on the invoice, whatever its status now, and an
// invoice.payment_unapplied event. The returned error wraps both
// ErrPaymentUnapplied and cause.
func (u *InvoiceUseCase) recordUnappliedCharge(ctx context.Context, inv entities.Invoice, providerPaymentID string, cause error) error {
	line := fmt.Sprintf("Unapplied mercadopago payment %s for %s: %v", providerPaymentID, inv.Total.StringFixed(2), cause)
	noteErr := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.repo.GetByID(ctx, inv.ID)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrInvoiceNotFound
		}
		next := current
		next.AppendNote(line)
		next.UpdatedAt = time.Now().UTC()
		_, err = u.repo.Update(ctx, next, current.Status)
		return err
	})
	if noteErr != nil {
		log.Printf("[invoice][usecase] unapplied payment note failed invoice_id=%s provider_payment_id=%s err=%v", inv.ID, providerPaymentID, noteErr)
	}

	log.Printf("[invoice][usecase] payment unapplied invoice_id=%s provider_payment_id=%s amount=%s", inv.ID, providerPaymentID, inv.Total.StringFixed(2))
	publish(ctx, u.publisher, interfaces.EventInvoicePaymentUnapplied, inv.ID, UnappliedPayment{
		InvoiceID:         inv.ID,
		ProviderPaymentID: providerPaymentID,
		Amount:            inv.Total,
		Reason:            cause.Error(),
	})
	return fmt.Errorf("%w: provider_payment_id=%s: %w", ErrPaymentUnapplied, providerPaymentID, cause)
}

func (u *InvoiceUseCase) VoidInvoice(ctx context.Context, invoiceID string, reason string) (entities.Invoice, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	var voided entities.Invoice
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.repo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrInvoiceNotFound
		}
		switch current.Status {
		case entities.InvoiceStatusPaid:
			return ErrAlreadyPaid
		case entities.InvoiceStatusVoid:
			return ErrAlreadyVoid
		}

		next := current
		next.Status = entities.InvoiceStatusVoid
		if reason = strings.TrimSpace(reason); reason != "" {
			next.AppendNote("Invoice voided - " + reason)
		} else {
			next.AppendNote("Invoice voided")
		}
		next.UpdatedAt = time.Now().UTC()
		voided, err = u.repo.Update(ctx, next, current.Status)
		return err
	})
	if err != nil {
		log.Printf("[invoice][usecase] void failed invoice_id=%s err=%v", invoiceID, err)
		return entities.Invoice{}, err
	}

	log.Printf("[invoice][usecase] void success invoice_id=%s", invoiceID)
	publish(ctx, u.publisher, interfaces.EventInvoiceVoided, voided.ID, voided)
	return voided, nil
}

func (u *InvoiceUseCase) CanVoid(ctx context.Context, invoiceID string) (VoidCheck, error) {
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return VoidCheck{}, err
	}

	switch inv.Status {
	case entities.InvoiceStatusPaid:
		return VoidCheck{CanVoid: false, Reason: ErrAlreadyPaid.Error()}, nil
	case entities.InvoiceStatusVoid:
		return VoidCheck{CanVoid: false, Reason: ErrAlreadyVoid.Error()}, nil
	}
	if inv.DueDate.Before(u.clock.Today()) {
		return VoidCheck{CanVoid: true, Warning: VoidWarningOverdue}, nil
	}
	return VoidCheck{CanVoid: true}, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, status string) ([]entities.Invoice, error) {
	s := entities.InvoiceStatus(strings.ToLower(strings.TrimSpace(status)))
	switch s {
	case "", entities.InvoiceStatusPending, entities.InvoiceStatusPaid, entities.InvoiceStatusVoid:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return u.repo.List(ctx, s)
}
