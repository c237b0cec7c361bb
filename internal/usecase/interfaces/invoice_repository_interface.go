package interfaces

import (
	"context"

	"vetclinic/internal/domain/entities"
)

//go:generate mockgen -source=invoice_repository_interface.go -destination=mocks/mock_invoice_repository.go -package=mock_interfaces

// IInvoiceRepository abstracts persistence for Invoice.
//
// The store keeps consultation_id unique across invoices; a second invoice
// for the same consultation is rejected with ErrConflict.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByConsultationID(ctx context.Context, consultationID string) (entities.Invoice, error)
	// InvoicedConsultationIDs reports which of consultationIDs already have an
	// invoice, whatever its status, in a single round trip where the store allows.
	InvoicedConsultationIDs(ctx context.Context, consultationIDs []string) (map[string]bool, error)
	// List returns every invoice when status is empty.
	List(ctx context.Context, status entities.InvoiceStatus) ([]entities.Invoice, error)
	// Update persists the mutable fields (status, payment, notes) only if the
	// stored status still equals from.
	Update(ctx context.Context, inv entities.Invoice, from entities.InvoiceStatus) (entities.Invoice, error)
}
