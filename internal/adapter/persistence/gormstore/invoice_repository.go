package gormstore

import (
	"context"
	"errors"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	rec := toInvoiceRecord(inv)
	if err := conn(ctx, r.db).Create(&rec).Error; err != nil {
		return entities.Invoice{}, translate(err)
	}
	return rec.entity(), nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *InvoiceRepository) GetByConsultationID(ctx context.Context, consultationID string) (entities.Invoice, error) {
	return r.first(conn(ctx, r.db).Where("consultation_id = ?", consultationID))
}

func (r *InvoiceRepository) InvoicedConsultationIDs(ctx context.Context, consultationIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(consultationIDs))
	if len(consultationIDs) == 0 {
		return out, nil
	}
	var invoiced []string
	err := conn(ctx, r.db).
		Model(&invoiceRecord{}).
		Where("consultation_id IN ?", consultationIDs).
		Pluck("consultation_id", &invoiced).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, id := range invoiced {
		out[id] = true
	}
	return out, nil
}

func (r *InvoiceRepository) first(q *gorm.DB) (entities.Invoice, error) {
	var rec invoiceRecord
	err := q.First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Invoice{}, nil
	}
	if err != nil {
		return entities.Invoice{}, err
	}
	return rec.entity(), nil
}

func (r *InvoiceRepository) List(ctx context.Context, status entities.InvoiceStatus) ([]entities.Invoice, error) {
	q := conn(ctx, r.db)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var recs []invoiceRecord
	if err := q.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv entities.Invoice, from entities.InvoiceStatus) (entities.Invoice, error) {
	rec := toInvoiceRecord(inv)
	res := conn(ctx, r.db).
		Model(&invoiceRecord{}).
		Where("id = ? AND status = ?", inv.ID, string(from)).
		Updates(map[string]any{
			"status":              rec.Status,
			"payment_method":      rec.PaymentMethod,
			"paid_date":           rec.PaidDate,
			"provider_payment_id": rec.ProviderPaymentID,
			"notes":               rec.Notes,
			"updated_at":          rec.UpdatedAt,
		})
	if res.Error != nil {
		return entities.Invoice{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.Invoice{}, staleUpdate("invoice", inv.ID)
	}
	return inv, nil
}
