package gormstore

import (
	"context"
	"errors"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type ConsultationRepository struct {
	db *gorm.DB
}

var _ interfaces.IConsultationRepository = (*ConsultationRepository)(nil)

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, c entities.Consultation) (entities.Consultation, error) {
	rec := toConsultationRecord(c)
	if err := conn(ctx, r.db).Create(&rec).Error; err != nil {
		return entities.Consultation{}, translate(err)
	}
	return rec.entity(), nil
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (entities.Consultation, error) {
	var rec consultationRecord
	err := conn(ctx, r.db).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Consultation{}, nil
	}
	if err != nil {
		return entities.Consultation{}, err
	}
	return rec.entity(), nil
}

func (r *ConsultationRepository) ListByPetID(ctx context.Context, petID string) ([]entities.Consultation, error) {
	return r.find(conn(ctx, r.db).Where("pet_id = ?", petID))
}

func (r *ConsultationRepository) ListByStatus(ctx context.Context, status entities.ConsultationStatus) ([]entities.Consultation, error) {
	return r.find(conn(ctx, r.db).Where("status = ?", string(status)))
}

func (r *ConsultationRepository) find(q *gorm.DB) ([]entities.Consultation, error) {
	var recs []consultationRecord
	if err := q.Order("date DESC").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Consultation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *ConsultationRepository) UpdateStatus(ctx context.Context, c entities.Consultation, from entities.ConsultationStatus) (entities.Consultation, error) {
	res := conn(ctx, r.db).
		Model(&consultationRecord{}).
		Where("id = ? AND status = ?", c.ID, string(from)).
		Updates(map[string]any{
			"status":     string(c.Status),
			"updated_at": c.UpdatedAt,
		})
	if res.Error != nil {
		return entities.Consultation{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.Consultation{}, staleUpdate("consultation", c.ID)
	}
	return c, nil
}
