package gormstore

import (
	"context"
	"errors"
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

var _ interfaces.IAppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	rec := toAppointmentRecord(a)
	if err := conn(ctx, r.db).Create(&rec).Error; err != nil {
		return entities.Appointment{}, translate(err)
	}
	return rec.entity(), nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	var rec appointmentRecord
	err := conn(ctx, r.db).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Appointment{}, nil
	}
	if err != nil {
		return entities.Appointment{}, err
	}
	return rec.entity(), nil
}

func (r *AppointmentRepository) ListByDate(ctx context.Context, date time.Time, statuses ...entities.AppointmentStatus) ([]entities.Appointment, error) {
	q := conn(ctx, r.db).Where("date = ?", formatDate(date))
	if len(statuses) > 0 {
		raw := make([]string, 0, len(statuses))
		for _, s := range statuses {
			raw = append(raw, string(s))
		}
		q = q.Where("status IN ?", raw)
	}
	return r.find(q.Order("slot ASC").Order("created_at ASC"))
}

func (r *AppointmentRepository) ListByPetID(ctx context.Context, petID string) ([]entities.Appointment, error) {
	return r.find(conn(ctx, r.db).Where("pet_id = ?", petID).Order("date ASC").Order("slot ASC"))
}

func (r *AppointmentRepository) find(q *gorm.DB) ([]entities.Appointment, error) {
	var recs []appointmentRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Appointment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a entities.Appointment, from entities.AppointmentStatus) (entities.Appointment, error) {
	res := conn(ctx, r.db).
		Model(&appointmentRecord{}).
		Where("id = ? AND status = ?", a.ID, string(from)).
		Updates(map[string]any{
			"status":     string(a.Status),
			"updated_at": a.UpdatedAt,
		})
	if res.Error != nil {
		return entities.Appointment{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.Appointment{}, staleUpdate("appointment", a.ID)
	}
	return a, nil
}
