package gormstore

import (
	"context"
	"errors"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

var _ interfaces.IPetRepository = (*PetRepository)(nil)

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p entities.Pet) (entities.Pet, error) {
	rec := petRecord{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		AgeYears:  p.AgeYears,
		Sex:       p.Sex,
		CreatedAt: p.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(&rec).Error; err != nil {
		return entities.Pet{}, translate(err)
	}
	return p, nil
}

func (r *PetRepository) GetByID(ctx context.Context, id string) (entities.Pet, error) {
	var rec petRecord
	err := conn(ctx, r.db).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Pet{}, nil
	}
	if err != nil {
		return entities.Pet{}, err
	}
	return entities.Pet{
		ID:        rec.ID,
		OwnerID:   rec.OwnerID,
		Name:      rec.Name,
		Species:   rec.Species,
		Breed:     rec.Breed,
		AgeYears:  rec.AgeYears,
		Sex:       rec.Sex,
		CreatedAt: rec.CreatedAt.UTC(),
	}, nil
}

type ClientRepository struct {
	db *gorm.DB
}

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	rec := clientRecord{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, CreatedAt: c.CreatedAt}
	if err := conn(ctx, r.db).Create(&rec).Error; err != nil {
		return entities.Client{}, translate(err)
	}
	return c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	var rec clientRecord
	err := conn(ctx, r.db).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Client{}, nil
	}
	if err != nil {
		return entities.Client{}, err
	}
	return entities.Client{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt.UTC(),
	}, nil
}
