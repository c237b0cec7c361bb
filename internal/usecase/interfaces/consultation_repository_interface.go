package interfaces

import (
	"context"

	"vetclinic/internal/domain/entities"
)

//go:generate mockgen -source=consultation_repository_interface.go -destination=mocks/mock_consultation_repository.go -package=mock_interfaces

// IConsultationRepository abstracts persistence for Consultation.
type IConsultationRepository interface {
	Create(ctx context.Context, c entities.Consultation) (entities.Consultation, error)
	GetByID(ctx context.Context, id string) (entities.Consultation, error)
	ListByPetID(ctx context.Context, petID string) ([]entities.Consultation, error)
	ListByStatus(ctx context.Context, status entities.ConsultationStatus) ([]entities.Consultation, error)
	UpdateStatus(ctx context.Context, c entities.Consultation, from entities.ConsultationStatus) (entities.Consultation, error)
}
