package interfaces

import (
	"context"

	"vetclinic/internal/domain/entities"
)

//go:generate mockgen -source=registry_repository_interface.go -destination=mocks/mock_registry_repository.go -package=mock_interfaces

// IPetRepository abstracts persistence for Pet.
type IPetRepository interface {
	Create(ctx context.Context, p entities.Pet) (entities.Pet, error)
	GetByID(ctx context.Context, id string) (entities.Pet, error)
}

// IClientRepository abstracts persistence for Client.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
}
