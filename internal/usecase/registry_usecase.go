package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrInvalidClientID = fmt.Errorf("%w: client id is required", ErrInvalidFormat)
	ErrInvalidClient   = errors.New("invalid client")
	ErrInvalidPet      = errors.New("invalid pet")
)

type CreateClientCommand struct {
	Name  string
	Email string
	Phone string
}

type CreatePetCommand struct {
	OwnerID  string
	Name     string
	Species  string
	Breed    string
	AgeYears int
	Sex      string
}

// IRegistryUseCase manages the reference data (clients and their pets) the
// scheduler and the invoice engine read.

type IRegistryUseCase interface {
	CreateClient(ctx context.Context, cmd CreateClientCommand) (entities.Client, error)
	GetClient(ctx context.Context, id string) (entities.Client, error)
	CreatePet(ctx context.Context, cmd CreatePetCommand) (entities.Pet, error)
	GetPet(ctx context.Context, id string) (entities.Pet, error)
}

type RegistryUseCase struct {
	clients interfaces.IClientRepository
	pets    interfaces.IPetRepository
}

var _ IRegistryUseCase = (*RegistryUseCase)(nil)

func NewRegistryUseCase(clients interfaces.IClientRepository, pets interfaces.IPetRepository) *RegistryUseCase {
	return &RegistryUseCase{clients: clients, pets: pets}
}

func (u *RegistryUseCase) CreateClient(ctx context.Context, cmd CreateClientCommand) (entities.Client, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Client{}, fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	c := entities.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(cmd.Email)),
		Phone:     strings.TrimSpace(cmd.Phone),
		CreatedAt: time.Now().UTC(),
	}
	return u.clients.Create(ctx, c)
}

func (u *RegistryUseCase) GetClient(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *RegistryUseCase) CreatePet(ctx context.Context, cmd CreatePetCommand) (entities.Pet, error) {
	name := strings.TrimSpace(cmd.Name)
	species := strings.TrimSpace(cmd.Species)
	switch {
	case name == "":
		return entities.Pet{}, fmt.Errorf("%w: name is required", ErrInvalidPet)
	case species == "":
		return entities.Pet{}, fmt.Errorf("%w: species is required", ErrInvalidPet)
	case cmd.AgeYears < 0:
		return entities.Pet{}, fmt.Errorf("%w: age must not be negative", ErrInvalidPet)
	}

	sex := strings.ToUpper(strings.TrimSpace(cmd.Sex))
	if sex != "" && sex != "M" && sex != "F" {
		return entities.Pet{}, fmt.Errorf("%w: sex must be M or F", ErrInvalidPet)
	}

	owner, err := u.GetClient(ctx, cmd.OwnerID)
	if err != nil {
		return entities.Pet{}, err
	}

	p := entities.Pet{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Name:      name,
		Species:   species,
		Breed:     strings.TrimSpace(cmd.Breed),
		AgeYears:  cmd.AgeYears,
		Sex:       sex,
		CreatedAt: time.Now().UTC(),
	}
	return u.pets.Create(ctx, p)
}

func (u *RegistryUseCase) GetPet(ctx context.Context, id string) (entities.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Pet{}, ErrInvalidPetID
	}
	p, err := u.pets.GetByID(ctx, id)
	if err != nil {
		return entities.Pet{}, err
	}
	if p.ID == "" {
		return entities.Pet{}, ErrPetNotFound
	}
	return p, nil
}
