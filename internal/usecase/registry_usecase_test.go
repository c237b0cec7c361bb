package usecase

import (
	"context"
	"errors"
	"testing"

	"vetclinic/internal/domain/entities"
	mock_interfaces "vetclinic/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestRegistryUseCase_CreateClient(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		uc := NewRegistryUseCase(nil, nil)
		_, err := uc.CreateClient(context.Background(), CreateClientCommand{Name: "  "})
		if !errors.Is(err, ErrInvalidClient) {
			t.Fatalf("expected ErrInvalidClient, got %v", err)
		}
	})

	t.Run("success normalizes email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewRegistryUseCase(clients, nil)

		clients.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Client{})).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				if c.ID == "" || c.Name != "Ana" || c.Email != "ana@example.com" {
					t.Fatalf("unexpected client: %+v", c)
				}
				return c, nil
			},
		)

		if _, err := uc.CreateClient(context.Background(), CreateClientCommand{Name: " Ana ", Email: " ANA@example.com "}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRegistryUseCase_CreatePet(t *testing.T) {
	valid := CreatePetCommand{OwnerID: "client-1", Name: "Rex", Species: "dog", AgeYears: 3, Sex: "m"}

	cases := []struct {
		name   string
		mutate func(c *CreatePetCommand)
	}{
		{name: "missing name", mutate: func(c *CreatePetCommand) { c.Name = "" }},
		{name: "missing species", mutate: func(c *CreatePetCommand) { c.Species = "" }},
		{name: "negative age", mutate: func(c *CreatePetCommand) { c.AgeYears = -1 }},
		{name: "unknown sex", mutate: func(c *CreatePetCommand) { c.Sex = "x" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewRegistryUseCase(nil, nil)
			cmd := valid
			tc.mutate(&cmd)
			_, err := uc.CreatePet(context.Background(), cmd)
			if !errors.Is(err, ErrInvalidPet) {
				t.Fatalf("expected ErrInvalidPet, got %v", err)
			}
		})
	}

	t.Run("owner not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewRegistryUseCase(clients, nil)
		clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(entities.Client{}, nil)

		_, err := uc.CreatePet(context.Background(), valid)
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		pets := mock_interfaces.NewMockIPetRepository(ctrl)
		uc := NewRegistryUseCase(clients, pets)
		clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(entities.Client{ID: "client-1"}, nil)
		pets.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Pet{})).DoAndReturn(
			func(_ context.Context, p entities.Pet) (entities.Pet, error) {
				if p.ID == "" || p.OwnerID != "client-1" || p.Sex != "M" {
					t.Fatalf("unexpected pet: %+v", p)
				}
				return p, nil
			},
		)

		if _, err := uc.CreatePet(context.Background(), valid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRegistryUseCase_GetPet(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		uc := NewRegistryUseCase(nil, nil)
		if _, err := uc.GetPet(context.Background(), ""); !errors.Is(err, ErrInvalidPetID) {
			t.Fatalf("expected ErrInvalidPetID, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pets := mock_interfaces.NewMockIPetRepository(ctrl)
		uc := NewRegistryUseCase(nil, pets)
		pets.EXPECT().GetByID(gomock.Any(), "pet-1").Return(entities.Pet{}, errors.New("db"))

		_, err := uc.GetPet(context.Background(), "pet-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
