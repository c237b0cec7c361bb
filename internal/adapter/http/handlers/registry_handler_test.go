package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"vetclinic/internal/adapter/http/handlers/mocks"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func registryRouter(uc *mocks.MockIRegistryUseCase) *gin.Engine {
	h := NewRegistryHandler(uc)
	r := gin.New()
	r.POST("/v1/clients", h.CreateClient)
	r.GET("/v1/clients/:id", h.GetClient)
	r.POST("/v1/pets", h.CreatePet)
	r.GET("/v1/pets/:id", h.GetPet)
	return r
}

func TestRegistryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create client missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)

		w := serve(registryRouter(uc), http.MethodPost, "/v1/clients", `{"email":"a@b.com"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("create client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)
		uc.EXPECT().CreateClient(gomock.Any(), usecase.CreateClientCommand{Name: "Ana", Email: "ana@test.com"}).
			Return(entities.Client{ID: "cli-1", Name: "Ana", Email: "ana@test.com"}, nil)

		w := serve(registryRouter(uc), http.MethodPost, "/v1/clients", `{"name":"Ana","email":"ana@test.com"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["id"] != "cli-1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("create pet for unknown owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)
		uc.EXPECT().CreatePet(gomock.Any(), gomock.Any()).Return(entities.Pet{}, usecase.ErrClientNotFound)

		w := serve(registryRouter(uc), http.MethodPost, "/v1/pets", `{"owner_id":"cli-x","name":"Luna","species":"dog"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("create pet invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)
		uc.EXPECT().CreatePet(gomock.Any(), gomock.Any()).Return(entities.Pet{}, fmt.Errorf("%w: sex must be M or F", usecase.ErrInvalidPet))

		w := serve(registryRouter(uc), http.MethodPost, "/v1/pets", `{"owner_id":"cli-1","name":"Luna","species":"dog","sex":"X"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("get pet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)
		uc.EXPECT().GetPet(gomock.Any(), "pet-1").Return(entities.Pet{ID: "pet-1", OwnerID: "cli-1", Name: "Luna", Species: "dog"}, nil)

		w := serve(registryRouter(uc), http.MethodGet, "/v1/pets/pet-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["owner_id"] != "cli-1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("get client not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRegistryUseCase(ctrl)
		uc.EXPECT().GetClient(gomock.Any(), "cli-x").Return(entities.Client{}, usecase.ErrClientNotFound)

		w := serve(registryRouter(uc), http.MethodGet, "/v1/clients/cli-x", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", Ping)

	w := serve(r, http.MethodGet, "/v1/ping", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
