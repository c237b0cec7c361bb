package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"vetclinic/internal/adapter/http/handlers/mocks"
	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func consultationRouter(uc *mocks.MockIConsultationUseCase) *gin.Engine {
	h := NewConsultationHandler(uc)
	r := gin.New()
	r.POST("/v1/consultations", h.Create)
	r.GET("/v1/consultations", h.List)
	r.GET("/v1/consultations/:id", h.Get)
	r.PATCH("/v1/consultations/:id/complete", h.Complete)
	r.GET("/v1/consultations/:id/prescription", h.Prescription)
	r.GET("/v1/pets/:id/consultations", h.ListByPet)
	return r
}

func TestConsultationHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing cost", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)

		w := serve(consultationRouter(uc), http.MethodPost, "/v1/consultations", `{"pet_id":"pet-1","staff_id":"vet-1","reason":"checkup"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Consultation{}, fmt.Errorf("%w: weight must be between 0.1 and 200 kg", usecase.ErrInvalidConsultation))

		w := serve(consultationRouter(uc), http.MethodPost, "/v1/consultations", `{"pet_id":"pet-1","staff_id":"vet-1","reason":"checkup","cost":10,"weight_kg":500}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["message"] != "invalid consultation: weight must be between 0.1 and 200 kg" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("pet missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Consultation{}, usecase.ErrPetNotFound)

		w := serve(consultationRouter(uc), http.MethodPost, "/v1/consultations", `{"pet_id":"pet-x","staff_id":"vet-1","reason":"checkup","cost":"10"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreateConsultationCommand) (entities.Consultation, error) {
			if !cmd.Cost.Equal(decimal.RequireFromString("45.5")) {
				t.Fatalf("expected cost 45.5, got %s", cmd.Cost)
			}
			return entities.Consultation{ID: "con-1", PetID: cmd.PetID, Date: monday, Cost: cmd.Cost, Status: entities.ConsultationStatusOpen}, nil
		})

		w := serve(consultationRouter(uc), http.MethodPost, "/v1/consultations", `{"pet_id":"pet-1","staff_id":"vet-1","reason":"checkup","cost":"45.50"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["id"] != "con-1" || body["cost"] != "45.50" || body["status"] != "open" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestConsultationHandler_Complete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"already completed", usecase.ErrConsultationAlreadyCompleted, http.StatusConflict},
		{"future dated", usecase.ErrFutureConsultation, http.StatusUnprocessableEntity},
		{"linked appointment in future", usecase.ErrFutureDateNotCompletable, http.StatusUnprocessableEntity},
		{"missing", usecase.ErrConsultationNotFound, http.StatusNotFound},
		{"concurrent update", usecase.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIConsultationUseCase(ctrl)
			uc.EXPECT().Complete(gomock.Any(), "con-1").Return(entities.Consultation{}, tc.err)

			w := serve(consultationRouter(uc), http.MethodPatch, "/v1/consultations/con-1/complete", "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().Complete(gomock.Any(), "con-1").Return(entities.Consultation{ID: "con-1", Date: monday, Status: entities.ConsultationStatusCompleted}, nil)

		w := serve(consultationRouter(uc), http.MethodPatch, "/v1/consultations/con-1/complete", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["status"] != "completed" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestConsultationHandler_Queries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list without filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)

		w := serve(consultationRouter(uc), http.MethodGet, "/v1/consultations", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("pending invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		cost := decimal.RequireFromString("45.50")
		uc.EXPECT().ListPendingInvoice(gomock.Any()).Return([]usecase.PendingInvoice{{
			Consultation: entities.Consultation{ID: "con-1", Date: monday, Cost: cost, Status: entities.ConsultationStatusCompleted},
			Totals:       billing.ComputeTotals(cost, billing.DefaultTaxRate),
		}}, nil)

		w := serve(consultationRouter(uc), http.MethodGet, "/v1/consultations?pending_invoice=true", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &list)
		if len(list) != 1 || list[0]["id"] != "con-1" || list[0]["tax"] != "5.92" || list[0]["total"] != "51.42" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "con-1").Return(entities.Consultation{ID: "con-1", Date: monday}, nil)

		w := serve(consultationRouter(uc), http.MethodGet, "/v1/consultations/con-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("list by pet invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().ListByPetID(gomock.Any(), " ").Return(nil, usecase.ErrInvalidPetID)

		w := serve(consultationRouter(uc), http.MethodGet, "/v1/pets/%20/consultations", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestConsultationHandler_Prescription(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"open consultation", usecase.ErrPrescriptionNotCompleted, http.StatusUnprocessableEntity, "CONSULTATION_NOT_COMPLETED"},
		{"nothing prescribed", usecase.ErrNothingPrescribed, http.StatusUnprocessableEntity, "NOTHING_PRESCRIBED"},
		{"missing", usecase.ErrConsultationNotFound, http.StatusNotFound, "CONSULTATION_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIConsultationUseCase(ctrl)
			uc.EXPECT().Prescription(gomock.Any(), "c-1").Return(usecase.Prescription{}, tc.err)

			w := serve(consultationRouter(uc), http.MethodGet, "/v1/consultations/c-1/prescription", "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if body := decodeBody(t, w); body["code"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, body["code"])
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConsultationUseCase(ctrl)
		uc.EXPECT().Prescription(gomock.Any(), "c-1").Return(usecase.Prescription{
			ConsultationID: "c-1",
			IssueDate:      monday,
			PetName:        "Luna",
			OwnerName:      "Ana",
			Medications:    "otomax 5 drops",
			Instructions:   usecase.PrescriptionInstructions,
		}, nil)

		w := serve(consultationRouter(uc), http.MethodGet, "/v1/consultations/c-1/prescription", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["issue_date"] != "2026-10-19" || body["pet_name"] != "Luna" || body["medications"] != "otomax 5 drops" {
			t.Fatalf("unexpected body: %v", body)
		}
		if _, ok := body["treatment"]; ok {
			t.Fatalf("expected empty treatment to be omitted, got %v", body)
		}
	})
}
