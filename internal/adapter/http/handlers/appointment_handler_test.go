package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"vetclinic/internal/adapter/http/handlers/mocks"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func appointmentRouter(uc *mocks.MockIAppointmentUseCase) *gin.Engine {
	h := NewAppointmentHandler(uc)
	r := gin.New()
	r.GET("/v1/slots", h.ListSlots)
	r.GET("/v1/slots/validate", h.ValidateSlot)
	r.POST("/v1/appointments", h.Book)
	r.GET("/v1/appointments", h.List)
	r.GET("/v1/appointments/:id", h.Get)
	r.PATCH("/v1/appointments/:id/status", h.UpdateStatus)
	r.GET("/v1/pets/:id/appointments", h.ListByPet)
	return r
}

func TestAppointmentHandler_Slots(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ListAvailableSlots(gomock.Any(), "2026-10-24").Return([]usecase.SlotAvailability{
			{Date: "2026-10-24", Slot: "09:00", IsAvailable: false},
			{Date: "2026-10-24", Slot: "10:00", IsAvailable: true},
			{Date: "2026-10-24", Slot: "11:00", IsAvailable: true},
		}, nil)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/slots?date=2026-10-24", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var slots []usecase.SlotAvailability
		_ = json.Unmarshal(w.Body.Bytes(), &slots)
		if len(slots) != 3 || slots[0].IsAvailable || !slots[1].IsAvailable {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("list invalid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ListAvailableSlots(gomock.Any(), "24/10/2026").Return(nil, fmt.Errorf("%w: bad date", usecase.ErrInvalidFormat))

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/slots?date=24/10/2026", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validate past date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ValidateSlot(gomock.Any(), "2026-10-01", "9am").Return(false, usecase.ErrPastDate)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/slots/validate?date=2026-10-01&slot=9am", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "PAST_DATE" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("validate success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ValidateSlot(gomock.Any(), "2026-10-24", "14:00").Return(false, nil)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/slots/validate?date=2026-10-24&slot=14:00", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["is_available"] != false || body["slot"] != "14:00" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestAppointmentHandler_Book(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)

		w := serve(appointmentRouter(uc), http.MethodPost, "/v1/appointments", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)

		w := serve(appointmentRouter(uc), http.MethodPost, "/v1/appointments", `{"pet_id":"pet-1","date":"2026-10-19"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["details"] == nil {
			t.Fatalf("expected validation details, got %v", body)
		}
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"slot taken", usecase.ErrSlotTaken, http.StatusConflict, "SLOT_TAKEN"},
		{"lost race", fmt.Errorf("commit: %w", usecase.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"not offered", usecase.ErrSlotNotOffered, http.StatusUnprocessableEntity, "SLOT_NOT_OFFERED"},
		{"pet missing", usecase.ErrPetNotFound, http.StatusNotFound, "PET_NOT_FOUND"},
		{"store down", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIAppointmentUseCase(ctrl)
			uc.EXPECT().Book(gomock.Any(), gomock.Any()).Return(entities.Appointment{}, tc.err)

			w := serve(appointmentRouter(uc), http.MethodPost, "/v1/appointments", `{"pet_id":"pet-1","date":"2026-10-19","slot":"09:00"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if body := decodeBody(t, w); body["code"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, body)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().Book(gomock.Any(), usecase.BookAppointmentCommand{PetID: "pet-1", Date: "2026-10-19", Slot: "09:00", Reason: "vaccine"}).
			Return(entities.Appointment{ID: "apt-1", PetID: "pet-1", Date: monday, Slot: "09:00", Status: entities.AppointmentStatusScheduled}, nil)

		w := serve(appointmentRouter(uc), http.MethodPost, "/v1/appointments", `{"pet_id":"pet-1","date":"2026-10-19","slot":"09:00","reason":"vaccine"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != "apt-1" || body["date"] != "2026-10-19" || body["status"] != "scheduled" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown status", fmt.Errorf("%w: %q", usecase.ErrInvalidStatus, "done"), http.StatusBadRequest},
		{"missing appointment", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"complete in future", usecase.ErrFutureDateNotCompletable, http.StatusUnprocessableEntity},
		{"cancel in past", usecase.ErrPastDateNotCancellable, http.StatusUnprocessableEntity},
		{"reactivate taken slot", usecase.ErrSlotTaken, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIAppointmentUseCase(ctrl)
			uc.EXPECT().Transition(gomock.Any(), "apt-1", "cancelled").Return(entities.Appointment{}, tc.err)

			w := serve(appointmentRouter(uc), http.MethodPatch, "/v1/appointments/apt-1/status", `{"status":"cancelled"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)

		w := serve(appointmentRouter(uc), http.MethodPatch, "/v1/appointments/apt-1/status", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().Transition(gomock.Any(), "apt-1", "confirmed").
			Return(entities.Appointment{ID: "apt-1", Date: monday, Slot: "10:00", Status: entities.AppointmentStatusConfirmed}, nil)

		w := serve(appointmentRouter(uc), http.MethodPatch, "/v1/appointments/apt-1/status", `{"status":"confirmed"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["status"] != "confirmed" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestAppointmentHandler_Queries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list requires date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/appointments", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list by date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ListByDate(gomock.Any(), "2026-10-19").Return([]entities.Appointment{{ID: "apt-1", Date: monday}, {ID: "apt-2", Date: monday}}, nil)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/appointments?date=2026-10-19", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &list)
		if len(list) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Appointment{}, usecase.ErrAppointmentNotFound)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/appointments/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list by pet empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		uc.EXPECT().ListByPetID(gomock.Any(), "pet-1").Return(nil, nil)

		w := serve(appointmentRouter(uc), http.MethodGet, "/v1/pets/pet-1/appointments", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %d %s", w.Code, w.Body.String())
		}
	})
}
