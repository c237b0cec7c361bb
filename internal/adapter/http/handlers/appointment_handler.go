package handlers

import (
	"errors"
	"log"
	"net/http"

	request "vetclinic/internal/adapter/http/dto/request"
	response "vetclinic/internal/adapter/http/dto/response"
	"vetclinic/internal/usecase"
	"vetclinic/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidAppointmentPayload = pkg.NewDomainErrorSimple("INVALID_APPOINTMENT_INPUT", "Invalid appointment payload", http.StatusBadRequest)
	errMissingDate               = pkg.NewDomainErrorSimple("INVALID_REQUEST", "date query parameter is required", http.StatusBadRequest)
)

// AppointmentHandler exposes the slot timetable and the appointment
// lifecycle.
type AppointmentHandler struct {
	usecase usecase.IAppointmentUseCase
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc}
}

// ListSlots godoc
// @Summary      List the slots of a date
// @Tags         slots
// @Produce      json
// @Param        date  query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {array}   usecase.SlotAvailability
// @Failure      400  {object}  pkg.HTTPError
// @Router       /slots [get]
func (h *AppointmentHandler) ListSlots(c *gin.Context) {
	slots, err := h.usecase.ListAvailableSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, slots)
}

// ValidateSlot godoc
// @Summary      Check whether a slot can be booked
// @Tags         slots
// @Produce      json
// @Param        date  query  string  true  "Date (YYYY-MM-DD)"
// @Param        slot  query  string  true  "Slot (HH:MM)"
// @Success      200  {object}  response.SlotValidationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /slots/validate [get]
func (h *AppointmentHandler) ValidateSlot(c *gin.Context) {
	date, slot := c.Query("date"), c.Query("slot")
	ok, err := h.usecase.ValidateSlot(c.Request.Context(), date, slot)
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SlotValidationResponse{Date: date, Slot: slot, IsAvailable: ok})
}

// Book godoc
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body  request.BookAppointmentRequest  true  "Appointment"
// @Success      201  {object}  response.AppointmentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	var payload request.BookAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidAppointmentPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.Book(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[appointment][handler] book failed pet_id=%s date=%s slot=%s err=%v", payload.PetID, payload.Date, payload.Slot, err)
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(created))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(errMissingDate.HTTPStatus, errMissingDate.ToHTTPError())
		return
	}

	appointments, err := h.usecase.ListByDate(c.Request.Context(), date)
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(appointments))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

func (h *AppointmentHandler) ListByPet(c *gin.Context) {
	appointments, err := h.usecase.ListByPetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(appointments))
}

// UpdateStatus godoc
// @Summary      Move an appointment to another status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id    path  string                                  true  "Appointment ID"
// @Param        body  body  request.UpdateAppointmentStatusRequest  true  "Target status"
// @Success      200  {object}  response.AppointmentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidAppointmentPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	id := c.Param("id")
	updated, err := h.usecase.Transition(c.Request.Context(), id, payload.Status)
	if err != nil {
		log.Printf("[appointment][handler] status failed appointment_id=%s status=%s err=%v", id, payload.Status, err)
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(updated))
}

func mapAppointmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Unknown appointment status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFormat):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPastDate):
		return pkg.NewDomainErrorSimple("PAST_DATE", "Date is in the past", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrSlotNotOffered):
		return pkg.NewDomainErrorSimple("SLOT_NOT_OFFERED", "Slot is not offered on that date", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrFutureDateNotCompletable):
		return pkg.NewDomainErrorSimple("FUTURE_DATE_NOT_COMPLETABLE", "Cannot complete an appointment scheduled in the future", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPastDateNotCancellable):
		return pkg.NewDomainErrorSimple("PAST_DATE_NOT_CANCELLABLE", "Cannot cancel an appointment in the past", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrSlotTaken):
		return pkg.NewDomainErrorSimple("SLOT_TAKEN", "Slot already booked", http.StatusConflict)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", "Appointment was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrPetNotFound):
		return pkg.NewDomainErrorSimple("PET_NOT_FOUND", "Pet not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Appointment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
