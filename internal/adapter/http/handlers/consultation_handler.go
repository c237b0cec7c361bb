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
	errInvalidConsultationPayload = pkg.NewDomainErrorSimple("INVALID_CONSULTATION_INPUT", "Invalid consultation payload", http.StatusBadRequest)
	errConsultationFilter         = pkg.NewDomainErrorSimple("INVALID_REQUEST", "use pending_invoice=true or /pets/{id}/consultations", http.StatusBadRequest)
)

type ConsultationHandler struct {
	usecase usecase.IConsultationUseCase
}

func NewConsultationHandler(uc usecase.IConsultationUseCase) *ConsultationHandler {
	return &ConsultationHandler{usecase: uc}
}

// Create godoc
// @Summary      Open a consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        body  body  request.CreateConsultationRequest  true  "Consultation"
// @Success      201  {object}  response.ConsultationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /consultations [post]
func (h *ConsultationHandler) Create(c *gin.Context) {
	var payload request.CreateConsultationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidConsultationPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[consultation][handler] create failed pet_id=%s err=%v", payload.PetID, err)
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromConsultation(created))
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	consultation, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromConsultation(consultation))
}

// List only serves the invoicing backlog. Per pet history lives under
// /pets/{id}/consultations.
func (h *ConsultationHandler) List(c *gin.Context) {
	if c.Query("pending_invoice") != "true" {
		c.JSON(errConsultationFilter.HTTPStatus, errConsultationFilter.ToHTTPError())
		return
	}

	pending, err := h.usecase.ListPendingInvoice(c.Request.Context())
	if err != nil {
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPendingInvoices(pending))
}

func (h *ConsultationHandler) ListByPet(c *gin.Context) {
	consultations, err := h.usecase.ListByPetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromConsultations(consultations))
}

func (h *ConsultationHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	completed, err := h.usecase.Complete(c.Request.Context(), id)
	if err != nil {
		log.Printf("[consultation][handler] complete failed consultation_id=%s err=%v", id, err)
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromConsultation(completed))
}

// Prescription godoc
// @Summary      Prescription of a completed consultation
// @Tags         consultations
// @Produce      json
// @Param        id   path  string  true  "Consultation ID"
// @Success      200  {object}  response.PrescriptionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /consultations/{id}/prescription [get]
func (h *ConsultationHandler) Prescription(c *gin.Context) {
	rx, err := h.usecase.Prescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapConsultationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPrescription(rx))
}

func mapConsultationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidConsultation):
		return pkg.NewDomainErrorSimple("INVALID_CONSULTATION", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFormat):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConsultationAlreadyCompleted):
		return pkg.NewDomainErrorSimple("CONSULTATION_ALREADY_COMPLETED", "Consultation already completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrFutureConsultation), errors.Is(err, usecase.ErrFutureDateNotCompletable):
		return pkg.NewDomainErrorSimple("FUTURE_DATE_NOT_COMPLETABLE", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPrescriptionNotCompleted):
		return pkg.NewDomainErrorSimple("CONSULTATION_NOT_COMPLETED", "Prescriptions are only issued for completed consultations", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrNothingPrescribed):
		return pkg.NewDomainErrorSimple("NOTHING_PRESCRIBED", "Consultation has no treatment or medications", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", "Consultation was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrPetNotFound):
		return pkg.NewDomainErrorSimple("PET_NOT_FOUND", "Pet not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Appointment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConsultationNotFound):
		return pkg.NewDomainErrorSimple("CONSULTATION_NOT_FOUND", "Consultation not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
