package handlers

import (
	"errors"
	"net/http"

	request "vetclinic/internal/adapter/http/dto/request"
	response "vetclinic/internal/adapter/http/dto/response"
	"vetclinic/internal/usecase"
	"vetclinic/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRegistryPayload = pkg.NewDomainErrorSimple("INVALID_REGISTRY_INPUT", "Invalid client or pet payload", http.StatusBadRequest)

type RegistryHandler struct {
	usecase usecase.IRegistryUseCase
}

func NewRegistryHandler(uc usecase.IRegistryUseCase) *RegistryHandler {
	return &RegistryHandler{usecase: uc}
}

func (h *RegistryHandler) CreateClient(c *gin.Context) {
	var payload request.CreateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidRegistryPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateClient(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapRegistryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(created))
}

func (h *RegistryHandler) GetClient(c *gin.Context) {
	client, err := h.usecase.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapRegistryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *RegistryHandler) CreatePet(c *gin.Context) {
	var payload request.CreatePetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidRegistryPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreatePet(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapRegistryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromPet(created))
}

func (h *RegistryHandler) GetPet(c *gin.Context) {
	pet, err := h.usecase.GetPet(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapRegistryError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPet(pet))
}

func mapRegistryError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClient), errors.Is(err, usecase.ErrInvalidPet), errors.Is(err, usecase.ErrInvalidFormat):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("ALREADY_EXISTS", "Record already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPetNotFound):
		return pkg.NewDomainErrorSimple("PET_NOT_FOUND", "Pet not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
