package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "vetclinic/internal/adapter/http/dto/request"
	response "vetclinic/internal/adapter/http/dto/response"
	"vetclinic/internal/usecase"
	"vetclinic/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
	errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
)

// InvoiceHandler handles HTTP requests for the invoice engine.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// ComputeTotals godoc
// @Summary      Preview subtotal, tax and total for a base amount
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  request.ComputeTotalsRequest  true  "Base amount"
// @Success      200  {object}  response.TotalsResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /invoice-totals [post]
func (h *InvoiceHandler) ComputeTotals(c *gin.Context) {
	var payload request.ComputeTotalsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidInvoicePayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	totals, err := h.usecase.ComputeTotals(*payload.Base)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTotals(totals))
}

// Create godoc
// @Summary      Issue the invoice of a completed consultation
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  request.CreateInvoiceRequest  true  "Consultation"
// @Success      201  {object}  response.InvoiceResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidInvoicePayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateFromConsultation(c.Request.Context(), payload.ConsultationID)
	if err != nil {
		log.Printf("[invoice][handler] create failed consultation_id=%s err=%v", payload.ConsultationID, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(created))
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.usecase.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// RegisterPayment godoc
// @Summary      Register the payment of a pending invoice
// @Description  For payment_method=mercadopago the invoice total is charged through Mercado Pago using mp_payload.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "Invoice ID"
// @Param        body  body  request.RegisterPaymentRequest  true  "Payment"
// @Success      200  {object}  response.InvoiceResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /invoices/{id}/payments [post]
func (h *InvoiceHandler) RegisterPayment(c *gin.Context) {
	id := c.Param("id")
	var payload request.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidPaymentPayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	paid, err := h.usecase.RegisterPayment(c.Request.Context(), id, payload.ToCommand())
	if err != nil {
		log.Printf("[invoice][handler] payment failed invoice_id=%s method=%s err=%v", id, payload.PaymentMethod, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(paid))
}

// Void accepts an empty body; the reason is optional.
func (h *InvoiceHandler) Void(c *gin.Context) {
	id := c.Param("id")
	var payload request.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		appErr := errInvalidInvoicePayload.WithDetails(err.Error())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	voided, err := h.usecase.VoidInvoice(c.Request.Context(), id, payload.Reason)
	if err != nil {
		log.Printf("[invoice][handler] void failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(voided))
}

func (h *InvoiceHandler) CanVoid(c *gin.Context) {
	check, err := h.usecase.CanVoid(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, check)
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPaymentUnapplied):
		return pkg.NewDomainErrorSimple("PAYMENT_REQUIRES_RECONCILIATION", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Unknown payment method", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid Mercado Pago payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrInvalidFormat):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrAlreadyInvoiced):
		return pkg.NewDomainErrorSimple("ALREADY_INVOICED", "Consultation already invoiced", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotPending):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_PENDING", "Only pending invoices can be paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyVoid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_VOID", "Invoice already void", http.StatusConflict)
	case errors.Is(err, usecase.ErrExpired):
		return pkg.NewDomainErrorSimple("INVOICE_EXPIRED", "Invoice is past its due date", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", "Invoice was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrConsultationNotCompleted):
		return pkg.NewDomainErrorSimple("CONSULTATION_NOT_FOUND", "Completed consultation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConsultationNotFound):
		return pkg.NewDomainErrorSimple("CONSULTATION_NOT_FOUND", "Consultation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
