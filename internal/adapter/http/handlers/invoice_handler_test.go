package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"vetclinic/internal/adapter/http/handlers/mocks"
	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func invoiceRouter(uc *mocks.MockIInvoiceUseCase) *gin.Engine {
	h := NewInvoiceHandler(uc)
	r := gin.New()
	r.POST("/v1/invoice-totals", h.ComputeTotals)
	r.POST("/v1/invoices", h.Create)
	r.GET("/v1/invoices", h.List)
	r.GET("/v1/invoices/:id", h.Get)
	r.POST("/v1/invoices/:id/payments", h.RegisterPayment)
	r.PATCH("/v1/invoices/:id/void", h.Void)
	r.GET("/v1/invoices/:id/void-check", h.CanVoid)
	return r
}

func pendingInvoice() entities.Invoice {
	return entities.Invoice{
		ID:             "inv-1",
		Number:         "INV-1792368000-4821",
		ConsultationID: "con-1",
		Subtotal:       decimal.RequireFromString("45.50"),
		Tax:            decimal.RequireFromString("5.92"),
		Total:          decimal.RequireFromString("51.42"),
		TaxRate:        billing.DefaultTaxRate,
		IssueDate:      monday,
		DueDate:        monday.AddDate(0, 0, 30),
		Status:         entities.InvoiceStatusPending,
	}
}

func TestInvoiceHandler_ComputeTotals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing base", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoice-totals", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("negative base", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().ComputeTotals(gomock.Any()).Return(billing.Totals{}, usecase.ErrInvalidAmount)

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoice-totals", `{"base":-1}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().ComputeTotals(gomock.Any()).DoAndReturn(func(base decimal.Decimal) (billing.Totals, error) {
			return billing.ComputeTotals(base, billing.DefaultTaxRate), nil
		})

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoice-totals", `{"base":"10.005"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["tax"] != "1.30" || body["total"] != "11.31" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestInvoiceHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already invoiced", usecase.ErrAlreadyInvoiced, http.StatusConflict, "ALREADY_INVOICED"},
		{"not completed", usecase.ErrConsultationNotCompleted, http.StatusNotFound, "CONSULTATION_NOT_FOUND"},
		{"missing", usecase.ErrConsultationNotFound, http.StatusNotFound, "CONSULTATION_NOT_FOUND"},
		{"lost race", fmt.Errorf("transaction cancelled: %w", usecase.ErrConflict), http.StatusConflict, "CONFLICT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIInvoiceUseCase(ctrl)
			uc.EXPECT().CreateFromConsultation(gomock.Any(), "con-1").Return(entities.Invoice{}, tc.err)

			w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices", `{"consultation_id":"con-1"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if body := decodeBody(t, w); body["code"] != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, body)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().CreateFromConsultation(gomock.Any(), "con-1").Return(pendingInvoice(), nil)

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices", `{"consultation_id":"con-1"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["total"] != "51.42" || body["due_date"] != "2026-11-18" || body["status"] != "pending" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestInvoiceHandler_RegisterPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices/inv-1/payments", `{"notes":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"expired", usecase.ErrExpired, http.StatusUnprocessableEntity},
		{"not pending", usecase.ErrNotPending, http.StatusConflict},
		{"unknown method", usecase.ErrInvalidPaymentMethod, http.StatusBadRequest},
		{"provider customer", usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest},
		{"provider unauthorized", usecase.ErrPaymentGatewayUnauthorized, http.StatusBadGateway},
		{"gateway unavailable", usecase.ErrPaymentGatewayUnavailable, http.StatusServiceUnavailable},
		{"missing invoice", usecase.ErrInvoiceNotFound, http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIInvoiceUseCase(ctrl)
			uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Invoice{}, tc.err)

			w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices/inv-1/payments", `{"payment_method":"cash"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}

	t.Run("charged but not applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		err := fmt.Errorf("%w: provider_payment_id=mp-77: %w", usecase.ErrPaymentUnapplied, usecase.ErrNotPending)
		uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Invoice{}, err)

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices/inv-1/payments", `{"payment_method":"mercadopago"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "PAYMENT_REQUIRES_RECONCILIATION" || !strings.Contains(body["message"].(string), "mp-77") {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("mercadopago payload forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		paid := pendingInvoice()
		paid.Status = entities.InvoiceStatusPaid
		paid.PaymentMethod = entities.PaymentMethodMercadoPago
		paid.PaidDate = &monday
		paid.ProviderPaymentID = "123456"

		uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", gomock.Any()).DoAndReturn(func(_ any, _ string, cmd usecase.RegisterPaymentCommand) (entities.Invoice, error) {
			var payload map[string]any
			if err := json.Unmarshal(cmd.ProviderPayload, &payload); err != nil || payload["payment_method_id"] != "pix" {
				t.Fatalf("unexpected provider payload %s", cmd.ProviderPayload)
			}
			if cmd.Method != "mercadopago" {
				t.Fatalf("unexpected method %q", cmd.Method)
			}
			return paid, nil
		})

		w := serve(invoiceRouter(uc), http.MethodPost, "/v1/invoices/inv-1/payments", `{"payment_method":"mercadopago","mp_payload":{"payment_method_id":"pix","payer":{"email":"owner@test.com"}}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "paid" || body["paid_date"] != "2026-10-19" || body["provider_payment_id"] != "123456" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestInvoiceHandler_Void(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		voided := pendingInvoice()
		voided.Status = entities.InvoiceStatusVoid
		uc.EXPECT().VoidInvoice(gomock.Any(), "inv-1", "").Return(voided, nil)

		w := serve(invoiceRouter(uc), http.MethodPatch, "/v1/invoices/inv-1/void", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().VoidInvoice(gomock.Any(), "inv-1", "duplicate").Return(pendingInvoice(), nil)

		w := serve(invoiceRouter(uc), http.MethodPatch, "/v1/invoices/inv-1/void", `{"reason":"duplicate"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)

		w := serve(invoiceRouter(uc), http.MethodPatch, "/v1/invoices/inv-1/void", `{"reason":`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	for name, err := range map[string]error{"paid": usecase.ErrAlreadyPaid, "void": usecase.ErrAlreadyVoid} {
		t.Run("already "+name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIInvoiceUseCase(ctrl)
			uc.EXPECT().VoidInvoice(gomock.Any(), "inv-1", "").Return(entities.Invoice{}, err)

			w := serve(invoiceRouter(uc), http.MethodPatch, "/v1/invoices/inv-1/void", `{}`)
			if w.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d", w.Code)
			}
		})
	}
}

func TestInvoiceHandler_Queries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("void check overdue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().CanVoid(gomock.Any(), "inv-1").Return(usecase.VoidCheck{CanVoid: true, Warning: usecase.VoidWarningOverdue}, nil)

		w := serve(invoiceRouter(uc), http.MethodGet, "/v1/invoices/inv-1/void-check", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["can_void"] != true || body["warning"] != "overdue" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("list invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().List(gomock.Any(), "unpaid").Return(nil, fmt.Errorf("%w: %q", usecase.ErrInvalidStatus, "unpaid"))

		w := serve(invoiceRouter(uc), http.MethodGet, "/v1/invoices?status=unpaid", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().List(gomock.Any(), "pending").Return([]entities.Invoice{pendingInvoice()}, nil)

		w := serve(invoiceRouter(uc), http.MethodGet, "/v1/invoices?status=pending", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "inv-x").Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)

		w := serve(invoiceRouter(uc), http.MethodGet, "/v1/invoices/inv-x", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
