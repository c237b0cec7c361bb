package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"vetclinic/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrNotConfigured      = errors.New("mercado pago gateway not configured")
)

// GatewayConfig selects between the real Mercado Pago API and an in-process
// approver used in development.
type GatewayConfig struct {
	AccessToken string
	Mock        bool
}

// MercadoPagoGateway charges invoice totals through Mercado Pago.
type MercadoPagoGateway struct {
	client payment.Client
	mock   bool
	now    func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg GatewayConfig) (*MercadoPagoGateway, error) {
	if cfg.Mock {
		log.Printf("[invoice][gateway] mock mode enabled")
		return &MercadoPagoGateway{mock: true, now: time.Now}, nil
	}
	if cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		log.Printf("[invoice][gateway] sdk config failed err=%v", err)
		return nil, err
	}
	log.Printf("[invoice][gateway] mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg), now: time.Now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g == nil {
		return "", "", nil, ErrNotConfigured
	}
	if g.mock {
		return g.approve(requestPayload)
	}
	if g.client == nil {
		return "", "", nil, ErrNotConfigured
	}

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		return "", "", nil, err
	}
	log.Printf("[invoice][gateway] charge start external_reference=%s amount=%.2f", req.ExternalReference, req.TransactionAmount)

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[invoice][gateway] charge failed external_reference=%s err=%v", req.ExternalReference, err)
		return "", "", nil, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[invoice][gateway] charge success provider_payment_id=%d status=%s", resp.ID, resp.Status)
	return strconv.Itoa(resp.ID), resp.Status, raw, nil
}

// approve echoes the request back as an accredited payment.
func (g *MercadoPagoGateway) approve(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_approved"] = now.Format(time.RFC3339Nano)

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[invoice][gateway] mock charge approved provider_payment_id=%s external_reference=%v", id, resp["external_reference"])
	return id, "approved", raw, nil
}
