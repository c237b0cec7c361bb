package usecase

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrInvalidProviderPayload         = fmt.Errorf("%w: invalid mercado pago payload", ErrInvalidFormat)
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

const sandboxFallbackEmail = "test_user_br@testuser.com"

// PayerPolicy completes the payer block of a Mercado Pago charge.
type PayerPolicy struct {
	// Mock skips every check; the mock gateway never reads the payer.
	Mock bool
	// Sandbox is true for TEST- access tokens.
	Sandbox         bool
	TestPayerEmail  string
	TestPayerUserID string
}

// prepare rejects a request without payment_method_id or without a payer
// that can be identified by email or id, after filling what the policy can.
func (p PayerPolicy) prepare(req map[string]any) error {
	if p.Mock {
		return nil
	}
	if stringField(req, "payment_method_id") == "" {
		return ErrInvalidProviderPayload
	}
	payer := payerBlock(req)
	if payer == nil {
		return ErrInvalidProviderPayload
	}
	p.fillPayer(payer)
	if stringField(payer, "email") == "" && payerID(payer) == "" {
		return ErrInvalidProviderPayload
	}
	return nil
}

func (p PayerPolicy) fillPayer(payer map[string]any) {
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	id := payerID(payer)
	switch {
	case stringField(payer, "email") != "":
	case id != "":
		// the sandbox test user only resolves by email
		if p.Sandbox && p.TestPayerUserID != "" && p.TestPayerEmail != "" && id == p.TestPayerUserID {
			payer["email"] = p.TestPayerEmail
			delete(payer, "id")
			log.Printf("[invoice][usecase] sandbox payer id replaced by email")
		}
	case p.TestPayerEmail != "":
		payer["email"] = p.TestPayerEmail
	case p.Sandbox:
		payer["email"] = sandboxFallbackEmail
	}
}

// payerBlock returns req["payer"], adding an empty one when absent. A payer
// that is not a JSON object yields nil.
func payerBlock(req map[string]any) map[string]any {
	raw, ok := req["payer"]
	if !ok || raw == nil {
		payer := map[string]any{}
		req["payer"] = payer
		return payer
	}
	payer, _ := raw.(map[string]any)
	return payer
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// payerID accepts numeric ids as well, since JSON decoding yields float64.
func payerID(payer map[string]any) string {
	v, ok := payer["id"]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// classifyGatewayError turns the provider's error body into one of the
// ErrPaymentGateway* sentinels, or returns err unchanged.
func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
