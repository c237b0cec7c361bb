package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb timeout")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected AppError to unwrap to its cause")
	}
	if appErr.Error() != "INTERNAL_ERROR: An internal error occurred: dynamodb timeout" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}

	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Details != "" {
		t.Fatalf("cause must not leak into the body, got %+v", body)
	}
}

func TestAppErrorWithDetails(t *testing.T) {
	appErr := NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	if appErr.Error() != "INVALID_REQUEST: Invalid request" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}

	detailed := appErr.WithDetails("slot must be HH:MM")
	if detailed.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", detailed.HTTPStatus)
	}
	if body := detailed.ToHTTPError(); body.Details != "slot must be HH:MM" || body.Code != "INVALID_REQUEST" {
		t.Fatalf("unexpected body %+v", body)
	}
	if appErr.ToHTTPError().Details != "" {
		t.Fatalf("WithDetails must not modify the original error")
	}
}
