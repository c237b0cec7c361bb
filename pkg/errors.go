package pkg

import "fmt"

// AppError is the error envelope returned by the HTTP layer.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

// HTTPError is the JSON body rendered for an AppError.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NewDomainError keeps the underlying error for logs. It is never rendered
// to the client.
func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// WithDetails attaches a client visible detail line without modifying e.
func (e *AppError) WithDetails(details string) *AppErrorWithDetails {
	return &AppErrorWithDetails{AppError: e, Details: details}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}

// AppErrorWithDetails is an AppError plus a message explaining which input
// was rejected.
type AppErrorWithDetails struct {
	*AppError
	Details string
}

func (e *AppErrorWithDetails) ToHTTPError() HTTPError {
	out := e.AppError.ToHTTPError()
	out.Details = e.Details
	return out
}
