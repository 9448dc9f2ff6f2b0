package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/session"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUnknownItem        = "UNKNOWN_ITEM"
	CodeAlreadyOwned       = "ALREADY_OWNED"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeNotOwned           = "NOT_OWNED"
	CodeQuotaExceeded      = "QUOTA_EXCEEDED"
	CodeFixtureLocked      = "FIXTURE_LOCKED"
	CodeInstanceNotFound   = "INSTANCE_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username is already taken"}}
	case errors.Is(err, model.ErrUnknownItem):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownItem, "Item is not in the catalog"}}
	case errors.Is(err, model.ErrAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOwned, "Item is already owned"}}
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, "Not enough currency"}}
	case errors.Is(err, model.ErrNotOwned):
		return &httpError{http.StatusConflict, APIError{CodeNotOwned, "Item not owned"}}
	case errors.Is(err, model.ErrQuotaExceeded):
		return &httpError{http.StatusConflict, APIError{CodeQuotaExceeded, "All owned units are already placed"}}
	case errors.Is(err, model.ErrFixtureLocked):
		return &httpError{http.StatusForbidden, APIError{CodeFixtureLocked, "Fixture pieces cannot be modified"}}
	case errors.Is(err, model.ErrInstanceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeInstanceNotFound, "Placed instance not found"}}

	// Map session errors
	case errors.Is(err, session.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, session.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, session.ErrFieldsRequired),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
