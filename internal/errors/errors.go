package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// Unauthenticated creates an UNAUTHENTICATED error (no usable credential)
func Unauthenticated(message string) *APIError {
	return &APIError{
		Code:    ErrUnauthenticated,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// InvalidToken creates an INVALID_TOKEN error (credential present but unusable)
func InvalidToken(message string) *APIError {
	return &APIError{
		Code:    ErrInvalidToken,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// TokenReuse creates a TOKEN_REUSE error. Raised when a refresh token
// that has already been rotated or revoked is presented again.
func TokenReuse(message string) *APIError {
	return &APIError{
		Code:    ErrTokenReuse,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// Forbidden creates a FORBIDDEN error
func Forbidden(message string) *APIError {
	return &APIError{
		Code:    ErrForbidden,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// Conflict creates a CONFLICT error
func Conflict(message string) *APIError {
	return &APIError{
		Code:    ErrConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// ValidationError creates a VALIDATION_ERROR
func ValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// InternalError creates an INTERNAL_ERROR
func InternalError(message string) *APIError {
	return &APIError{
		Code:    ErrInternalError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}
