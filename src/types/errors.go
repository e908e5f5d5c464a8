package types

import "net/http"

type ErrorKind string

const (
	ErrValidation          ErrorKind = "validation"
	ErrAuth                ErrorKind = "auth"
	ErrAuthorization       ErrorKind = "authorization"
	ErrNotFound            ErrorKind = "not_found"
	ErrConflict            ErrorKind = "conflict"
	ErrPaymentVerification ErrorKind = "payment_verification"
	ErrPaymentGateway      ErrorKind = "payment_gateway"
	ErrInternal            ErrorKind = "internal"
)

// APIError carries a user-facing message plus the kind used for status
// mapping. No raw database or gateway error text crosses the request boundary.
type APIError struct {
	Kind    ErrorKind
	Message string
}

func (e *APIError) Error() string { return e.Message }

func NewValidationError(msg string) *APIError {
	return &APIError{Kind: ErrValidation, Message: msg}
}
func NewAuthError(msg string) *APIError {
	return &APIError{Kind: ErrAuth, Message: msg}
}
func NewAuthorizationError(msg string) *APIError {
	return &APIError{Kind: ErrAuthorization, Message: msg}
}
func NewNotFoundError(msg string) *APIError {
	return &APIError{Kind: ErrNotFound, Message: msg}
}
func NewConflictError(msg string) *APIError {
	return &APIError{Kind: ErrConflict, Message: msg}
}
func NewPaymentVerificationError(msg string) *APIError {
	return &APIError{Kind: ErrPaymentVerification, Message: msg}
}
func NewPaymentGatewayError(msg string) *APIError {
	return &APIError{Kind: ErrPaymentGateway, Message: msg}
}
func NewInternalError(msg string) *APIError {
	return &APIError{Kind: ErrInternal, Message: msg}
}

// StatusCode maps an error to its HTTP status. Anything that is not an
// APIError is treated as an internal failure.
func StatusCode(err error) int {
	apiErr, ok := err.(*APIError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case ErrValidation, ErrPaymentVerification:
		return http.StatusBadRequest
	case ErrAuth:
		return http.StatusUnauthorized
	case ErrAuthorization:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrPaymentGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
