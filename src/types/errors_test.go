package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewValidationError("bad")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewPaymentVerificationError("bad sig")))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(NewAuthError("no token")))
	assert.Equal(t, http.StatusForbidden, StatusCode(NewAuthorizationError("nope")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("gone")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewConflictError("taken")))
	assert.Equal(t, http.StatusBadGateway, StatusCode(NewPaymentGatewayError("down")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(NewInternalError("boom")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("raw")))
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewConflictError("venue is already booked for the requested date")
	assert.Equal(t, "venue is already booked for the requested date", err.Error())
}
