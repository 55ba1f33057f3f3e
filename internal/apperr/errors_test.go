package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("cart %d not found", 7)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("quantity must be positive")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("cart was modified concurrently")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(Provider("stripe: card_declined")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("add item: %w", NotFound("product 3 not found"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeInvalidInput))
}

func TestPayload_HidesUnknownErrors(t *testing.T) {
	p := Payload(errors.New("pq: connection refused"))
	assert.Equal(t, CodeInternal, p.Code)
	assert.Equal(t, "internal error", p.Message)

	p = Payload(InvalidInput("price must not be negative"))
	assert.Equal(t, CodeInvalidInput, p.Code)
	assert.Equal(t, "price must not be negative", p.Message)
}

func TestExtensions(t *testing.T) {
	e := Conflict("version mismatch")
	assert.Equal(t, map[string]interface{}{"code": CodeConcurrencyConflict}, e.Extensions())
}
