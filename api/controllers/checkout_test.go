package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquamart/aquamart-backend/internal/checkout"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
)

type stubCheckoutService struct {
	result *checkout.Result
	err    error

	lastInput checkout.SubmitInput
}

func (s *stubCheckoutService) Submit(_ context.Context, input checkout.SubmitInput) (*checkout.Result, error) {
	s.lastInput = input
	return s.result, s.err
}

func TestCheckoutSubmitsAndClearsCart(t *testing.T) {
	svc := &stubCheckoutService{result: &checkout.Result{
		OrderID:     uuid.New(),
		Number:      "AQ-260829-ABCDE",
		Total:       decimal.RequireFromString("2500"),
		WhatsAppURL: "https://wa.me/9647701234567?text=order",
	}}
	carts := &stubCartService{}
	handler := Checkout(svc, carts, nil)

	payload := `{"customerName":"زبون تجريبي","phone":"07701234567","address":"بغداد - الكرادة","items":[{"productId":1,"qty":2}]}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(payload))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.True(t, carts.cleared)
	assert.Equal(t, "token-1", carts.lastToken)
	require.Len(t, svc.lastInput.Items, 1)
	assert.Equal(t, int64(1), svc.lastInput.Items[0].ProductID)

	// The storefront reads these exact keys off the payload.
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, `"AQ-260829-ABCDE"`, string(envelope.Data["orderNumber"]))
	assert.Contains(t, envelope.Data, "whatsappUrl")
	assert.NotContains(t, envelope.Data, "number")
}

func TestCheckoutRejectsEmptyItems(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := Checkout(svc, &stubCartService{}, nil)

	payload := `{"customerName":"زبون","phone":"07701234567","address":"بغداد - الكرادة","items":[]}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(payload))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCheckoutSurfacesStockViolations(t *testing.T) {
	violations := []checkout.Violation{{ProductID: 1, Reason: "insufficient_stock"}}
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "some items are unavailable").WithDetails(violations)}
	carts := &stubCartService{}
	handler := Checkout(svc, carts, nil)

	payload := `{"customerName":"زبون تجريبي","phone":"07701234567","address":"بغداد - الكرادة","items":[{"productId":1,"qty":99}]}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(payload))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, carts.cleared)

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details []json.RawMessage `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Len(t, envelope.Error.Details, 1)
}
