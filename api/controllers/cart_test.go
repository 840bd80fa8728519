package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquamart/aquamart-backend/api/middleware"
	"github.com/aquamart/aquamart-backend/internal/cart"
)

type stubCartService struct {
	snapshot *cart.Snapshot
	err      error

	lastToken     string
	lastProductID int64
	lastQty       int
	cleared       bool
}

func (s *stubCartService) Get(_ context.Context, token string) (*cart.Snapshot, error) {
	s.lastToken = token
	return s.snapshot, s.err
}

func (s *stubCartService) AddItem(_ context.Context, token string, productID int64, qty int) (*cart.Snapshot, error) {
	s.lastToken, s.lastProductID, s.lastQty = token, productID, qty
	return s.snapshot, s.err
}

func (s *stubCartService) UpdateQty(_ context.Context, token string, productID int64, qty int) (*cart.Snapshot, error) {
	s.lastToken, s.lastProductID, s.lastQty = token, productID, qty
	return s.snapshot, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, token string, productID int64) (*cart.Snapshot, error) {
	s.lastToken, s.lastProductID = token, productID
	return s.snapshot, s.err
}

func (s *stubCartService) Clear(_ context.Context, token string) error {
	s.lastToken = token
	s.cleared = true
	return s.err
}

func emptySnapshot() *cart.Snapshot {
	return &cart.Snapshot{Items: []cart.LineItem{}, TotalPrice: decimal.Zero}
}

func withCartToken(req *http.Request, token string) *http.Request {
	return req.WithContext(middleware.WithCartToken(req.Context(), token))
}

func TestCartFetchUsesContextToken(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}
	handler := CartFetch(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "token-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "token-1", svc.lastToken)

	var envelope struct {
		Data cart.Snapshot `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.NotNil(t, envelope.Data.Items)
	assert.Equal(t, 0, envelope.Data.TotalItems)
}

func TestCartAddItemValidatesBody(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}
	handler := CartAddItem(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{"productId":0,"qty":2}`))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCartAddItemForwardsPayload(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}
	handler := CartAddItem(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{"productId":7,"qty":3}`))), "token-9")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "token-9", svc.lastToken)
	assert.Equal(t, int64(7), svc.lastProductID)
	assert.Equal(t, 3, svc.lastQty)
}

func TestCartUpdateItemParsesURLParam(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}

	r := chi.NewRouter()
	r.Patch("/cart/items/{productId}", CartUpdateItem(svc, nil))

	req := withCartToken(httptest.NewRequest(http.MethodPatch, "/cart/items/42", bytes.NewReader([]byte(`{"qty":5}`))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(42), svc.lastProductID)
	assert.Equal(t, 5, svc.lastQty)
}

func TestCartUpdateItemForwardsZeroQty(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}

	r := chi.NewRouter()
	r.Patch("/cart/items/{productId}", CartUpdateItem(svc, nil))

	// qty below the floor reaches the service; the cart clamps it to 1
	// instead of the API rejecting it.
	req := withCartToken(httptest.NewRequest(http.MethodPatch, "/cart/items/42", bytes.NewReader([]byte(`{"qty":0}`))), "token-1")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(42), svc.lastProductID)
	assert.Equal(t, 0, svc.lastQty)
}

func TestCartRemoveItemRejectsBadID(t *testing.T) {
	svc := &stubCartService{snapshot: emptySnapshot()}

	r := chi.NewRouter()
	r.Delete("/cart/items/{productId}", CartRemoveItem(svc, nil))

	req := withCartToken(httptest.NewRequest(http.MethodDelete, "/cart/items/abc", nil), "token-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "token-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, svc.cleared)
}
