package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquamart/aquamart-backend/internal/auth"
	"github.com/aquamart/aquamart-backend/internal/users"
	pkgerrors "github.com/aquamart/aquamart-backend/pkg/errors"
)

type stubAuthService struct {
	loginResp   *auth.LoginResponse
	refreshResp *auth.RefreshResponse
	err         error

	lastEmail    string
	lastClientIP string
	loggedOut    string
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest, clientIP string) (*auth.LoginResponse, error) {
	s.lastEmail = req.Email
	s.lastClientIP = clientIP
	return s.loginResp, s.err
}

func (s *stubAuthService) Refresh(_ context.Context, _ auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refreshResp, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOut = accessID
	return s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{loginResp: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &users.UserDTO{ID: uuid.New(), Email: "admin@example.com"},
	}}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"email":"admin@example.com","password":"super-secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "203.0.113.9", svc.lastClientIP)

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "access-token", envelope.Data.AccessToken)
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, "admin@example.com", envelope.Data.User.Email)
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"email":"admin@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthLoginPropagatesRateLimit(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"email":"admin@example.com","password":"super-secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}

func TestAuthRefreshReturnsRotatedPair(t *testing.T) {
	svc := &stubAuthService{refreshResp: &auth.RefreshResponse{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}}
	handler := AuthRefresh(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/refresh", bytes.NewReader([]byte(`{"accessToken":"old-access","refreshToken":"old-refresh"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data auth.RefreshResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "new-access", envelope.Data.AccessToken)
	assert.Equal(t, "new-refresh", envelope.Data.RefreshToken)
}
