package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-backoffice/internal/auth"
	"github.com/ukydev/fleet-backoffice/internal/config"
	"github.com/ukydev/fleet-backoffice/internal/middleware"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *auth.Service, *test.Hook) {
	t.Helper()
	authService, err := auth.NewService(config.AuthConfig{
		Username:  "admin",
		Password:  "password123",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	})
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	return NewAuthHandler(authService, logger), authService, hook
}

func loginRequest(t *testing.T, username, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		handler, authService, _ := newTestAuthHandler(t)
		w := httptest.NewRecorder()

		handler.Login(w, loginRequest(t, "admin", "password123"))

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "admin", response.Username)
		assert.Greater(t, response.ExpiresAt, time.Now().Unix())

		claims, err := authService.ValidateToken(response.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		handler, _, hook := newTestAuthHandler(t)
		w := httptest.NewRecorder()

		handler.Login(w, loginRequest(t, "admin", "wrongpassword"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "Rejected login", hook.LastEntry().Message)
	})

	t.Run("unknown operator", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)
		w := httptest.NewRecorder()

		handler.Login(w, loginRequest(t, "mallory", "password123"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)
		w := httptest.NewRecorder()

		handler.Login(w, loginRequest(t, "admin", ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{invalid"))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAuthHandler_Session(t *testing.T) {
	handler, _, _ := newTestAuthHandler(t)

	t.Run("with claims", func(t *testing.T) {
		claims := &models.Claims{Username: "admin", Exp: time.Now().Add(time.Hour).Unix()}
		ctx := context.WithValue(context.Background(), middleware.UserContextKey, claims)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got models.Claims
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, *claims, got)
	})

	t.Run("without claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
