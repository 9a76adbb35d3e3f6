package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/handler"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

func postJSON(path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(echoHeaderContentType, "application/json")
	return req
}

const echoHeaderContentType = "Content-Type"

func TestLogin_SeedUser(t *testing.T) {
	env := setupTestEnv(t)

	req := postJSON("/auth/login", map[string]string{
		"email":    service.SeedUserEmail,
		"password": "admin123",
	})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.TokenResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, service.SeedUserEmail, result.User.Email)
	assert.NotEmpty(t, result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	req := postJSON("/auth/login", map[string]string{
		"email":    service.SeedUserEmail,
		"password": "wrong",
	})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	req := postJSON("/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "admin123",
	})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	// Indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	env := setupTestEnv(t)

	req := postJSON("/auth/login", map[string]string{"email": "not-an-email"})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var profile handler.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, service.SeedUserEmail, profile.Email)
	assert.NotEmpty(t, profile.ID)
}

func TestProfile_MissingToken(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_GarbageToken(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthz(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Timestamp)
	assert.NotEmpty(t, health.Uptime)
}
