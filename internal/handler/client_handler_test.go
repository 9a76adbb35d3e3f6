package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/handler"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/service"
)

func (env *testEnv) createClient(t *testing.T, token, name string, salary, companyValue float64) model.Client {
	t.Helper()

	req := postJSON("/clients", map[string]interface{}{
		"name":         name,
		"salary":       salary,
		"companyValue": companyValue,
	})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var client model.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	return client
}

func TestCreateClient(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	client := env.createClient(t, token, "Eduardo Silva", 3500.00, 120000.00)

	assert.Equal(t, "Eduardo Silva", client.Name)
	assert.NotEmpty(t, client.ID)
	assert.False(t, client.CreatedAt.IsZero())
	assert.False(t, client.Deleted())
}

func TestCreateClient_ValidationErrors(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name: "name too short",
			payload: map[string]interface{}{
				"name": "AB", "salary": 1000.0, "companyValue": 1000.0,
			},
		},
		{
			name: "negative salary",
			payload: map[string]interface{}{
				"name": "Valid Name", "salary": -100.0, "companyValue": 1000.0,
			},
		},
		{
			name: "non-numeric companyValue",
			payload: map[string]interface{}{
				"name": "Valid Name", "salary": 1000.0, "companyValue": "invalid",
			},
		},
		{
			name: "too many decimal places",
			payload: map[string]interface{}{
				"name": "Valid Name", "salary": 1000.123, "companyValue": 1000.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postJSON("/clients", tt.payload)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			env.e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateClient_RequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	req := postJSON("/clients", map[string]interface{}{
		"name": "Eduardo Silva", "salary": 3500.0, "companyValue": 120000.0,
	})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetClient_IncrementsViewCount(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)
	client := env.createClient(t, token, "Ana Costa", 5200.50, 450000.00)

	get := func() handler.ClientDetailResponse {
		req := httptest.NewRequest(http.MethodGet, "/clients/"+client.ID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var detail handler.ClientDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		return detail
	}

	first := get()
	second := get()

	assert.Equal(t, client.ID, first.Client.ID)
	assert.Equal(t, first.ViewCount+1, second.ViewCount)
}

func TestGetClient_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/a2a8ffdc-06a0-4d4f-9c4f-8c9a1b2c3d4e", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClient_InvalidID(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateClient_Partial(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)
	client := env.createClient(t, token, "Carlos Pereira", 2800.00, 85000.00)

	body := strings.NewReader(`{"name":"Carlos P. Santos"}`)
	req := httptest.NewRequest(http.MethodPut, "/clients/"+client.ID.String(), body)
	req.Header.Set(echoHeaderContentType, "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Carlos P. Santos", updated.Name)
	// Unspecified fields keep their prior values.
	assert.True(t, updated.Salary.Equal(client.Salary))
	assert.True(t, updated.CompanyValue.Equal(client.CompanyValue))
}

func TestUpdateClient_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	body := strings.NewReader(`{"name":"Whoever"}`)
	req := httptest.NewRequest(http.MethodPut, "/clients/a2a8ffdc-06a0-4d4f-9c4f-8c9a1b2c3d4e", body)
	req.Header.Set(echoHeaderContentType, "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteClient_SoftDelete(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)
	keep := env.createClient(t, token, "Mariana Souza", 7100.75, 980000.00)
	remove := env.createClient(t, token, "João Oliveira", 4300.00, 230000.00)

	req := httptest.NewRequest(http.MethodDelete, "/clients/"+remove.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The listing still contains the record, stamped as deleted; callers
	// filter the active set themselves.
	req = httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var clients []model.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 2)

	active := make(map[string]bool)
	for _, c := range clients {
		if !c.Deleted() {
			active[c.ID.String()] = true
		}
	}
	assert.True(t, active[keep.ID.String()])
	assert.False(t, active[remove.ID.String()])

	// Soft-deleted records are still found by id.
	req = httptest.NewRequest(http.MethodGet, "/clients/"+remove.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail handler.ClientDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.True(t, detail.Client.Deleted())
}

func TestDashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)

	env.createClient(t, token, "Eduardo Silva", 3500.00, 120000.00)
	env.createClient(t, token, "Ana Costa", 5200.50, 450000.00)
	removed := env.createClient(t, token, "Carlos Pereira", 2800.00, 85000.00)

	req := httptest.NewRequest(http.MethodDelete, "/clients/"+removed.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats service.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, 2, stats.ActiveClients)
	assert.Equal(t, 1, stats.DeletedClients)
	assert.Len(t, stats.RecentClients, 2)
	require.Len(t, stats.ClientsByMonth, 1)
	assert.Equal(t, 3, stats.ClientsByMonth[0].Count)
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	token := env.bearerToken(t)
	client := env.createClient(t, token, "Eduardo Silva", 3500.00, 120000.00)

	req := httptest.NewRequest(http.MethodGet, "/clients/"+client.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	expected := fmt.Sprintf(`client_views_total{client_id="%s"} 1`, client.ID)
	assert.Contains(t, rec.Body.String(), expected)
}
