package plans

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freightworks/loadplan/core/planstore"
)

func TestHandler_SaveAndGet(t *testing.T) {
	store := planstore.NewMemoryStore()
	h := NewHandler(store)

	body := `{"name":"monday","description":"run 1",
		"layout":{"id":"l1","vehicle_id":"veh-1","length":1350,"width":255,"max_weight":26000,"max_volume":92.5,
			"items":[{"id":"c1","job_id":"j1","length":200,"width":150,"height":300,"weight":2500}]},
		"deliveries":[{"id":"d1","job_id":"j1","delivery_sequence":1}]}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved planstore.LoadPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plans?id="+saved.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got planstore.LoadPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "monday", got.Name)
	require.Len(t, got.Layout.Items, 1)
}

func TestHandler_List(t *testing.T) {
	store := planstore.NewMemoryStore()
	h := NewHandler(store)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plans", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandler_NotFound(t *testing.T) {
	h := NewHandler(planstore.NewMemoryStore())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plans?id=missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_BadRequests(t *testing.T) {
	h := NewHandler(planstore.NewMemoryStore())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(`not json`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(`{"name":""}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/plans", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
