package analytics_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhub/internal/analytics"
	"finhub/internal/auth"
	"finhub/internal/core"
	"finhub/internal/log"
	"finhub/internal/storage/memory"
)

func newSummaryServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	engine := analytics.NewEngine(store.Analytics())
	logger := log.New("analytics-test", slog.LevelError)
	resolver := auth.Static{"alice-token": owner}
	return analytics.Handler(engine, resolver, logger), store
}

func getSummary(t *testing.T, handler http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSummaryEndpoint(t *testing.T) {
	handler, store := newSummaryServer(t)
	seedTransaction(t, store, -2500, core.Today().AddDays(-1), "acc-1", "")

	rec := getSummary(t, handler, "/api/summary", "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data core.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(2500), envelope.Data.ExpensesAmount.Cents)
	assert.Equal(t, int64(-2500), envelope.Data.RemainingAmount.Cents)
}

func TestSummaryEndpointTrimsAccountFilter(t *testing.T) {
	handler, store := newSummaryServer(t)
	seedTransaction(t, store, -2500, core.Today().AddDays(-1), "acc-1", "")
	seedTransaction(t, store, -999, core.Today().AddDays(-1), "acc-2", "")

	rec := getSummary(t, handler, "/api/summary?accountId=%20acc-1%20", "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data core.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(2500), envelope.Data.ExpensesAmount.Cents)
}

func TestSummaryEndpointRejectsBadDates(t *testing.T) {
	handler, _ := newSummaryServer(t)
	for _, path := range []string{"/api/summary?from=junk", "/api/summary?to=2025-99-01"} {
		rec := getSummary(t, handler, path, "alice-token")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestSummaryEndpointRequiresAuth(t *testing.T) {
	handler, _ := newSummaryServer(t)
	rec := getSummary(t, handler, "/api/summary", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSummaryHealthSkipsAuth(t *testing.T) {
	handler, _ := newSummaryServer(t)
	rec := getSummary(t, handler, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
