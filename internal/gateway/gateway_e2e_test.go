package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finhub/internal/analytics"
	"finhub/internal/auth"
	"finhub/internal/config"
	"finhub/internal/log"
	"finhub/internal/plaid"
	"finhub/internal/resource"
	"finhub/internal/storage/memory"
)

// These tests put the real service handlers behind the gateway instead
// of a recording stub, so the routed paths are checked against what the
// services actually mount.

var e2eResolver = auth.Static{"alice-token": "alice"}

func TestSubscriptionsThroughGateway(t *testing.T) {
	store := memory.New()
	logger := log.New("subscriptions", slog.LevelError)
	svc := httptest.NewServer(resource.NewSubscriptionHandlers(store.Subscriptions(), logger, nil).Router(e2eResolver))
	t.Cleanup(svc.Close)
	handler := newGateway(t, func(cfg *config.Config) { cfg.SubscriptionServiceURL = svc.URL })

	rec := send(handler, http.MethodPost, "/api/subscriptions", "Bearer alice-token",
		`{"name":"Streaming","amount":1500,"status":"active","billing_date":"2025-08-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = send(handler, http.MethodGet, "/api/subscriptions", "Bearer alice-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Streaming") {
		t.Errorf("list body %q missing created subscription", rec.Body.String())
	}
}

func TestSummaryThroughGateway(t *testing.T) {
	store := memory.New()
	engine := analytics.NewEngine(store.Analytics())
	svc := httptest.NewServer(analytics.Handler(engine, e2eResolver, log.New("analytics", slog.LevelError)))
	t.Cleanup(svc.Close)
	handler := newGateway(t, func(cfg *config.Config) { cfg.AnalyticsServiceURL = svc.URL })

	rec := send(handler, http.MethodGet, "/api/summary", "Bearer alice-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "incomeAmount") {
		t.Errorf("body %q is not a summary envelope", rec.Body.String())
	}
}

func TestPlaidThroughGateway(t *testing.T) {
	svc := httptest.NewServer(plaid.Handler(e2eResolver, log.New("plaid", slog.LevelError)))
	t.Cleanup(svc.Close)
	handler := newGateway(t, func(cfg *config.Config) { cfg.PlaidServiceURL = svc.URL })

	rec := send(handler, http.MethodPost, "/api/plaid/create-link-token", "Bearer alice-token", "{}")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "link-sandbox-") {
		t.Errorf("body %q missing link token", rec.Body.String())
	}
}
