package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finhub/internal/config"
	"finhub/internal/log"
)

// recordingBackend captures the last request a backend received.
type recordingBackend struct {
	method string
	path   string
	query  string
	authz  string
	body   string
}

func newBackend(t *testing.T, status int, response string) (*httptest.Server, *recordingBackend) {
	t.Helper()
	rec := &recordingBackend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.authz = r.Header.Get("Authorization")
		rec.body = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newGateway(t *testing.T, mutate func(*config.Config)) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AccountServiceURL:      "http://unused.invalid",
		TransactionServiceURL:  "http://unused.invalid",
		CategoryServiceURL:     "http://unused.invalid",
		AnalyticsServiceURL:    "http://unused.invalid",
		PlaidServiceURL:        "http://unused.invalid",
		SubscriptionServiceURL: "http://unused.invalid",
		ProxyTimeout:           2 * time.Second,
	}
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, log.New("gateway-test", slog.LevelError)).Handler()
}

func send(handler http.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestForwardStripsResourcePrefix(t *testing.T) {
	backend, seen := newBackend(t, http.StatusOK, `{"data":{"id":"abc123"}}`)
	handler := newGateway(t, func(cfg *config.Config) { cfg.CategoryServiceURL = backend.URL })

	rec := send(handler, http.MethodPatch, "/api/categories/abc123", "Bearer tok", `{"name":"Food"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if seen.method != http.MethodPatch {
		t.Errorf("method %q", seen.method)
	}
	if seen.path != "/abc123" {
		t.Errorf("backend path %q, want /abc123", seen.path)
	}
	if seen.authz != "Bearer tok" {
		t.Errorf("authorization %q not relayed", seen.authz)
	}
	if seen.body != `{"name":"Food"}` {
		t.Errorf("body %q not relayed", seen.body)
	}
	if body := rec.Body.String(); body != `{"data":{"id":"abc123"}}` {
		t.Errorf("response body %q not relayed", body)
	}
}

func TestForwardBarePrefixHitsRoot(t *testing.T) {
	backend, seen := newBackend(t, http.StatusOK, `{"data":[]}`)
	handler := newGateway(t, func(cfg *config.Config) { cfg.AccountServiceURL = backend.URL })

	rec := send(handler, http.MethodGet, "/api/accounts", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if seen.path != "/" {
		t.Errorf("backend path %q, want /", seen.path)
	}
}

func TestForwardKeepsAnalyticsPath(t *testing.T) {
	backend, seen := newBackend(t, http.StatusOK, `{"data":{}}`)
	handler := newGateway(t, func(cfg *config.Config) { cfg.AnalyticsServiceURL = backend.URL })

	send(handler, http.MethodGet, "/api/summary?from=2025-01-01&accountId=acc-1", "", "")
	if seen.path != "/api/summary" {
		t.Errorf("backend path %q, want /api/summary", seen.path)
	}
	if seen.query != "from=2025-01-01&accountId=acc-1" {
		t.Errorf("query %q not relayed", seen.query)
	}
}

func TestForwardKeepsPlaidPath(t *testing.T) {
	backend, seen := newBackend(t, http.StatusOK, `{"data":{}}`)
	handler := newGateway(t, func(cfg *config.Config) { cfg.PlaidServiceURL = backend.URL })

	send(handler, http.MethodPost, "/api/plaid/create-link-token", "Bearer tok", "{}")
	if seen.path != "/api/plaid/create-link-token" {
		t.Errorf("backend path %q", seen.path)
	}

	// The bare plaid prefix is not a route.
	rec := send(handler, http.MethodPost, "/api/plaid", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("bare plaid prefix: status %d, want 404", rec.Code)
	}
}

func TestBackendStatusIsRelayed(t *testing.T) {
	backend, _ := newBackend(t, http.StatusNotFound, `{"error":"Not found"}`)
	handler := newGateway(t, func(cfg *config.Config) { cfg.AccountServiceURL = backend.URL })

	rec := send(handler, http.MethodGet, "/api/accounts/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"Not found"}` {
		t.Errorf("body %q", body)
	}
}

func TestDeadBackendYields503(t *testing.T) {
	handler := newGateway(t, func(cfg *config.Config) {
		cfg.AccountServiceURL = "http://127.0.0.1:1"
	})

	rec := send(handler, http.MethodGet, "/api/accounts", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Service unavailable") {
		t.Errorf("body %q", rec.Body.String())
	}
}

func TestUnknownPathIs404(t *testing.T) {
	handler := newGateway(t, nil)
	rec := send(handler, http.MethodGet, "/api/unknown", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	handler := newGateway(t, nil)
	rec := send(handler, http.MethodOptions, "/api/accounts", "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("missing CORS headers header")
	}
}

func TestHealthIsLocal(t *testing.T) {
	handler := newGateway(t, nil)
	rec := send(handler, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gateway") {
		t.Errorf("body %q", rec.Body.String())
	}
}
