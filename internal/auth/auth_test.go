package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finhub/internal/core"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTResolverValidToken(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	principal, err := resolver.Resolve(context.Background(), signToken(t, testSecret, "user-42"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if principal.ID != "user-42" {
		t.Errorf("got %q, want user-42", principal.ID)
	}
}

func TestJWTResolverRejects(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", "user-42")},
		{"empty subject", signToken(t, testSecret, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tt.token)
			if !errors.Is(err, core.ErrUnauthorized) {
				t.Errorf("got %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestJWTResolverRejectsExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := NewJWTResolver(testSecret).Resolve(context.Background(), token); !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestMiddleware(t *testing.T) {
	resolver := Static{"good-token": "user-1"}
	var seen Principal
	handler := Middleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authz      string
		wantStatus int
	}{
		{"valid bearer", "Bearer good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"unknown token", "Bearer bad-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && seen.ID != "user-1" {
				t.Errorf("principal not stored, got %q", seen.ID)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if body := rec.Body.String(); body != `{"error":"Unauthorized"}` {
					t.Errorf("unexpected body %s", body)
				}
			}
		})
	}
}
