// Package auth resolves bearer tokens into principals. Identity itself
// lives in an external provider; services only verify the token it
// issued and read the stable user identifier out of it.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"finhub/internal/core"
)

// Principal is the authenticated identity making a request.
type Principal struct {
	ID string
}

// Resolver validates a bearer token and yields the principal it was
// issued to. Every failure maps to core.ErrUnauthorized.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}

// JWTResolver verifies HS256 tokens signed with the identity provider's
// shared secret. The subject claim carries the user identifier.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(_ context.Context, token string) (Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, fmt.Errorf("%w: invalid token", core.ErrUnauthorized)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return Principal{}, fmt.Errorf("%w: token has no subject", core.ErrUnauthorized)
	}
	return Principal{ID: sub}, nil
}

// Static maps raw tokens to user identifiers. It backs the memory
// backend in development and handler tests; never use it in production.
type Static map[string]string

func (s Static) Resolve(_ context.Context, token string) (Principal, error) {
	id, ok := s[token]
	if !ok {
		return Principal{}, fmt.Errorf("%w: unknown token", core.ErrUnauthorized)
	}
	return Principal{ID: id}, nil
}
