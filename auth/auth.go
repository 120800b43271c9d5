// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/easel/competition"
)

var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the lifetime of tokens issued without an explicit ttl
const DefaultTokenTTL = 24 * time.Hour

// IssueToken signs an HS256 bearer token whose subject is the caller's
// address
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns its subject
func ParseToken(secret, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

type callerKey struct{}

// WithCaller returns a context carrying the verified caller address
func WithCaller(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, callerKey{}, address)
}

// CallerFrom returns the verified caller address, if any
func CallerFrom(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(callerKey{}).(string)
	return address, ok && address != ""
}

// Authorizer checks identities against the caller stored in the context
type Authorizer struct{}

// Require fails unless the context's caller is identity
func (Authorizer) Require(ctx context.Context, identity string) error {
	caller, ok := CallerFrom(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated caller", competition.ErrUnauthorized)
	}
	if identity == "" || caller != identity {
		return fmt.Errorf("%w: caller %s cannot act as %s", competition.ErrUnauthorized, caller, identity)
	}
	return nil
}

var _ competition.Authorizer = Authorizer{}
