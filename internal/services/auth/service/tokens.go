package service

import (
	"errors"
	"fmt"
	"time"

	ptime "inkwell/internal/platform/time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is any bearer token that does not verify
var ErrInvalidToken = errors.New("auth: invalid token")

// Tokens issues and verifies HS256 access tokens whose subject is the user id
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    ptime.Clock
}

// NewTokens builds a token issuer, now may be nil
func NewTokens(secret, issuer string, ttl time.Duration, now ptime.Clock) *Tokens {
	if now == nil {
		now = ptime.System
	}
	return &Tokens{secret: []byte(secret), issuer: issuer, ttl: ttl, now: now}
}

// TTL is the lifetime of issued tokens
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for userID
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		ID:        uuid.NewString(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign: %w", err)
	}
	return s, nil
}

// Verify returns the subject of a valid token
func (t *Tokens) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return claims.Subject, nil
}
