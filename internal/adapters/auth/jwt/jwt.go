// Package jwt emite y verifica tokens HS256 propios del marketplace.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"pet-marketplace/internal/ports/auth"
)

var ErrSecretRequired = errors.New("jwt secret required")

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type claims struct {
	gojwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Manager implementa auth.AuthVerifier y auth.TokenIssuer.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *Manager) Issue(_ context.Context, c auth.Claims) (auth.IssuedToken, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return auth.IssuedToken{}, errors.New("jwt: user id required")
	}
	now := m.now()
	exp := now.Add(m.ttl)

	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
		Email: c.Email,
		Role:  c.Role,
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return auth.IssuedToken{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return auth.IssuedToken{Token: signed, ExpiresAt: exp}, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(m.now),
		gojwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(m.issuer))
	}

	var parsed claims
	_, err := gojwt.ParseWithClaims(token, &parsed, func(*gojwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	uid := strings.TrimSpace(parsed.Subject)
	if uid == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}
	return auth.Claims{UserID: uid, Email: parsed.Email, Role: parsed.Role}, nil
}
