package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken cubre tokens mal formados, con firma inválida o expirados.
	ErrInvalidToken = errors.New("invalid token")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens para claims ya autenticados (login).
type TokenIssuer interface {
	Issue(ctx context.Context, c Claims) (IssuedToken, error)
}
