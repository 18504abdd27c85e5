package auth

import "time"

// Claims representa la identidad extraída del token.
type Claims struct {
	UserID string
	Email  string
	// Role es el rol primario (owner, sitter, kennel, admin).
	Role string
}

// IssuedToken es lo que devuelve un TokenIssuer.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
