// Package remote verifica tokens contra un servicio de identidad externo por HTTP.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/platform/httpclient"
	"pet-marketplace/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("identity client not configured")
	ErrUnauthorized  = errors.New("identity unauthorized")
	ErrUpstream      = errors.New("identity upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Config del cliente. BaseURL y APIKey vienen de IDENTITY_BASE_URL / IDENTITY_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	hc, err := httpclient.New(cfg.BaseURL, timeout,
		httpclient.WithHeader(h, apiKey),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.BaseURL() != "" && c.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// VerifyToken pide al servicio de identidad los claims de un token.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out verifyResponse
	bearer := http.Header{"Authorization": {"Bearer " + token}}
	err := c.http.PostJSON(ctx, verifyPath, bearer, verifyRequest{Token: token}, &out)
	if errors.Is(err, httpclient.ErrUnauthorized) {
		return auth.Claims{}, ErrUnauthorized
	}
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Role:   strings.TrimSpace(out.Role),
	}, nil
}
