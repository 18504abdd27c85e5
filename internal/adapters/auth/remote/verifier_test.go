package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/ports/auth"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " u1 ", Email: "a@b.c", Role: "owner"})
		case "empty":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier_OK(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "key"})
	require.NoError(t, err)

	claims, err := NewVerifier(c).Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.c", Role: "owner"}, claims)
}

func TestVerifier_UnauthorizedMapsToInvalidToken(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "key"})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_UpstreamErrors(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "key"})
	require.NoError(t, err)
	v := NewVerifier(c)

	_, err = v.Verify(context.Background(), "boom")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = NewVerifier(c).Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
