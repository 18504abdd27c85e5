package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"
)

type staticVerifier struct {
	token  string
	claims auth.Claims
}

func (v staticVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != v.token {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return v.claims, nil
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := GetClaims(r.Context())
		_, _ = w.Write([]byte(c.UserID + "|" + c.Role))
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	h := AuthContext(nil)(echoUser())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Debug-User-ID", "u1")
	req.Header.Set("X-Debug-Role", "sitter")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, "u1|sitter", rec.Body.String())
}

func TestAuthContext_BearerAndQueryToken(t *testing.T) {
	v := staticVerifier{token: "tok", claims: auth.Claims{UserID: "u2", Role: "owner"}}
	h := AuthContext(v)(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "u2|owner", rec.Body.String())

	// el query param solo vale en upgrades de websocket
	req = httptest.NewRequest(http.MethodGet, "/match/m1/ws?access_token=tok", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "|", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/match/m1/ws?access_token=tok", nil)
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "u2|owner", rec.Body.String())
}

func TestAuthContext_InvalidTokenLeavesAnonymous(t *testing.T) {
	v := staticVerifier{token: "tok"}
	h := AuthContext(v)(RequireUser(echoUser()))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
}

func TestRecover_WritesJSON500(t *testing.T) {
	h := Recover(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestRateLimiter_PerActor(t *testing.T) {
	l := NewRateLimiter(1, 2)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestRateLimiter_Middleware429(t *testing.T) {
	l := NewRateLimiter(1, 1)
	h := AuthContext(nil)(l.Middleware(echoUser()))

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Debug-User-ID", "u1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
