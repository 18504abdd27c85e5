package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/ports/auth"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: "s3cret", Issuer: "pet-marketplace", TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func TestIssueVerify(t *testing.T) {
	m := newTestManager(t)

	issued, err := m.Issue(context.Background(), auth.Claims{UserID: "u1", Email: "a@b.c", Role: "sitter"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)

	c, err := m.Verify(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.c", Role: "sitter"}, c)
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	issued, err := m.Issue(context.Background(), auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = m.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_WrongSecretOrIssuer(t *testing.T) {
	m := newTestManager(t)
	issued, err := m.Issue(context.Background(), auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	other, err := NewManager(Config{Secret: "other", Issuer: "pet-marketplace"})
	require.NoError(t, err)
	_, err = other.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	otherIss, err := NewManager(Config{Secret: "s3cret", Issuer: "someone-else"})
	require.NoError(t, err)
	_, err = otherIss.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrSecretRequired)
}
