package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/authz/authztest"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/ports/auth"
)

type fakeIssuer struct{}

func (fakeIssuer) Issue(_ context.Context, c auth.Claims) (auth.IssuedToken, error) {
	return auth.IssuedToken{Token: "tok-" + c.UserID + "-" + c.Role, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func newService(t *testing.T, dir *authztest.Directory, opts ...users.Option) *users.Service {
	t.Helper()
	opts = append(opts, users.WithHashCost(bcrypt.MinCost))
	return users.NewService(memory.NewUsersRepo(), fakeIssuer{}, dir.RuleSet(), opts...)
}

func TestRegister_CreatesRoleAndProfile(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())

	u, err := svc.Register(context.Background(), users.RegisterInput{
		Email: " Ana@Example.com ", Password: "password1", Role: "sitter",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, []string{"sitter"}, u.Roles)
	require.NotNil(t, u.Profile)
	assert.Equal(t, "ana", u.Profile.DisplayName)
	assert.NotEqual(t, "password1", u.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())
	ctx := context.Background()

	_, err := svc.Register(ctx, users.RegisterInput{Email: "nope", Password: "password1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "short"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1", Role: "admin"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())
	ctx := context.Background()

	_, err := svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, users.RegisterInput{Email: "A@B.CO", Password: "password2"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_BootstrapAdminKeepsPrimaryRole(t *testing.T) {
	svc := newService(t, authztest.NewDirectory(), users.WithAdminEmails([]string{"root@pets.io"}))

	u, err := svc.Register(context.Background(), users.RegisterInput{Email: "root@pets.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner", "admin"}, u.Roles)
	assert.Equal(t, "owner", u.PrimaryRole())
}

func TestLogin(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())
	ctx := context.Background()
	u, err := svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1", Role: "kennel"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "a@b.co", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok-"+u.ID+"-kennel", sess.Token)
	assert.Equal(t, u.ID, sess.User.ID)

	_, err = svc.Login(ctx, "a@b.co", "wrong-pass")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	_, err = svc.Login(ctx, "ghost@b.co", "password1")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestUpdateProfile_SelfOnly(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())
	ctx := context.Background()
	a, err := svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, users.RegisterInput{Email: "b@b.co", Password: "password1"})
	require.NoError(t, err)

	name := "Ana"
	p, err := svc.UpdateProfile(ctx, a.ID, a.ID, users.ProfileInput{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)

	_, err = svc.UpdateProfile(ctx, b.ID, a.ID, users.ProfileInput{DisplayName: &name})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.UpdateProfile(ctx, a.ID, "missing", users.ProfileInput{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGrantRole_AdminOnly(t *testing.T) {
	dir := authztest.NewDirectory()
	svc := newService(t, dir)
	ctx := context.Background()
	a, err := svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.GrantRole(ctx, a.ID, a.ID, "sitter")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	dir.SetAdmin("root")
	u, err := svc.GrantRole(ctx, "root", a.ID, "sitter")
	require.NoError(t, err)
	assert.Equal(t, []string{"owner", "sitter"}, u.Roles)

	_, err = svc.GrantRole(ctx, "root", a.ID, "sitter")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestSnippet(t *testing.T) {
	svc := newService(t, authztest.NewDirectory())
	ctx := context.Background()
	a, err := svc.Register(ctx, users.RegisterInput{Email: "a@b.co", Password: "password1", DisplayName: "Ana"})
	require.NoError(t, err)

	s, err := svc.Snippet(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, users.Snippet{UserID: a.ID, DisplayName: "Ana"}, s)

	s, err = svc.Snippet(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", s.UserID)
}
