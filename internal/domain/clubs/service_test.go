package clubs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/app"
	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

func newClub(t *testing.T) (*clubs.Service, clubs.Club) {
	t.Helper()
	svc := app.NewServices(app.MemoryStores(), app.Deps{}).Clubs
	c, err := svc.Create(context.Background(), "owner", clubs.CreateInput{Name: " Club Canino "})
	require.NoError(t, err)
	return svc, c
}

func TestCreate_CreatorIsAcceptedOwner(t *testing.T) {
	svc, c := newClub(t)
	assert.Equal(t, "Club Canino", c.Name)

	members, err := svc.ListMembers(context.Background(), "owner", c.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, authz.RoleOwner, members[0].Role)
	assert.Equal(t, workflow.StatusAccepted, members[0].Status)
}

func TestJoin_DuplicateReturnsExisting(t *testing.T) {
	svc, c := newClub(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, m.Status)

	_, err = svc.Join(ctx, "ana", c.ID)
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, m.ID, e.ExistingID)
	assert.Equal(t, "PENDING", e.ExistingStatus)

	// el owner también es fila existente
	_, err = svc.Join(ctx, "owner", c.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestJoin_UnknownClub(t *testing.T) {
	svc, _ := newClub(t)
	_, err := svc.Join(context.Background(), "ana", "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProcessMember_RejectDeletesAndAllowsRejoin(t *testing.T) {
	svc, c := newClub(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", c.ID)
	require.NoError(t, err)

	res, err := svc.ProcessMember(ctx, "owner", c.ID, m.ID, "REJECT")
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Nil(t, res.Member)

	_, err = svc.Join(ctx, "ana", c.ID)
	assert.NoError(t, err)
}

func TestProcessMember_AuthorizationAndTerminal(t *testing.T) {
	svc, c := newClub(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", c.ID)
	require.NoError(t, err)

	_, err = svc.ProcessMember(ctx, "ana", c.ID, m.ID, "APPROVE")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.ProcessMember(ctx, "owner", c.ID, "nope", "APPROVE")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	res, err := svc.ProcessMember(ctx, "owner", c.ID, m.ID, "approve")
	require.NoError(t, err)
	require.NotNil(t, res.Member)
	assert.Equal(t, workflow.StatusAccepted, res.Member.Status)
	assert.NotNil(t, res.Member.JoinedAt)

	_, err = svc.ProcessMember(ctx, "owner", c.ID, m.ID, "REJECT")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestChangeMemberRole_EmployeeCanProcess(t *testing.T) {
	svc, c := newClub(t)
	ctx := context.Background()

	ana, err := svc.Join(ctx, "ana", c.ID)
	require.NoError(t, err)
	_, err = svc.ProcessMember(ctx, "owner", c.ID, ana.ID, "APPROVE")
	require.NoError(t, err)

	_, err = svc.ChangeMemberRole(ctx, "ana", c.ID, ana.ID, "OWNER")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.ChangeMemberRole(ctx, "owner", c.ID, ana.ID, "BOSS")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := svc.ChangeMemberRole(ctx, "owner", c.ID, ana.ID, "employee")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleEmployee, updated.Role)

	bob, err := svc.Join(ctx, "bob", c.ID)
	require.NoError(t, err)
	_, err = svc.ProcessMember(ctx, "ana", c.ID, bob.ID, "APPROVE")
	assert.NoError(t, err)
}

func TestNominateCertifier_CreateOrReuse(t *testing.T) {
	svc, c := newClub(t)
	ctx := context.Background()

	_, _, err := svc.NominateCertifier(ctx, "owner", c.ID, "stranger")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	ana, err := svc.Join(ctx, "ana", c.ID)
	require.NoError(t, err)
	_, err = svc.ProcessMember(ctx, "owner", c.ID, ana.ID, "APPROVE")
	require.NoError(t, err)

	_, _, err = svc.NominateCertifier(ctx, "ana", c.ID, "ana")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	first, created, err := svc.NominateCertifier(ctx, "owner", c.ID, "ana")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.NominateCertifier(ctx, "owner", c.ID, "ana")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	list, err := svc.ListCertifiers(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
