package kennels_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/app"
	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

func newKennel(t *testing.T) (*kennels.Service, kennels.Kennel) {
	t.Helper()
	svcs := app.NewServices(app.MemoryStores(), app.Deps{})
	k, err := svcs.Kennels.Create(context.Background(), "owner", kennels.CreateInput{Name: "  Los Andes  ", City: "Mendoza"})
	require.NoError(t, err)
	return svcs.Kennels, k
}

func TestCreate_OwnerAccepted(t *testing.T) {
	svc, k := newKennel(t)
	ctx := context.Background()
	assert.Equal(t, "Los Andes", k.Name)

	members, err := svc.ListMembers(ctx, "owner", k.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, authz.RoleOwner, members[0].Role)
	assert.Equal(t, workflow.StatusAccepted, members[0].Status)

	_, err = svc.Create(ctx, "owner", kennels.CreateInput{Name: " "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestJoin_DuplicateAndProcess(t *testing.T) {
	svc, k := newKennel(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", k.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, m.Status)

	_, err = svc.Join(ctx, "ana", k.ID)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, m.ID, ae.ExistingID)

	_, err = svc.ProcessMember(ctx, "ana", k.ID, m.ID, "APPROVE")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	res, err := svc.ProcessMember(ctx, "owner", k.ID, m.ID, "approve")
	require.NoError(t, err)
	require.NotNil(t, res.Member)
	assert.Equal(t, workflow.StatusAccepted, res.Member.Status)
	assert.NotNil(t, res.Member.JoinedAt)

	_, err = svc.ProcessMember(ctx, "owner", k.ID, m.ID, "REJECT")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Join(ctx, "bob", "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReject_DeletesRow(t *testing.T) {
	svc, k := newKennel(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", k.ID)
	require.NoError(t, err)
	res, err := svc.ProcessMember(ctx, "owner", k.ID, m.ID, "REJECT")
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Nil(t, res.Member)

	_, err = svc.Join(ctx, "ana", k.ID)
	assert.NoError(t, err)
}

func TestChangeMemberRole_ManagerCanViewMembers(t *testing.T) {
	svc, k := newKennel(t)
	ctx := context.Background()

	m, err := svc.Join(ctx, "ana", k.ID)
	require.NoError(t, err)

	_, err = svc.ChangeMemberRole(ctx, "owner", k.ID, m.ID, "MANAGER")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "pending members keep their role")

	_, err = svc.ProcessMember(ctx, "owner", k.ID, m.ID, "APPROVE")
	require.NoError(t, err)

	_, err = svc.ListMembers(ctx, "ana", k.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.ChangeMemberRole(ctx, "owner", k.ID, m.ID, "ADMIN")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := svc.ChangeMemberRole(ctx, "owner", k.ID, m.ID, "manager")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleManager, got.Role)

	members, err := svc.ListMembers(ctx, "ana", k.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// un MANAGER no procesa solicitudes de ingreso
	p, err := svc.Join(ctx, "bob", k.ID)
	require.NoError(t, err)
	_, err = svc.ProcessMember(ctx, "ana", k.ID, p.ID, "APPROVE")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
