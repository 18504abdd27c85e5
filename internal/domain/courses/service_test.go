package courses_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/app"
	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

type world struct {
	svcs   *app.Services
	clubID string
}

func newWorld(t *testing.T) world {
	t.Helper()
	svcs := app.NewServices(app.MemoryStores(), app.Deps{})
	c, err := svcs.Clubs.Create(context.Background(), "club-owner", clubs.CreateInput{Name: "Club"})
	require.NoError(t, err)
	return world{svcs: svcs, clubID: c.ID}
}

// member agrega userID como miembro ACCEPTED del club con el rol dado.
func (w world) member(t *testing.T, userID string, role authz.Role) {
	t.Helper()
	ctx := context.Background()
	m, err := w.svcs.Clubs.Join(ctx, userID, w.clubID)
	require.NoError(t, err)
	_, err = w.svcs.Clubs.ProcessMember(ctx, "club-owner", w.clubID, m.ID, "APPROVE")
	require.NoError(t, err)
	if role != authz.RoleMember {
		_, err = w.svcs.Clubs.ChangeMemberRole(ctx, "club-owner", w.clubID, m.ID, string(role))
		require.NoError(t, err)
	}
}

func (w world) course(t *testing.T) courses.Course {
	t.Helper()
	c, err := w.svcs.Courses.Create(context.Background(), "club-owner", courses.CreateInput{Title: "Obediencia", ClubID: w.clubID})
	require.NoError(t, err)
	return c
}

func TestCreate_IssuerRules(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.member(t, "plain", authz.RoleMember)
	w.member(t, "club-admin", authz.RoleAdmin)

	c := w.course(t)
	assert.Equal(t, authz.OrgClub, c.IssuerType)
	require.NotNil(t, c.ClubID)
	assert.Nil(t, c.KennelID)

	_, err := w.svcs.Courses.Create(ctx, "club-admin", courses.CreateInput{Title: "Agility", IssuerType: "CLUB", ClubID: w.clubID})
	assert.NoError(t, err)

	_, err = w.svcs.Courses.Create(ctx, "plain", courses.CreateInput{Title: "X", ClubID: w.clubID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = w.svcs.Courses.Create(ctx, "club-owner", courses.CreateInput{Title: "X", ClubID: "missing"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = w.svcs.Courses.Create(ctx, "club-owner", courses.CreateInput{Title: "X", ClubID: w.clubID, KennelID: "k"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	k, err := w.svcs.Kennels.Create(ctx, "kennel-owner", kennels.CreateInput{Name: "K"})
	require.NoError(t, err)
	_, err = w.svcs.Courses.Create(ctx, "kennel-owner", courses.CreateInput{Title: "Cría", IssuerType: "kennel", KennelID: k.ID})
	assert.NoError(t, err)

	byClub, err := w.svcs.Courses.List(ctx, "CLUB", w.clubID, "")
	require.NoError(t, err)
	assert.Len(t, byClub, 2)
	all, err := w.svcs.Courses.List(ctx, "", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEnroll_PetOwnerOnlyAndDuplicate(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	c := w.course(t)

	p, err := w.svcs.Pets.Create(ctx, "ana", pets.CreateInput{Name: "Milo"})
	require.NoError(t, err)

	_, err = w.svcs.Courses.Enroll(ctx, "bob", c.ID, courses.EnrollInput{PetID: p.ID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	e, err := w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{TargetType: "PET", PetID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApplied, e.Status)
	assert.Equal(t, p.ID, e.TargetID())

	_, err = w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{PetID: p.ID})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{PetID: "missing"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEnroll_UserTarget(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	c := w.course(t)

	e, err := w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{})
	require.NoError(t, err)
	assert.Equal(t, courses.TargetUser, e.TargetType)
	require.NotNil(t, e.UserID)
	assert.Equal(t, "ana", *e.UserID)

	_, err = w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{UserID: "bob"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{TargetType: "HORSE"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = w.svcs.Courses.Enroll(ctx, "ana", "missing", courses.EnrollInput{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProcessEnrollment_StaffOnly(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	c := w.course(t)
	w.member(t, "employee", authz.RoleEmployee)
	w.member(t, "plain", authz.RoleMember)

	e, err := w.svcs.Courses.Enroll(ctx, "ana", c.ID, courses.EnrollInput{})
	require.NoError(t, err)

	_, err = w.svcs.Courses.ProcessEnrollment(ctx, "plain", e.ID, workflow.ProcessRequest{Action: "APPROVE"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = w.svcs.Courses.ListEnrollments(ctx, "ana", c.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := w.svcs.Courses.ProcessEnrollment(ctx, "employee", e.ID, workflow.ProcessRequest{Action: "REJECT", Notes: "cupo lleno"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, got.Status)
	assert.Equal(t, "cupo lleno", got.Notes)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, "employee", *got.ProcessedByID)

	_, err = w.svcs.Courses.ProcessEnrollment(ctx, "employee", e.ID, workflow.ProcessRequest{Action: "APPROVE"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	list, err := w.svcs.Courses.ListEnrollments(ctx, "club-owner", c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssignCertifier(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	c := w.course(t)
	w.member(t, "ana", authz.RoleMember)

	_, err := w.svcs.Courses.AssignCertifier(ctx, "club-owner", c.ID, "stranger")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = w.svcs.Courses.AssignCertifier(ctx, "ana", c.ID, "ana")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	a, err := w.svcs.Courses.AssignCertifier(ctx, "club-owner", c.ID, "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", a.UserID)

	_, err = w.svcs.Courses.AssignCertifier(ctx, "club-owner", c.ID, "ana")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	list, err := w.svcs.Courses.ListCertifiers(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	k, err := w.svcs.Kennels.Create(ctx, "kennel-owner", kennels.CreateInput{Name: "K"})
	require.NoError(t, err)
	kc, err := w.svcs.Courses.Create(ctx, "kennel-owner", courses.CreateInput{Title: "Cría", KennelID: k.ID})
	require.NoError(t, err)
	_, err = w.svcs.Courses.AssignCertifier(ctx, "kennel-owner", kc.ID, "ana")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
