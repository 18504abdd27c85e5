package certifications_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/authz/authztest"
	"pet-marketplace/internal/domain/certifications"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

type fakeCourses map[string]courses.Course

func (f fakeCourses) Get(_ context.Context, id string) (courses.Course, error) {
	c, ok := f[id]
	if !ok {
		return courses.Course{}, apperr.NotFound("Course not found")
	}
	return c, nil
}

type fakePets struct {
	owners map[string]string
	rules  *authz.RuleSet
}

func (f fakePets) OwnerOf(_ context.Context, petID string) (string, error) {
	o, ok := f.owners[petID]
	if !ok {
		return "", apperr.NotFound("Pet not found")
	}
	return o, nil
}

func (f fakePets) RequireManager(ctx context.Context, actorID, petID string) (pets.Pet, error) {
	o, err := f.OwnerOf(ctx, petID)
	if err != nil {
		return pets.Pet{}, err
	}
	if err := f.rules.Require(ctx, actorID, authz.ActionManagePet, authz.Resource{OwnerID: o}); err != nil {
		return pets.Pet{}, err
	}
	return pets.Pet{ID: petID, OwnerID: o}, nil
}

func newService(dir *authztest.Directory) *certifications.Service {
	clubID, kennelID := "club-1", "kennel-1"
	c := fakeCourses{
		"course-club":   {ID: "course-club", Title: "Obediencia", IssuerType: authz.OrgClub, ClubID: &clubID},
		"course-kennel": {ID: "course-kennel", Title: "Cría", IssuerType: authz.OrgKennel, KennelID: &kennelID},
	}
	rules := dir.RuleSet()
	p := fakePets{owners: map[string]string{"pet-1": "ana"}, rules: rules}
	return certifications.NewService(memory.NewCertificationsRepo(), rules, c, p)
}

func TestRequest(t *testing.T) {
	svc := newService(authztest.NewDirectory())
	ctx := context.Background()

	_, err := svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-club", TargetType: "USER", PetID: "pet-1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "only available for pets")

	_, err = svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-club"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Request(ctx, "bob", certifications.RequestInput{CourseID: "course-club", PetID: "pet-1"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "nope", PetID: "pet-1"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	c, err := svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-club", PetID: "pet-1", Notes: " hola "})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, c.Status)
	assert.Equal(t, "hola", c.Notes)
	require.NotNil(t, c.IssuingClubID)
	assert.Equal(t, "club-1", *c.IssuingClubID)
	assert.Nil(t, c.IssuingKennelID)

	_, err = svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-club", PetID: "pet-1"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, c.ID, ae.ExistingID)

	list, err := svc.ListByPet(ctx, "ana", "pet-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListByPet_OnlyManagers(t *testing.T) {
	svc := newService(authztest.NewDirectory())
	ctx := context.Background()

	_, err := svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-kennel", PetID: "pet-1"})
	require.NoError(t, err)

	_, err = svc.ListByPet(ctx, "bob", "pet-1")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.ListByPet(ctx, "ana", "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	list, err := svc.ListByPet(ctx, "ana", " pet-1 ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "course-kennel", list[0].CourseID)
}

func TestProcess_Approve(t *testing.T) {
	dir := authztest.NewDirectory().
		SetClubMember("club-1", "emp", authz.RoleEmployee, authz.MemberAccepted).
		SetClubMember("club-1", "member", authz.RoleMember, authz.MemberAccepted).
		SetAdmin("root")
	svc := newService(dir)
	ctx := context.Background()

	c, err := svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-club", PetID: "pet-1"})
	require.NoError(t, err)

	for _, actor := range []string{"member", "root", "ana"} {
		_, err = svc.Process(ctx, actor, c.ID, workflow.ProcessRequest{Action: "APPROVE"})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err), actor)
	}

	got, err := svc.Process(ctx, "emp", c.ID, workflow.ProcessRequest{Action: "APPROVE"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)
	require.NotNil(t, got.VerifiedByUserID)
	assert.Equal(t, "emp", *got.VerifiedByUserID)
	assert.NotNil(t, got.IssuedAt)

	_, err = svc.Process(ctx, "emp", c.ID, workflow.ProcessRequest{Action: "REJECT"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestProcess_RejectByPlatformAdmin(t *testing.T) {
	dir := authztest.NewDirectory().AddKennel("kennel-1").SetAdmin("root")
	svc := newService(dir)
	ctx := context.Background()

	c, err := svc.Request(ctx, "ana", certifications.RequestInput{CourseID: "course-kennel", PetID: "pet-1"})
	require.NoError(t, err)

	got, err := svc.Process(ctx, "root", c.ID, workflow.ProcessRequest{Action: "REJECT", Notes: "falta documentación"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, got.Status)
	assert.Equal(t, "falta documentación", got.Notes)
	assert.Nil(t, got.VerifiedByUserID)

	_, err = svc.Process(ctx, "root", "missing", workflow.ProcessRequest{Action: "REJECT"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
