package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/platform/apperr"
)

type fakeDirectory struct {
	clubs   map[string]Membership // key clubID/userID
	kennels map[string]Membership
	admins  map[string]bool
	err     error
	calls   []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		clubs:   map[string]Membership{},
		kennels: map[string]Membership{},
		admins:  map[string]bool{},
	}
}

func (d *fakeDirectory) ClubMembership(_ context.Context, clubID, userID string) (Membership, error) {
	d.calls = append(d.calls, "club")
	if d.err != nil {
		return Membership{}, d.err
	}
	m, ok := d.clubs[clubID+"/"+userID]
	if !ok {
		return Membership{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (d *fakeDirectory) KennelMembership(_ context.Context, kennelID, userID string) (Membership, error) {
	d.calls = append(d.calls, "kennel")
	if d.err != nil {
		return Membership{}, d.err
	}
	m, ok := d.kennels[kennelID+"/"+userID]
	if !ok {
		return Membership{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (d *fakeDirectory) IsPlatformAdmin(_ context.Context, userID string) (bool, error) {
	d.calls = append(d.calls, "admin")
	if d.err != nil {
		return false, d.err
	}
	return d.admins[userID], nil
}

func TestAuthorize_OwnerOfPet(t *testing.T) {
	rs := NewRuleSet(newFakeDirectory())

	d, err := rs.Authorize(context.Background(), "u1", ActionManagePet, Resource{OwnerID: "u1"})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, "owner", d.Via)

	d, err = rs.Authorize(context.Background(), "u2", ActionManagePet, Resource{OwnerID: "u1"})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestAuthorize_KennelPetManagers(t *testing.T) {
	dir := newFakeDirectory()
	dir.kennels["k1/emp"] = Membership{Role: RoleEmployee}
	dir.kennels["k1/mem"] = Membership{Role: RoleMember, Status: MemberPending}
	rs := NewRuleSet(dir)
	res := Resource{OwnerID: "owner", Issuer: KennelIssuer("k1")}

	d, err := rs.Authorize(context.Background(), "emp", ActionManagePet, res)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, "kennel:EMPLOYEE", d.Via)

	d, err = rs.Authorize(context.Background(), "mem", ActionManagePet, res)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestAuthorize_ClubRequiresAcceptedStatus(t *testing.T) {
	dir := newFakeDirectory()
	dir.clubs["c1/pending-owner"] = Membership{Role: RoleOwner, Status: MemberPending}
	dir.clubs["c1/emp"] = Membership{Role: RoleEmployee, Status: MemberAccepted}
	rs := NewRuleSet(dir)
	res := Resource{Issuer: ClubIssuer("c1")}

	d, err := rs.Authorize(context.Background(), "pending-owner", ActionProcessEnrollment, res)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, "club membership not accepted", d.Reason)

	d, err = rs.Authorize(context.Background(), "emp", ActionProcessEnrollment, res)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAuthorize_ProcessingSetsDifferByOrgKind(t *testing.T) {
	dir := newFakeDirectory()
	dir.clubs["c1/emp"] = Membership{Role: RoleEmployee, Status: MemberAccepted}
	dir.kennels["k1/emp"] = Membership{Role: RoleEmployee}
	rs := NewRuleSet(dir)

	for _, a := range []Action{ActionProcessEnrollment, ActionProcessEntry, ActionProcessJoinRequest, ActionApproveCertification} {
		d, err := rs.Authorize(context.Background(), "emp", a, Resource{Issuer: ClubIssuer("c1")})
		require.NoError(t, err)
		assert.True(t, d.Allowed, "club employee should %s", a)

		d, err = rs.Authorize(context.Background(), "emp", a, Resource{Issuer: KennelIssuer("k1")})
		require.NoError(t, err)
		assert.False(t, d.Allowed, "kennel employee should not %s", a)
	}
}

func TestAuthorize_CourseCreationAcceptsClubAdmin(t *testing.T) {
	dir := newFakeDirectory()
	dir.clubs["c1/adm"] = Membership{Role: RoleAdmin, Status: MemberAccepted}
	rs := NewRuleSet(dir)

	d, err := rs.Authorize(context.Background(), "adm", ActionCreateCourse, Resource{Issuer: ClubIssuer("c1")})
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = rs.Authorize(context.Background(), "adm", ActionCreateCompetition, Resource{Issuer: ClubIssuer("c1")})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestAuthorize_OnlyPresentIssuerIsConsulted(t *testing.T) {
	dir := newFakeDirectory()
	dir.clubs["c1/u"] = Membership{Role: RoleOwner, Status: MemberAccepted}
	rs := NewRuleSet(dir)

	d, err := rs.Authorize(context.Background(), "u", ActionProcessEntry, Resource{Issuer: KennelIssuer("c1")})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, []string{"kennel"}, dir.calls)
}

func TestAuthorize_AdminFallback(t *testing.T) {
	dir := newFakeDirectory()
	dir.admins["root"] = true
	rs := NewRuleSet(dir)
	res := Resource{Issuer: ClubIssuer("c1")}

	d, err := rs.Authorize(context.Background(), "root", ActionRejectCertification, res)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, "admin", d.Via)

	// approve no tiene override de admin
	d, err = rs.Authorize(context.Background(), "root", ActionApproveCertification, res)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = rs.Authorize(context.Background(), "root", ActionProcessPaperwork, Resource{})
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = rs.Authorize(context.Background(), "someone", ActionProcessPaperwork, Resource{})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestAuthorize_StoreErrorPropagates(t *testing.T) {
	dir := newFakeDirectory()
	dir.err = errors.New("db down")
	rs := NewRuleSet(dir)

	_, err := rs.Authorize(context.Background(), "u", ActionProcessEntry, Resource{Issuer: ClubIssuer("c1")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestRequire_ReturnsForbidden(t *testing.T) {
	rs := NewRuleSet(newFakeDirectory())

	err := rs.Require(context.Background(), "u", ActionManageMembers, Resource{Issuer: KennelIssuer("k1")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = rs.Require(context.Background(), "", ActionEditProfile, Resource{OwnerID: ""})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestRequireAdmin(t *testing.T) {
	dir := newFakeDirectory()
	dir.admins["root"] = true
	rs := NewRuleSet(dir)

	assert.NoError(t, rs.RequireAdmin(context.Background(), "root"))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(rs.RequireAdmin(context.Background(), "u")))
}

func TestIssuerColumnsRoundTrip(t *testing.T) {
	club, kennel := ClubIssuer("c1").Columns()
	require.NotNil(t, club)
	assert.Nil(t, kennel)
	assert.Equal(t, ClubIssuer("c1"), IssuerFromColumns(club, kennel))

	assert.True(t, IssuerFromColumns(nil, nil).IsZero())
	assert.Equal(t, "kennel:k9", KennelIssuer("k9").String())

	k, ok := ParseOrgKind(" kennel ")
	assert.True(t, ok)
	assert.Equal(t, OrgKennel, k)
	_, ok = ParseOrgKind("shelter")
	assert.False(t, ok)
}

func TestParseIssuer(t *testing.T) {
	iss, err := ParseIssuer("", "c1", "")
	require.NoError(t, err)
	assert.Equal(t, ClubIssuer("c1"), iss)

	iss, err = ParseIssuer("kennel", "", "k1")
	require.NoError(t, err)
	assert.Equal(t, KennelIssuer("k1"), iss)

	for _, tc := range []struct{ kind, club, kennel string }{
		{"", "", ""},
		{"", "c1", "k1"},
		{"CLUB", "", "k1"},
		{"SHELTER", "c1", ""},
	} {
		_, err := ParseIssuer(tc.kind, tc.club, tc.kennel)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "%+v", tc)
	}
}
