// Package orgdirectory implementa authz.Directory y authz.OrgLookup sobre los
// stores de clubs, kennels y roles de usuario.
package orgdirectory

import (
	"context"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/ports/capabilities"
)

type Directory struct {
	clubs   clubs.Repository
	kennels kennels.Repository
	roles   capabilities.RoleResolver
}

func New(c clubs.Repository, k kennels.Repository, roles capabilities.RoleResolver) *Directory {
	return &Directory{clubs: c, kennels: k, roles: roles}
}

func (d *Directory) ClubMembership(ctx context.Context, clubID, userID string) (authz.Membership, error) {
	m, err := d.clubs.FindMember(ctx, clubID, userID)
	if err != nil {
		return authz.Membership{}, err
	}
	return authz.Membership{Role: m.Role, Status: authz.MemberStatus(m.Status)}, nil
}

func (d *Directory) KennelMembership(ctx context.Context, kennelID, userID string) (authz.Membership, error) {
	m, err := d.kennels.FindMember(ctx, kennelID, userID)
	if err != nil {
		return authz.Membership{}, err
	}
	return authz.Membership{Role: m.Role, Status: authz.MemberStatus(m.Status)}, nil
}

func (d *Directory) IsPlatformAdmin(ctx context.Context, userID string) (bool, error) {
	return d.roles.HasRole(ctx, userID, users.RoleAdmin)
}

func (d *Directory) IssuerExists(ctx context.Context, iss authz.Issuer) error {
	switch iss.Kind {
	case authz.OrgClub:
		_, err := d.clubs.GetByID(ctx, iss.ID)
		return apperr.MapNotFound(err, "Club not found")
	case authz.OrgKennel:
		_, err := d.kennels.GetByID(ctx, iss.ID)
		return apperr.MapNotFound(err, "Kennel not found")
	}
	return apperr.Validation("invalid issuer")
}
