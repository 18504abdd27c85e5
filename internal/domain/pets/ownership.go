package pets

import (
	"context"

	"pet-marketplace/internal/authz"
)

// OwnerOf expone el ownerId de una mascota.
// Lo usan courses, competitions y certifications para validar "pet owner" sin importar este paquete entero.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

// Resource arma el descriptor de authz: dueño directo + kennel vinculado (si hay).
func (p Pet) Resource() authz.Resource {
	return authz.Resource{OwnerID: p.OwnerID, Issuer: authz.IssuerFromColumns(nil, p.KennelID)}
}

// RequireManager devuelve la mascota si el actor puede gestionarla (404 antes que 403).
func (s *Service) RequireManager(ctx context.Context, actorID, petID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionManagePet, p.Resource()); err != nil {
		return Pet{}, err
	}
	return p, nil
}
