package userroles

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/users"
)

// RoleLister es la parte del store de usuarios que necesita el resolver.
type RoleLister interface {
	ListRoles(ctx context.Context, userID string) ([]users.UserRole, error)
}

// Resolver implementa capabilities.RoleResolver leyendo la tabla user_roles.
// Va directo al store (no al service) para no depender del RuleSet que lo usa.
type Resolver struct {
	roles RoleLister
}

func NewResolver(roles RoleLister) *Resolver {
	return &Resolver{roles: roles}
}

// HasRole responde si userID tiene el rol de plataforma role.
func (r *Resolver) HasRole(ctx context.Context, userID, role string) (bool, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return false, errors.New("role required")
	}
	if r == nil || r.roles == nil {
		return false, errors.New("role resolver not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}

	rs, err := r.roles.ListRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, ur := range rs {
		if strings.EqualFold(ur.Role, role) {
			return true, nil
		}
	}
	return false, nil
}
