// Package authz concentra las reglas de autorización: ownership directo,
// rol en la organización emisora y override de admin de plataforma.
package authz

import (
	"context"
	"fmt"
	"strings"

	"pet-marketplace/internal/platform/apperr"
)

// MemberStatus de una fila de membresía.
type MemberStatus string

const (
	MemberPending  MemberStatus = "PENDING"
	MemberAccepted MemberStatus = "ACCEPTED"
)

// Membership es la vista mínima de una fila ClubMember/KennelMember.
type Membership struct {
	Role   Role
	Status MemberStatus
}

// Directory resuelve membresías y el rol "admin" de plataforma.
// Un lookup sin fila devuelve apperr.ErrRecordNotFound.
type Directory interface {
	ClubMembership(ctx context.Context, clubID, userID string) (Membership, error)
	KennelMembership(ctx context.Context, kennelID, userID string) (Membership, error)
	IsPlatformAdmin(ctx context.Context, userID string) (bool, error)
}

// OrgLookup verifica que el emisor exista (404 antes de autorizar).
type OrgLookup interface {
	IssuerExists(ctx context.Context, iss Issuer) error
}

// Resource describe el recurso sobre el que se decide.
type Resource struct {
	// OwnerID es el dueño directo (pet.ownerId, match.ownerId, profile.userId...).
	OwnerID string
	// Issuer es la organización que controla el recurso, si la hay.
	Issuer Issuer
}

// Decision es el resultado tipado de Authorize.
type Decision struct {
	Allowed bool
	// Via indica qué regla permitió: "owner", "club:OWNER", "kennel:EMPLOYEE", "admin".
	Via    string
	Reason string
}

func allow(via string) Decision { return Decision{Allowed: true, Via: via} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// RuleSet evalúa policies contra un Directory.
type RuleSet struct {
	dir Directory
}

func NewRuleSet(dir Directory) *RuleSet {
	return &RuleSet{dir: dir}
}

// IsSelf: el actor es el sujeto.
func IsSelf(actorID, subjectID string) bool {
	actorID = strings.TrimSpace(actorID)
	return actorID != "" && actorID == strings.TrimSpace(subjectID)
}

// IsPlatformAdmin es la única capability de admin; todos los overrides pasan por acá.
func (s *RuleSet) IsPlatformAdmin(ctx context.Context, actorID string) (bool, error) {
	if strings.TrimSpace(actorID) == "" {
		return false, nil
	}
	return s.dir.IsPlatformAdmin(ctx, actorID)
}

// Authorize decide (actor, action, resource). Los errores son fallas del store.
func (s *RuleSet) Authorize(ctx context.Context, actorID string, action Action, res Resource) (Decision, error) {
	p, ok := policies[action]
	if !ok {
		return deny("unknown action " + string(action)), nil
	}
	if strings.TrimSpace(actorID) == "" {
		return deny("anonymous actor"), nil
	}

	if p.owner && IsSelf(actorID, res.OwnerID) {
		return allow("owner"), nil
	}

	if !res.Issuer.IsZero() {
		d, err := s.orgDecision(ctx, actorID, p, res.Issuer)
		if err != nil {
			return Decision{}, err
		}
		if d.Allowed {
			return d, nil
		}
	}

	if p.admin {
		isAdmin, err := s.dir.IsPlatformAdmin(ctx, actorID)
		if err != nil {
			return Decision{}, err
		}
		if isAdmin {
			return allow("admin"), nil
		}
	}

	return deny(fmt.Sprintf("%s not allowed on %s", action, res.Issuer)), nil
}

// Require es Authorize que devuelve Forbidden en deny.
func (s *RuleSet) Require(ctx context.Context, actorID string, action Action, res Resource) error {
	d, err := s.Authorize(ctx, actorID, action, res)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return apperr.Forbidden("forbidden").WithDetails(d.Reason)
	}
	return nil
}

// RequireAdmin exige el rol de plataforma "admin".
func (s *RuleSet) RequireAdmin(ctx context.Context, actorID string) error {
	ok, err := s.IsPlatformAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("forbidden").WithDetails("platform admin required")
	}
	return nil
}

// orgDecision hace el match sobre el tag del Issuer: solo se consulta la org presente.
func (s *RuleSet) orgDecision(ctx context.Context, actorID string, p policy, iss Issuer) (Decision, error) {
	switch iss.Kind {
	case OrgClub:
		if len(p.club) == 0 {
			return deny("action not available for clubs"), nil
		}
		m, err := s.dir.ClubMembership(ctx, iss.ID, actorID)
		if apperr.IsRecordNotFound(err) {
			return deny("not a club member"), nil
		}
		if err != nil {
			return Decision{}, err
		}
		if m.Status != MemberAccepted {
			return deny("club membership not accepted"), nil
		}
		if !hasRole(p.club, m.Role) {
			return deny("club role " + string(m.Role) + " not allowed"), nil
		}
		return allow("club:" + string(m.Role)), nil

	case OrgKennel:
		if len(p.kennel) == 0 {
			return deny("action not available for kennels"), nil
		}
		m, err := s.dir.KennelMembership(ctx, iss.ID, actorID)
		if apperr.IsRecordNotFound(err) {
			return deny("not a kennel member"), nil
		}
		if err != nil {
			return Decision{}, err
		}
		// En kennels el estado es implícito: las filas pendientes tienen rol MEMBER.
		if !hasRole(p.kennel, m.Role) {
			return deny("kennel role " + string(m.Role) + " not allowed"), nil
		}
		return allow("kennel:" + string(m.Role)), nil
	}
	return deny("unknown issuer"), nil
}
