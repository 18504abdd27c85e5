package matches

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/ports/capabilities"
	"pet-marketplace/internal/workflow"
)

// MatchableRoles son los roles que pueden recibir un match.
var MatchableRoles = []string{"sitter", "kennel"}

// Users valida que el destinatario exista (users.Service).
type Users interface {
	Exists(ctx context.Context, id string) error
}

// PetOwners resuelve el dueño de una mascota.
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	users Users
	roles capabilities.RoleResolver
	pets  PetOwners
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet, users Users, roles capabilities.RoleResolver, pets PetOwners) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		users: users,
		roles: roles,
		pets:  pets,
		now:   time.Now,
	}
}

type CreateInput struct {
	SitterID string
	PetID    string
	Message  string
}

// Create: el actor (dueño) pide un match a un usuario sitter o kennel.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Match, error) {
	sitterID := strings.TrimSpace(in.SitterID)
	if sitterID == "" {
		return Match{}, apperr.Validation("sitterId is required")
	}
	if authz.IsSelf(actorID, sitterID) {
		return Match{}, apperr.Validation("Cannot match with yourself")
	}
	if err := s.users.Exists(ctx, sitterID); err != nil {
		return Match{}, err
	}

	var petID *string
	if id := strings.TrimSpace(in.PetID); id != "" {
		owner, err := s.pets.OwnerOf(ctx, id)
		if err != nil {
			return Match{}, err
		}
		if err := s.rules.Require(ctx, actorID, authz.ActionRequestOnBehalf, authz.Resource{OwnerID: owner}); err != nil {
			return Match{}, err
		}
		petID = &id
	}

	ok, err := s.matchable(ctx, sitterID)
	if err != nil {
		return Match{}, err
	}
	if !ok {
		return Match{}, apperr.Validation("Target user is not a sitter or kennel")
	}

	now := s.now()
	m := Match{
		ID:        uuid.NewString(),
		OwnerID:   actorID,
		SitterID:  sitterID,
		PetID:     petID,
		Message:   strings.TrimSpace(in.Message),
		Status:    workflow.Match.Initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[Match]{
		Message:  "Match already exists",
		Find:     func(ctx context.Context) (Match, error) { return s.repo.FindByPair(ctx, actorID, sitterID) },
		Create:   func(ctx context.Context) error { return s.repo.Create(ctx, m) },
		Describe: func(x Match) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Match{}, err
	}
	return m, nil
}

func (s *Service) matchable(ctx context.Context, userID string) (bool, error) {
	for _, role := range MatchableRoles {
		ok, err := s.roles.HasRole(ctx, userID, role)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Get devuelve el match si el actor es una de las partes.
func (s *Service) Get(ctx context.Context, actorID, id string) (Match, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Match{}, apperr.MapNotFound(err, "Match not found")
	}
	if !m.Involves(actorID) {
		return Match{}, apperr.Forbidden("forbidden").WithDetails("not a participant of this match")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, actorID string) (Listing, error) {
	sent, err := s.repo.ListByOwner(ctx, actorID)
	if err != nil {
		return Listing{}, err
	}
	received, err := s.repo.ListBySitter(ctx, actorID)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Sent: sent, Received: received}, nil
}

// Respond: solo el sitter designado y solo desde PENDING.
func (s *Service) Respond(ctx context.Context, actorID, id, action string) (Match, error) {
	d, err := workflow.ParseDecision(action)
	if err != nil {
		return Match{}, err
	}
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Match{}, apperr.MapNotFound(err, "Match not found")
	}
	if !authz.IsSelf(actorID, m.SitterID) {
		return Match{}, apperr.Forbidden("forbidden").WithDetails("only the requested sitter can respond")
	}

	out, err := workflow.Match.Apply(m.Status, d)
	if err != nil {
		return Match{}, err
	}
	now := s.now()
	m.Status = out.To
	m.RespondedAt = &now
	m.UpdatedAt = now
	if err := s.repo.Update(ctx, m); err != nil {
		return Match{}, err
	}
	metrics.RecordTransition(workflow.Match.Name, out.MetricLabel())
	return m, nil
}

// Cancel: el dueño puede retirar la solicitud mientras siga PENDING.
func (s *Service) Cancel(ctx context.Context, actorID, id string) error {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return apperr.MapNotFound(err, "Match not found")
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionCancelMatch, authz.Resource{OwnerID: m.OwnerID}); err != nil {
		return err
	}
	if m.Status != workflow.Match.Initial {
		return apperr.Validation("Only pending matches can be cancelled").WithDetails("current status is " + string(m.Status))
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return err
	}
	metrics.RecordTransition(workflow.Match.Name, workflow.Deleted)
	return nil
}
