package kennels

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/workflow"
)

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	City        string
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Kennel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Kennel{}, apperr.Validation("name is required")
	}

	now := s.now()
	k := Kennel{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		City:        strings.TrimSpace(in.City),
		CreatedByID: actorID,
		CreatedAt:   now,
	}
	owner := Member{
		ID:        uuid.NewString(),
		KennelID:  k.ID,
		UserID:    actorID,
		Role:      authz.RoleOwner,
		Status:    workflow.StatusAccepted,
		JoinedAt:  &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWithOwner(ctx, k, owner); err != nil {
		return Kennel{}, err
	}
	return k, nil
}

func (s *Service) Get(ctx context.Context, id string) (Kennel, error) {
	k, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return k, apperr.MapNotFound(err, "Kennel not found")
}

func (s *Service) List(ctx context.Context) ([]Kennel, error) {
	return s.repo.List(ctx)
}

func (s *Service) Join(ctx context.Context, actorID, kennelID string) (Member, error) {
	if _, err := s.Get(ctx, kennelID); err != nil {
		return Member{}, err
	}

	now := s.now()
	m := Member{
		ID:        uuid.NewString(),
		KennelID:  kennelID,
		UserID:    actorID,
		Role:      authz.RoleMember,
		Status:    workflow.KennelMembership.Initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := workflow.CreateOnce(ctx, workflow.Guard[Member]{
		Message:  "Already a member or request pending",
		Find:     func(ctx context.Context) (Member, error) { return s.repo.FindMember(ctx, kennelID, actorID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateMember(ctx, m) },
		Describe: func(x Member) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

type ProcessResult struct {
	Member  *Member `json:"member,omitempty"`
	ID      string  `json:"id"`
	Deleted bool    `json:"deleted"`
}

// ProcessMember: solo el OWNER del kennel procesa solicitudes.
func (s *Service) ProcessMember(ctx context.Context, actorID, kennelID, memberID, action string) (ProcessResult, error) {
	d, err := workflow.ParseDecision(action)
	if err != nil {
		return ProcessResult{}, err
	}
	m, err := s.memberOf(ctx, kennelID, memberID)
	if err != nil {
		return ProcessResult{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessJoinRequest, authz.Resource{Issuer: authz.KennelIssuer(kennelID)}); err != nil {
		return ProcessResult{}, err
	}

	out, err := workflow.KennelMembership.Apply(m.Status, d)
	if err != nil {
		return ProcessResult{}, err
	}
	if out.Delete {
		if err := s.repo.DeleteMember(ctx, m.ID); err != nil {
			return ProcessResult{}, err
		}
		metrics.RecordTransition(workflow.KennelMembership.Name, out.MetricLabel())
		return ProcessResult{ID: m.ID, Deleted: true}, nil
	}

	now := s.now()
	m.Status = out.To
	m.JoinedAt = &now
	m.UpdatedAt = now
	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return ProcessResult{}, err
	}
	metrics.RecordTransition(workflow.KennelMembership.Name, out.MetricLabel())
	return ProcessResult{ID: m.ID, Member: &m}, nil
}

func (s *Service) ListMembers(ctx context.Context, actorID, kennelID string) ([]Member, error) {
	if _, err := s.Get(ctx, kennelID); err != nil {
		return nil, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionViewMembers, authz.Resource{Issuer: authz.KennelIssuer(kennelID)}); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, kennelID)
}

// ChangeMemberRole promueve (o degrada) a un miembro aceptado.
func (s *Service) ChangeMemberRole(ctx context.Context, actorID, kennelID, memberID, role string) (Member, error) {
	r := authz.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !slices.Contains(Roles, r) {
		return Member{}, apperr.Validation("invalid role").WithDetails("expected OWNER, MANAGER, EMPLOYEE or MEMBER")
	}
	m, err := s.memberOf(ctx, kennelID, memberID)
	if err != nil {
		return Member{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionManageMembers, authz.Resource{Issuer: authz.KennelIssuer(kennelID)}); err != nil {
		return Member{}, err
	}
	if m.Status != workflow.StatusAccepted {
		return Member{}, apperr.Validation("member has not been accepted")
	}
	if m.UserID == actorID {
		return Member{}, apperr.Validation("cannot change your own role")
	}

	m.Role = r
	m.UpdatedAt = s.now()
	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) memberOf(ctx context.Context, kennelID, memberID string) (Member, error) {
	if _, err := s.Get(ctx, kennelID); err != nil {
		return Member{}, err
	}
	m, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return Member{}, apperr.MapNotFound(err, "Member not found")
	}
	if m.KennelID != kennelID {
		return Member{}, apperr.NotFound("Member not found")
	}
	return m, nil
}
