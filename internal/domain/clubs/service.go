package clubs

import (
	"context"
	"errors"
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

// Create: el creador queda OWNER con status ACCEPTED.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Club, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Club{}, apperr.Validation("name is required")
	}

	now := s.now()
	c := Club{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		City:        strings.TrimSpace(in.City),
		CreatedByID: actorID,
		CreatedAt:   now,
	}
	owner := Member{
		ID:        uuid.NewString(),
		ClubID:    c.ID,
		UserID:    actorID,
		Role:      authz.RoleOwner,
		Status:    workflow.StatusAccepted,
		JoinedAt:  &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWithOwner(ctx, c, owner); err != nil {
		return Club{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Club, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return c, apperr.MapNotFound(err, "Club not found")
}

func (s *Service) List(ctx context.Context) ([]Club, error) {
	return s.repo.List(ctx)
}

// Join crea la solicitud PENDING del actor. Repetir mientras exista la fila => 409.
func (s *Service) Join(ctx context.Context, actorID, clubID string) (Member, error) {
	if _, err := s.Get(ctx, clubID); err != nil {
		return Member{}, err
	}

	now := s.now()
	m := Member{
		ID:        uuid.NewString(),
		ClubID:    clubID,
		UserID:    actorID,
		Role:      authz.RoleMember,
		Status:    workflow.ClubMembership.Initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := workflow.CreateOnce(ctx, workflow.Guard[Member]{
		Message:  "Already a member or request pending",
		Find:     func(ctx context.Context) (Member, error) { return s.repo.FindMember(ctx, clubID, actorID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateMember(ctx, m) },
		Describe: func(x Member) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

// ProcessResult: Member queda vacío cuando el reject borró la fila.
type ProcessResult struct {
	Member  *Member `json:"member,omitempty"`
	ID      string  `json:"id"`
	Deleted bool    `json:"deleted"`
}

func (s *Service) ProcessMember(ctx context.Context, actorID, clubID, memberID, action string) (ProcessResult, error) {
	d, err := workflow.ParseDecision(action)
	if err != nil {
		return ProcessResult{}, err
	}
	m, err := s.memberOf(ctx, clubID, memberID)
	if err != nil {
		return ProcessResult{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessJoinRequest, authz.Resource{Issuer: authz.ClubIssuer(clubID)}); err != nil {
		return ProcessResult{}, err
	}

	out, err := workflow.ClubMembership.Apply(m.Status, d)
	if err != nil {
		return ProcessResult{}, err
	}

	if out.Delete {
		if err := s.repo.DeleteMember(ctx, m.ID); err != nil {
			return ProcessResult{}, err
		}
		metrics.RecordTransition(workflow.ClubMembership.Name, out.MetricLabel())
		return ProcessResult{ID: m.ID, Deleted: true}, nil
	}

	now := s.now()
	m.Status = out.To
	m.JoinedAt = &now
	m.UpdatedAt = now
	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return ProcessResult{}, err
	}
	metrics.RecordTransition(workflow.ClubMembership.Name, out.MetricLabel())
	return ProcessResult{ID: m.ID, Member: &m}, nil
}

func (s *Service) ListMembers(ctx context.Context, actorID, clubID string) ([]Member, error) {
	if _, err := s.Get(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionViewMembers, authz.Resource{Issuer: authz.ClubIssuer(clubID)}); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, clubID)
}

// ChangeMemberRole: solo OWNER, sobre miembros ya aceptados y nunca sobre sí mismo.
func (s *Service) ChangeMemberRole(ctx context.Context, actorID, clubID, memberID, role string) (Member, error) {
	r := authz.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !slices.Contains(Roles, r) {
		return Member{}, apperr.Validation("invalid role").WithDetails("expected OWNER, ADMIN, EMPLOYEE or MEMBER")
	}
	m, err := s.memberOf(ctx, clubID, memberID)
	if err != nil {
		return Member{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionManageMembers, authz.Resource{Issuer: authz.ClubIssuer(clubID)}); err != nil {
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

// NominateCertifier es create-or-reuse: si ya existe se devuelve esa fila (created=false).
func (s *Service) NominateCertifier(ctx context.Context, actorID, clubID, userID string) (Certifier, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Certifier{}, false, apperr.Validation("userId is required")
	}
	if _, err := s.Get(ctx, clubID); err != nil {
		return Certifier{}, false, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionManageCertifiers, authz.Resource{Issuer: authz.ClubIssuer(clubID)}); err != nil {
		return Certifier{}, false, err
	}

	nominee, err := s.repo.FindMember(ctx, clubID, userID)
	if err != nil && !apperr.IsRecordNotFound(err) {
		return Certifier{}, false, err
	}
	if err != nil || nominee.Status != workflow.StatusAccepted {
		return Certifier{}, false, apperr.Validation("user is not an accepted club member")
	}

	existing, err := s.repo.FindCertifier(ctx, clubID, userID)
	if err == nil {
		return existing, false, nil
	}
	if !apperr.IsRecordNotFound(err) {
		return Certifier{}, false, err
	}

	c := Certifier{
		ID:            uuid.NewString(),
		ClubID:        clubID,
		UserID:        userID,
		NominatedByID: actorID,
		Status:        workflow.StatusPending,
		CreatedAt:     s.now(),
	}
	if err := s.repo.CreateCertifier(ctx, c); err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			existing, ferr := s.repo.FindCertifier(ctx, clubID, userID)
			if ferr != nil {
				return Certifier{}, false, ferr
			}
			return existing, false, nil
		}
		return Certifier{}, false, err
	}
	return c, true, nil
}

func (s *Service) ListCertifiers(ctx context.Context, clubID string) ([]Certifier, error) {
	if _, err := s.Get(ctx, clubID); err != nil {
		return nil, err
	}
	return s.repo.ListCertifiers(ctx, clubID)
}

func (s *Service) memberOf(ctx context.Context, clubID, memberID string) (Member, error) {
	if _, err := s.Get(ctx, clubID); err != nil {
		return Member{}, err
	}
	m, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return Member{}, apperr.MapNotFound(err, "Member not found")
	}
	if m.ClubID != clubID {
		return Member{}, apperr.NotFound("Member not found")
	}
	return m, nil
}
