package courses

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/workflow"
)

// PetOwners resuelve el dueño de una mascota (lo implementa pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// Orgs resuelve existencia de emisores y membresías de club.
type Orgs interface {
	authz.OrgLookup
	ClubMembership(ctx context.Context, clubID, userID string) (authz.Membership, error)
}

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	orgs  Orgs
	pets  PetOwners
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet, orgs Orgs, pets PetOwners) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		orgs:  orgs,
		pets:  pets,
		now:   time.Now,
	}
}

type CreateInput struct {
	Title       string
	Description string
	IssuerType  string
	ClubID      string
	KennelID    string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// Create: club OWNER/ADMIN o kennel OWNER.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Course, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Course{}, apperr.Validation("title is required")
	}
	iss, err := authz.ParseIssuer(in.IssuerType, in.ClubID, in.KennelID)
	if err != nil {
		return Course{}, err
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		return Course{}, apperr.Validation("endsAt must be after startsAt")
	}
	if err := s.orgs.IssuerExists(ctx, iss); err != nil {
		return Course{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionCreateCourse, authz.Resource{Issuer: iss}); err != nil {
		return Course{}, err
	}

	clubID, kennelID := iss.Columns()
	c := Course{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		IssuerType:  iss.Kind,
		ClubID:      clubID,
		KennelID:    kennelID,
		CreatedByID: actorID,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return c, apperr.MapNotFound(err, "Course not found")
}

// List acepta filtro opcional por emisor (issuerType + clubId/kennelId).
func (s *Service) List(ctx context.Context, issuerType, clubID, kennelID string) ([]Course, error) {
	if strings.TrimSpace(issuerType) == "" && strings.TrimSpace(clubID) == "" && strings.TrimSpace(kennelID) == "" {
		return s.repo.List(ctx, authz.Issuer{})
	}
	iss, err := authz.ParseIssuer(issuerType, clubID, kennelID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, iss)
}

type EnrollInput struct {
	TargetType string
	UserID     string
	PetID      string
	Notes      string
}

// Enroll crea la inscripción APPLIED. Para PET la pide el dueño; para USER el propio usuario.
func (s *Service) Enroll(ctx context.Context, actorID, courseID string, in EnrollInput) (Enrollment, error) {
	target, targetID, err := parseTarget(actorID, in)
	if err != nil {
		return Enrollment{}, err
	}
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return Enrollment{}, err
	}

	owner := targetID
	if target == TargetPet {
		if owner, err = s.pets.OwnerOf(ctx, targetID); err != nil {
			return Enrollment{}, err
		}
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionRequestOnBehalf, authz.Resource{OwnerID: owner}); err != nil {
		return Enrollment{}, err
	}

	now := s.now()
	e := Enrollment{
		ID:            uuid.NewString(),
		CourseID:      c.ID,
		TargetType:    target,
		RequestedByID: actorID,
		Status:        workflow.Enrollment.Initial,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if target == TargetPet {
		e.PetID = &targetID
	} else {
		e.UserID = &targetID
	}

	err = workflow.CreateOnce(ctx, workflow.Guard[Enrollment]{
		Message:  "Already enrolled in this course",
		Find:     func(ctx context.Context) (Enrollment, error) { return s.repo.FindEnrollment(ctx, c.ID, target, targetID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateEnrollment(ctx, e) },
		Describe: func(x Enrollment) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Enrollment{}, err
	}
	return e, nil
}

func parseTarget(actorID string, in EnrollInput) (TargetType, string, error) {
	userID, petID := strings.TrimSpace(in.UserID), strings.TrimSpace(in.PetID)
	if userID != "" && petID != "" {
		return "", "", apperr.Validation("exactly one of userId or petId must be set")
	}

	t := TargetType(strings.ToUpper(strings.TrimSpace(in.TargetType)))
	if t == "" {
		t = TargetUser
		if petID != "" {
			t = TargetPet
		}
	}
	switch t {
	case TargetPet:
		if petID == "" {
			return "", "", apperr.Validation("petId is required for PET enrollments")
		}
		return t, petID, nil
	case TargetUser:
		if petID != "" {
			return "", "", apperr.Validation("petId is not allowed for USER enrollments")
		}
		if userID == "" {
			userID = actorID
		}
		return t, userID, nil
	}
	return "", "", apperr.Validation("invalid targetType").WithDetails("expected USER or PET")
}

// ProcessEnrollment: staff del emisor. No crea certificaciones.
func (s *Service) ProcessEnrollment(ctx context.Context, actorID, enrollmentID string, req workflow.ProcessRequest) (Enrollment, error) {
	d, err := workflow.ParseDecision(req.Action)
	if err != nil {
		return Enrollment{}, err
	}
	e, err := s.repo.GetEnrollment(ctx, strings.TrimSpace(enrollmentID))
	if err != nil {
		return Enrollment{}, apperr.MapNotFound(err, "Enrollment not found")
	}
	c, err := s.Get(ctx, e.CourseID)
	if err != nil {
		return Enrollment{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessEnrollment, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return Enrollment{}, err
	}

	out, err := workflow.Enrollment.Apply(e.Status, d)
	if err != nil {
		return Enrollment{}, err
	}
	now := s.now()
	e.Status = out.To
	e.ProcessedByID = &actorID
	e.ProcessedAt = &now
	e.UpdatedAt = now
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		e.Notes = notes
	}

	if err := s.repo.UpdateEnrollment(ctx, e); err != nil {
		return Enrollment{}, err
	}
	metrics.RecordTransition(workflow.Enrollment.Name, out.MetricLabel())
	return e, nil
}

// ListEnrollments: solo quien puede procesarlas.
func (s *Service) ListEnrollments(ctx context.Context, actorID, courseID string) ([]Enrollment, error) {
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessEnrollment, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollments(ctx, c.ID)
}

// AssignCertifier habilita a un miembro ACCEPTED del club emisor como certificador del curso.
func (s *Service) AssignCertifier(ctx context.Context, actorID, courseID, userID string) (CertifierAssignment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CertifierAssignment{}, apperr.Validation("userId is required")
	}
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return CertifierAssignment{}, err
	}
	iss := c.Issuer()
	if iss.Kind != authz.OrgClub {
		return CertifierAssignment{}, apperr.Validation("certifiers can only be assigned to club courses")
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionManageCertifiers, authz.Resource{Issuer: iss}); err != nil {
		return CertifierAssignment{}, err
	}

	m, err := s.orgs.ClubMembership(ctx, iss.ID, userID)
	if err != nil && !apperr.IsRecordNotFound(err) {
		return CertifierAssignment{}, err
	}
	if err != nil || m.Status != authz.MemberAccepted {
		return CertifierAssignment{}, apperr.Validation("user is not an accepted club member")
	}

	a := CertifierAssignment{
		ID:           uuid.NewString(),
		CourseID:     c.ID,
		UserID:       userID,
		AssignedByID: actorID,
		CreatedAt:    s.now(),
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[CertifierAssignment]{
		Message:  "Certifier already assigned to this course",
		Find:     func(ctx context.Context) (CertifierAssignment, error) { return s.repo.FindCertifier(ctx, c.ID, userID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateCertifier(ctx, a) },
		Describe: func(x CertifierAssignment) (string, string) { return x.ID, "" },
	})
	if err != nil {
		return CertifierAssignment{}, err
	}
	return a, nil
}

func (s *Service) ListCertifiers(ctx context.Context, courseID string) ([]CertifierAssignment, error) {
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCertifiers(ctx, c.ID)
}
