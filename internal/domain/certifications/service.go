package certifications

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/workflow"
)

// Courses resuelve el curso y su emisor (courses.Service).
type Courses interface {
	Get(ctx context.Context, id string) (courses.Course, error)
}

// PetOwners resuelve dueño y gestores de una mascota (pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	RequireManager(ctx context.Context, actorID, petID string) (pets.Pet, error)
}

type Service struct {
	repo    Repository
	rules   *authz.RuleSet
	courses Courses
	pets    PetOwners
	now     func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet, c Courses, p PetOwners) *Service {
	return &Service{
		repo:    repo,
		rules:   rules,
		courses: c,
		pets:    p,
		now:     time.Now,
	}
}

type RequestInput struct {
	CourseID   string
	TargetType string
	PetID      string
	Notes      string
}

// Request: solo el dueño de la mascota, solo targetType PET. Único por (courseId, petId).
func (s *Service) Request(ctx context.Context, actorID string, in RequestInput) (Certification, error) {
	if t := strings.ToUpper(strings.TrimSpace(in.TargetType)); t != "" && t != TargetPet {
		return Certification{}, apperr.Validation("Certifications are only available for pets")
	}
	courseID, petID := strings.TrimSpace(in.CourseID), strings.TrimSpace(in.PetID)
	if courseID == "" || petID == "" {
		return Certification{}, apperr.Validation("courseId and petId are required")
	}

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return Certification{}, err
	}
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return Certification{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionRequestOnBehalf, authz.Resource{OwnerID: owner}); err != nil {
		return Certification{}, err
	}

	clubID, kennelID := course.Issuer().Columns()
	now := s.now()
	c := Certification{
		ID:              uuid.NewString(),
		CourseID:        course.ID,
		TargetType:      TargetPet,
		PetID:           petID,
		RequestedByID:   actorID,
		IssuingClubID:   clubID,
		IssuingKennelID: kennelID,
		Status:          workflow.Certification.Initial,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[Certification]{
		Message:  "Certification already requested",
		Find:     func(ctx context.Context) (Certification, error) { return s.repo.FindByCoursePet(ctx, course.ID, petID) },
		Create:   func(ctx context.Context) error { return s.repo.Create(ctx, c) },
		Describe: func(x Certification) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Certification{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Certification, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return c, apperr.MapNotFound(err, "Certification not found")
}

// ListByPet: solo quien gestiona la mascota (dueño o staff del criadero vinculado).
func (s *Service) ListByPet(ctx context.Context, actorID, petID string) ([]Certification, error) {
	p, err := s.pets.RequireManager(ctx, actorID, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, p.ID)
}

// Process: approve exige certificador del emisor; reject admite además admin de plataforma.
func (s *Service) Process(ctx context.Context, actorID, id string, req workflow.ProcessRequest) (Certification, error) {
	d, err := workflow.ParseDecision(req.Action)
	if err != nil {
		return Certification{}, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return Certification{}, err
	}

	action := authz.ActionApproveCertification
	if d == workflow.Reject {
		action = authz.ActionRejectCertification
	}
	if err := s.rules.Require(ctx, actorID, action, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return Certification{}, err
	}

	out, err := workflow.Certification.Apply(c.Status, d)
	if err != nil {
		return Certification{}, err
	}
	now := s.now()
	c.Status = out.To
	c.UpdatedAt = now
	switch d {
	case workflow.Approve:
		c.VerifiedByUserID = &actorID
		c.IssuedAt = &now
	case workflow.Reject:
		c.Notes = strings.TrimSpace(req.Notes)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Certification{}, err
	}
	metrics.RecordTransition(workflow.Certification.Name, out.MetricLabel())
	return c, nil
}
