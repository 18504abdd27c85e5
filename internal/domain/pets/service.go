package pets

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

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	orgs  authz.OrgLookup
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet, orgs authz.OrgLookup) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		orgs:  orgs,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Microchip string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, apperr.Unauthenticated("unauthorized")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, apperr.Validation("name is required")
	}
	species := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if species == "" {
		species = SpeciesOther
	}
	if !species.Valid() {
		return Pet{}, apperr.Validation("invalid species").WithDetails("expected dog, cat or other")
	}
	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if sex == "" {
		sex = SexUnknown
	}
	if !sex.Valid() {
		return Pet{}, apperr.Validation("invalid sex").WithDetails("expected male, female or unknown")
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Microchip: strings.TrimSpace(in.Microchip),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return p, apperr.MapNotFound(err, "Pet not found")
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListByKennel(ctx context.Context, kennelID string) ([]Pet, error) {
	if err := s.orgs.IssuerExists(ctx, authz.KennelIssuer(kennelID)); err != nil {
		return nil, err
	}
	return s.repo.ListByKennel(ctx, kennelID)
}

// patchBirthDate distingue "no enviado" de "null" (limpiar).
type patchBirthDate struct {
	Present bool
	Value   *time.Time
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	BirthDate patchBirthDate
	Microchip *string
	Notes     *string
}

// SetBirthDate marca birthDate como presente (nil = limpiar).
func (in *UpdateProfileInput) SetBirthDate(t *time.Time) {
	in.BirthDate = patchBirthDate{Present: true, Value: t}
}

// UpdateProfile: dueño o staff OWNER/MANAGER/EMPLOYEE del kennel vinculado.
func (s *Service) UpdateProfile(ctx context.Context, actorID, petID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.RequireManager(ctx, actorID, petID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, apperr.Validation("name cannot be empty")
		}
		p.Name = v
	}
	if in.Species != nil {
		v := Species(strings.ToLower(strings.TrimSpace(*in.Species)))
		if !v.Valid() {
			return Pet{}, apperr.Validation("invalid species")
		}
		p.Species = v
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		v := Sex(strings.ToLower(strings.TrimSpace(*in.Sex)))
		if !v.Valid() {
			return Pet{}, apperr.Validation("invalid sex")
		}
		p.Sex = v
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actorID, petID string) error {
	p, err := s.RequireManager(ctx, actorID, petID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}

// RequestLink: el dueño pide a un kennel que verifique el origen. No toca pet.kennelId.
func (s *Service) RequestLink(ctx context.Context, actorID, petID, kennelID string) (KennelLink, error) {
	kennelID = strings.TrimSpace(kennelID)
	if kennelID == "" {
		return KennelLink{}, apperr.Validation("kennelId is required")
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return KennelLink{}, err
	}
	if err := s.orgs.IssuerExists(ctx, authz.KennelIssuer(kennelID)); err != nil {
		return KennelLink{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionRequestOnBehalf, authz.Resource{OwnerID: p.OwnerID}); err != nil {
		return KennelLink{}, err
	}
	if p.KennelID != nil && *p.KennelID == kennelID {
		return KennelLink{}, apperr.Validation("Pet already linked to this kennel")
	}

	l := KennelLink{
		ID:            uuid.NewString(),
		PetID:         p.ID,
		KennelID:      kennelID,
		RequestedByID: actorID,
		Status:        workflow.PetLink.Initial,
		CreatedAt:     s.now(),
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[KennelLink]{
		Message:  "Link request already exists",
		Find:     func(ctx context.Context) (KennelLink, error) { return s.repo.FindLink(ctx, p.ID, kennelID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateLink(ctx, l) },
		Describe: func(x KennelLink) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return KennelLink{}, err
	}
	return l, nil
}

func (s *Service) ListLinks(ctx context.Context, actorID, kennelID, status string) ([]KennelLink, error) {
	if err := s.orgs.IssuerExists(ctx, authz.KennelIssuer(kennelID)); err != nil {
		return nil, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessPetLink, authz.Resource{Issuer: authz.KennelIssuer(kennelID)}); err != nil {
		return nil, err
	}
	return s.repo.ListLinksByKennel(ctx, kennelID, strings.ToUpper(strings.TrimSpace(status)))
}

// ProcessLink: OWNER/MANAGER del kennel. APPROVE setea pet.kennelId.
func (s *Service) ProcessLink(ctx context.Context, actorID, linkID, action string) (KennelLink, error) {
	d, err := workflow.ParseDecision(action)
	if err != nil {
		return KennelLink{}, err
	}
	l, err := s.repo.GetLink(ctx, strings.TrimSpace(linkID))
	if err != nil {
		return KennelLink{}, apperr.MapNotFound(err, "Link request not found")
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessPetLink, authz.Resource{Issuer: authz.KennelIssuer(l.KennelID)}); err != nil {
		return KennelLink{}, err
	}

	out, err := workflow.PetLink.Apply(l.Status, d)
	if err != nil {
		return KennelLink{}, err
	}
	now := s.now()
	l.Status = out.To
	l.ProcessedByID = &actorID
	l.ProcessedAt = &now

	if err := s.repo.SaveLinkDecision(ctx, l, d == workflow.Approve); err != nil {
		return KennelLink{}, apperr.MapNotFound(err, "Pet not found")
	}
	metrics.RecordTransition(workflow.PetLink.Name, out.MetricLabel())
	return l, nil
}
