package competitions

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

// PetOwners resuelve el dueño de una mascota.
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// Users valida que el nominado exista.
type Users interface {
	Exists(ctx context.Context, id string) error
}

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	orgs  authz.OrgLookup
	pets  PetOwners
	users Users
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet, orgs authz.OrgLookup, pets PetOwners, users Users) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
		orgs:  orgs,
		pets:  pets,
		users: users,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	IssuerType  string
	ClubID      string
	KennelID    string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// Create: OWNER del club o kennel emisor.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Competition, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Competition{}, apperr.Validation("name is required")
	}
	iss, err := authz.ParseIssuer(in.IssuerType, in.ClubID, in.KennelID)
	if err != nil {
		return Competition{}, err
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		return Competition{}, apperr.Validation("endsAt must be after startsAt")
	}
	if err := s.orgs.IssuerExists(ctx, iss); err != nil {
		return Competition{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionCreateCompetition, authz.Resource{Issuer: iss}); err != nil {
		return Competition{}, err
	}

	clubID, kennelID := iss.Columns()
	c := Competition{
		ID:          uuid.NewString(),
		Name:        name,
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
		return Competition{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Competition, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return c, apperr.MapNotFound(err, "Competition not found")
}

func (s *Service) List(ctx context.Context, issuerType, clubID, kennelID string) ([]Competition, error) {
	if strings.TrimSpace(issuerType) == "" && strings.TrimSpace(clubID) == "" && strings.TrimSpace(kennelID) == "" {
		return s.repo.List(ctx, authz.Issuer{})
	}
	iss, err := authz.ParseIssuer(issuerType, clubID, kennelID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, iss)
}

type EnterInput struct {
	TargetType string
	UserID     string
	PetID      string
	Notes      string
}

// Enter inscribe al actor o a su mascota. Competencias cerradas => 400.
func (s *Service) Enter(ctx context.Context, actorID, competitionID string, in EnterInput) (Entry, error) {
	target, targetID, err := parseTarget(actorID, in)
	if err != nil {
		return Entry{}, err
	}
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return Entry{}, err
	}
	owner := targetID
	if target == TargetPet {
		if owner, err = s.pets.OwnerOf(ctx, targetID); err != nil {
			return Entry{}, err
		}
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionRequestOnBehalf, authz.Resource{OwnerID: owner}); err != nil {
		return Entry{}, err
	}
	now := s.now()
	if c.Closed(now) {
		return Entry{}, apperr.Validation("Competition has already ended")
	}

	e := Entry{
		ID:            uuid.NewString(),
		CompetitionID: c.ID,
		TargetType:    target,
		RequestedByID: actorID,
		Status:        workflow.Entry.Initial,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if target == TargetPet {
		e.PetID = &targetID
	} else {
		e.UserID = &targetID
	}

	err = workflow.CreateOnce(ctx, workflow.Guard[Entry]{
		Message:  "Already entered in this competition",
		Find:     func(ctx context.Context) (Entry, error) { return s.repo.FindEntry(ctx, c.ID, target, targetID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateEntry(ctx, e) },
		Describe: func(x Entry) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func parseTarget(actorID string, in EnterInput) (TargetType, string, error) {
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
			return "", "", apperr.Validation("petId is required for PET entries")
		}
		return t, petID, nil
	case TargetUser:
		if petID != "" {
			return "", "", apperr.Validation("petId is not allowed for USER entries")
		}
		if userID == "" {
			userID = actorID
		}
		return t, userID, nil
	}
	return "", "", apperr.Validation("invalid targetType").WithDetails("expected USER or PET")
}

// ProcessEntry: staff del emisor (club OWNER/EMPLOYEE, kennel OWNER). Guarda notes.
func (s *Service) ProcessEntry(ctx context.Context, actorID, entryID string, req workflow.ProcessRequest) (Entry, error) {
	d, err := workflow.ParseDecision(req.Action)
	if err != nil {
		return Entry{}, err
	}
	e, err := s.repo.GetEntry(ctx, strings.TrimSpace(entryID))
	if err != nil {
		return Entry{}, apperr.MapNotFound(err, "Entry not found")
	}
	c, err := s.Get(ctx, e.CompetitionID)
	if err != nil {
		return Entry{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessEntry, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return Entry{}, err
	}

	out, err := workflow.Entry.Apply(e.Status, d)
	if err != nil {
		return Entry{}, err
	}
	now := s.now()
	e.Status = out.To
	e.Notes = strings.TrimSpace(req.Notes)
	e.ProcessedByID = &actorID
	e.ProcessedAt = &now
	e.UpdatedAt = now
	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return Entry{}, err
	}
	metrics.RecordTransition(workflow.Entry.Name, out.MetricLabel())
	return e, nil
}

func (s *Service) ListEntries(ctx context.Context, competitionID string) ([]Entry, error) {
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEntries(ctx, c.ID)
}

// NominateAwarder: el OWNER nomina a otro usuario.
func (s *Service) NominateAwarder(ctx context.Context, actorID, competitionID, userID string) (AllowedAwarder, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return AllowedAwarder{}, apperr.Validation("userId is required")
	}
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return AllowedAwarder{}, err
	}
	if err := s.users.Exists(ctx, userID); err != nil {
		return AllowedAwarder{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionNominateAwarder, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return AllowedAwarder{}, err
	}
	if authz.IsSelf(actorID, userID) {
		return AllowedAwarder{}, apperr.Validation("cannot nominate yourself")
	}

	a := AllowedAwarder{
		ID:            uuid.NewString(),
		CompetitionID: c.ID,
		UserID:        userID,
		NominatedByID: actorID,
		Status:        workflow.Awarder.Initial,
		CreatedAt:     s.now(),
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[AllowedAwarder]{
		Message:  "User already nominated",
		Find:     func(ctx context.Context) (AllowedAwarder, error) { return s.repo.FindAwarder(ctx, c.ID, userID) },
		Create:   func(ctx context.Context) error { return s.repo.CreateAwarder(ctx, a) },
		Describe: func(x AllowedAwarder) (string, string) { return x.ID, string(x.Status) },
	})
	if err != nil {
		return AllowedAwarder{}, err
	}
	return a, nil
}

// ProcessAwarder: OWNER de la competencia o admin de plataforma.
func (s *Service) ProcessAwarder(ctx context.Context, actorID, awarderID, action string) (AllowedAwarder, error) {
	d, err := workflow.ParseDecision(action)
	if err != nil {
		return AllowedAwarder{}, err
	}
	a, err := s.repo.GetAwarder(ctx, strings.TrimSpace(awarderID))
	if err != nil {
		return AllowedAwarder{}, apperr.MapNotFound(err, "Nomination not found")
	}
	c, err := s.Get(ctx, a.CompetitionID)
	if err != nil {
		return AllowedAwarder{}, err
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessAwarder, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return AllowedAwarder{}, err
	}

	out, err := workflow.Awarder.Apply(a.Status, d)
	if err != nil {
		return AllowedAwarder{}, err
	}
	now := s.now()
	a.Status = out.To
	a.ProcessedByID = &actorID
	a.ProcessedAt = &now
	if err := s.repo.UpdateAwarder(ctx, a); err != nil {
		return AllowedAwarder{}, err
	}
	metrics.RecordTransition(workflow.Awarder.Name, out.MetricLabel())
	return a, nil
}

func (s *Service) ListAwarders(ctx context.Context, competitionID string) ([]AllowedAwarder, error) {
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAwarders(ctx, c.ID)
}

type AwardInput struct {
	Name        string
	Description string
}

// CreateAward crea un premio sin competencia; se liga al asignarlo.
func (s *Service) CreateAward(ctx context.Context, actorID string, in AwardInput) (Award, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Award{}, apperr.Validation("name is required")
	}
	a := Award{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedByID: actorID,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateAward(ctx, a); err != nil {
		return Award{}, err
	}
	return a, nil
}

func (s *Service) GetAward(ctx context.Context, id string) (Award, error) {
	a, err := s.repo.GetAward(ctx, strings.TrimSpace(id))
	return a, apperr.MapNotFound(err, "Award not found")
}

func (s *Service) ListAwards(ctx context.Context) ([]Award, error) {
	return s.repo.ListAwards(ctx)
}

type AssignInput struct {
	AwardID         string
	EntryID         string
	AwardedByUserID string
}

// AssignAward liga un premio a la competencia (una sola vez).
// awardedByUserId es el actor o un awarder ACCEPTED de la competencia.
func (s *Service) AssignAward(ctx context.Context, actorID, competitionID string, in AssignInput) (CompetitionAward, error) {
	awardID := strings.TrimSpace(in.AwardID)
	if awardID == "" {
		return CompetitionAward{}, apperr.Validation("awardId is required")
	}
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return CompetitionAward{}, err
	}
	award, err := s.GetAward(ctx, awardID)
	if err != nil {
		return CompetitionAward{}, err
	}
	var entryID *string
	if id := strings.TrimSpace(in.EntryID); id != "" {
		e, err := s.repo.GetEntry(ctx, id)
		if err != nil {
			return CompetitionAward{}, apperr.MapNotFound(err, "Entry not found")
		}
		if e.CompetitionID != c.ID {
			return CompetitionAward{}, apperr.Validation("entry does not belong to this competition")
		}
		entryID = &e.ID
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionAssignAward, authz.Resource{Issuer: c.Issuer()}); err != nil {
		return CompetitionAward{}, err
	}

	if award.CompetitionID != nil && *award.CompetitionID != c.ID {
		return CompetitionAward{}, ErrAwardAlreadyBound
	}

	awardedBy := strings.TrimSpace(in.AwardedByUserID)
	if awardedBy == "" {
		awardedBy = actorID
	}
	if awardedBy != actorID {
		aw, err := s.repo.FindAwarder(ctx, c.ID, awardedBy)
		if err != nil && !apperr.IsRecordNotFound(err) {
			return CompetitionAward{}, err
		}
		if err != nil || aw.Status != workflow.StatusAccepted {
			return CompetitionAward{}, apperr.Validation("awardedByUserId is not an accepted awarder for this competition")
		}
	}

	ca := CompetitionAward{
		ID:              uuid.NewString(),
		CompetitionID:   c.ID,
		AwardID:         award.ID,
		EntryID:         entryID,
		AwardedByUserID: awardedBy,
		CreatedAt:       s.now(),
	}
	err = workflow.CreateOnce(ctx, workflow.Guard[CompetitionAward]{
		Message:  "Award already assigned to this competition",
		Find:     func(ctx context.Context) (CompetitionAward, error) { return s.repo.FindCompetitionAward(ctx, c.ID, award.ID) },
		Create:   func(ctx context.Context) error { return s.repo.AssignAward(ctx, ca) },
		Describe: func(x CompetitionAward) (string, string) { return x.ID, "" },
	})
	if err != nil {
		return CompetitionAward{}, err
	}
	return ca, nil
}

func (s *Service) ListCompetitionAwards(ctx context.Context, competitionID string) ([]CompetitionAward, error) {
	c, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCompetitionAwards(ctx, c.ID)
}
