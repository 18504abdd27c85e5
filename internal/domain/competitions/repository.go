package competitions

import (
	"context"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
)

// ErrAwardAlreadyBound lo devuelven service y stores cuando el premio ya pertenece a otra competencia.
var ErrAwardAlreadyBound = apperr.Validation("Award already assigned to another competition")

type Repository interface {
	Create(ctx context.Context, c Competition) error
	GetByID(ctx context.Context, id string) (Competition, error)
	List(ctx context.Context, iss authz.Issuer) ([]Competition, error)

	CreateEntry(ctx context.Context, e Entry) error
	GetEntry(ctx context.Context, id string) (Entry, error)
	FindEntry(ctx context.Context, competitionID string, target TargetType, targetID string) (Entry, error)
	ListEntries(ctx context.Context, competitionID string) ([]Entry, error)
	UpdateEntry(ctx context.Context, e Entry) error

	CreateAwarder(ctx context.Context, a AllowedAwarder) error
	GetAwarder(ctx context.Context, id string) (AllowedAwarder, error)
	FindAwarder(ctx context.Context, competitionID, userID string) (AllowedAwarder, error)
	ListAwarders(ctx context.Context, competitionID string) ([]AllowedAwarder, error)
	UpdateAwarder(ctx context.Context, a AllowedAwarder) error

	CreateAward(ctx context.Context, a Award) error
	GetAward(ctx context.Context, id string) (Award, error)
	ListAwards(ctx context.Context) ([]Award, error)

	// AssignAward crea el CompetitionAward y, si award.competitionId es null, lo completa.
	// Todo en una escritura atómica; si el premio ya es de otra competencia devuelve ErrAwardAlreadyBound.
	AssignAward(ctx context.Context, ca CompetitionAward) error
	FindCompetitionAward(ctx context.Context, competitionID, awardID string) (CompetitionAward, error)
	ListCompetitionAwards(ctx context.Context, competitionID string) ([]CompetitionAward, error)
}
