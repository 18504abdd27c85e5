package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/platform/apperr"
)

type CompetitionsRepo struct {
	db *gorm.DB
}

func NewCompetitionsRepo(db *gorm.DB) *CompetitionsRepo {
	return &CompetitionsRepo{db: db}
}

func (r *CompetitionsRepo) Create(ctx context.Context, c competitions.Competition) error {
	return create(ctx, r.db, &c)
}

func (r *CompetitionsRepo) GetByID(ctx context.Context, id string) (competitions.Competition, error) {
	return first[competitions.Competition](ctx, r.db, "id = ?", id)
}

func (r *CompetitionsRepo) List(ctx context.Context, iss authz.Issuer) ([]competitions.Competition, error) {
	return find[competitions.Competition](byIssuer(r.db.WithContext(ctx), iss).Order("created_at ASC"))
}

func (r *CompetitionsRepo) CreateEntry(ctx context.Context, e competitions.Entry) error {
	return create(ctx, r.db, &e)
}

func (r *CompetitionsRepo) GetEntry(ctx context.Context, id string) (competitions.Entry, error) {
	return first[competitions.Entry](ctx, r.db, "id = ?", id)
}

func (r *CompetitionsRepo) FindEntry(ctx context.Context, competitionID string, target competitions.TargetType, targetID string) (competitions.Entry, error) {
	if target == competitions.TargetPet {
		return first[competitions.Entry](ctx, r.db, "competition_id = ? AND pet_id = ?", competitionID, targetID)
	}
	return first[competitions.Entry](ctx, r.db, "competition_id = ? AND user_id = ?", competitionID, targetID)
}

func (r *CompetitionsRepo) ListEntries(ctx context.Context, competitionID string) ([]competitions.Entry, error) {
	return find[competitions.Entry](r.db.WithContext(ctx).Where("competition_id = ?", competitionID).Order("created_at ASC"))
}

func (r *CompetitionsRepo) UpdateEntry(ctx context.Context, e competitions.Entry) error {
	return save(ctx, r.db, &e)
}

func (r *CompetitionsRepo) CreateAwarder(ctx context.Context, a competitions.AllowedAwarder) error {
	return create(ctx, r.db, &a)
}

func (r *CompetitionsRepo) GetAwarder(ctx context.Context, id string) (competitions.AllowedAwarder, error) {
	return first[competitions.AllowedAwarder](ctx, r.db, "id = ?", id)
}

func (r *CompetitionsRepo) FindAwarder(ctx context.Context, competitionID, userID string) (competitions.AllowedAwarder, error) {
	return first[competitions.AllowedAwarder](ctx, r.db, "competition_id = ? AND user_id = ?", competitionID, userID)
}

func (r *CompetitionsRepo) ListAwarders(ctx context.Context, competitionID string) ([]competitions.AllowedAwarder, error) {
	return find[competitions.AllowedAwarder](r.db.WithContext(ctx).Where("competition_id = ?", competitionID).Order("created_at ASC"))
}

func (r *CompetitionsRepo) UpdateAwarder(ctx context.Context, a competitions.AllowedAwarder) error {
	return save(ctx, r.db, &a)
}

func (r *CompetitionsRepo) CreateAward(ctx context.Context, a competitions.Award) error {
	return create(ctx, r.db, &a)
}

func (r *CompetitionsRepo) GetAward(ctx context.Context, id string) (competitions.Award, error) {
	return first[competitions.Award](ctx, r.db, "id = ?", id)
}

func (r *CompetitionsRepo) ListAwards(ctx context.Context) ([]competitions.Award, error) {
	return find[competitions.Award](r.db.WithContext(ctx).Order("created_at ASC"))
}

// AssignAward bloquea el premio (FOR UPDATE) para que dos asignaciones concurrentes no lo liguen a competencias distintas.
func (r *CompetitionsRepo) AssignAward(ctx context.Context, ca competitions.CompetitionAward) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var award competitions.Award
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", ca.AwardID).First(&award).Error
		if err != nil {
			return translate(err)
		}
		if award.CompetitionID != nil && *award.CompetitionID != ca.CompetitionID {
			return competitions.ErrAwardAlreadyBound
		}
		if err := tx.Create(&ca).Error; err != nil {
			return translate(err)
		}
		if award.CompetitionID != nil {
			return nil
		}
		res := tx.Model(&competitions.Award{}).
			Where("id = ? AND competition_id IS NULL", award.ID).
			Update("competition_id", ca.CompetitionID)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CompetitionsRepo) FindCompetitionAward(ctx context.Context, competitionID, awardID string) (competitions.CompetitionAward, error) {
	return first[competitions.CompetitionAward](ctx, r.db, "competition_id = ? AND award_id = ?", competitionID, awardID)
}

func (r *CompetitionsRepo) ListCompetitionAwards(ctx context.Context, competitionID string) ([]competitions.CompetitionAward, error) {
	return find[competitions.CompetitionAward](r.db.WithContext(ctx).Where("competition_id = ?", competitionID).Order("created_at ASC"))
}
