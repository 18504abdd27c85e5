package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/matches"
)

type MatchesRepo struct {
	db *gorm.DB
}

func NewMatchesRepo(db *gorm.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

func (r *MatchesRepo) Create(ctx context.Context, m matches.Match) error {
	return create(ctx, r.db, &m)
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	return first[matches.Match](ctx, r.db, "id = ?", id)
}

func (r *MatchesRepo) FindByPair(ctx context.Context, ownerID, sitterID string) (matches.Match, error) {
	return first[matches.Match](ctx, r.db, "owner_id = ? AND sitter_id = ?", ownerID, sitterID)
}

// Los listados van del más reciente al más viejo.
func (r *MatchesRepo) ListByOwner(ctx context.Context, ownerID string) ([]matches.Match, error) {
	return find[matches.Match](r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC"))
}

func (r *MatchesRepo) ListBySitter(ctx context.Context, sitterID string) ([]matches.Match, error) {
	return find[matches.Match](r.db.WithContext(ctx).Where("sitter_id = ?", sitterID).Order("created_at DESC"))
}

func (r *MatchesRepo) Update(ctx context.Context, m matches.Match) error {
	return save(ctx, r.db, &m)
}

func (r *MatchesRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[matches.Match](ctx, r.db, id)
}
