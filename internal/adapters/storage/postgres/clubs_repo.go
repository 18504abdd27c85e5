package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/clubs"
)

type ClubsRepo struct {
	db *gorm.DB
}

func NewClubsRepo(db *gorm.DB) *ClubsRepo {
	return &ClubsRepo{db: db}
}

func (r *ClubsRepo) CreateWithOwner(ctx context.Context, c clubs.Club, owner clubs.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(&owner).Error)
	})
}

func (r *ClubsRepo) GetByID(ctx context.Context, id string) (clubs.Club, error) {
	return first[clubs.Club](ctx, r.db, "id = ?", id)
}

func (r *ClubsRepo) List(ctx context.Context) ([]clubs.Club, error) {
	return find[clubs.Club](r.db.WithContext(ctx).Order("created_at ASC"))
}

func (r *ClubsRepo) CreateMember(ctx context.Context, m clubs.Member) error {
	return create(ctx, r.db, &m)
}

func (r *ClubsRepo) GetMember(ctx context.Context, id string) (clubs.Member, error) {
	return first[clubs.Member](ctx, r.db, "id = ?", id)
}

func (r *ClubsRepo) FindMember(ctx context.Context, clubID, userID string) (clubs.Member, error) {
	return first[clubs.Member](ctx, r.db, "club_id = ? AND user_id = ?", clubID, userID)
}

func (r *ClubsRepo) ListMembers(ctx context.Context, clubID string) ([]clubs.Member, error) {
	return find[clubs.Member](r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("created_at ASC"))
}

func (r *ClubsRepo) UpdateMember(ctx context.Context, m clubs.Member) error {
	return save(ctx, r.db, &m)
}

func (r *ClubsRepo) DeleteMember(ctx context.Context, id string) error {
	return deleteByID[clubs.Member](ctx, r.db, id)
}

func (r *ClubsRepo) CreateCertifier(ctx context.Context, c clubs.Certifier) error {
	return create(ctx, r.db, &c)
}

func (r *ClubsRepo) FindCertifier(ctx context.Context, clubID, userID string) (clubs.Certifier, error) {
	return first[clubs.Certifier](ctx, r.db, "club_id = ? AND user_id = ?", clubID, userID)
}

func (r *ClubsRepo) ListCertifiers(ctx context.Context, clubID string) ([]clubs.Certifier, error) {
	return find[clubs.Certifier](r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("created_at ASC"))
}
