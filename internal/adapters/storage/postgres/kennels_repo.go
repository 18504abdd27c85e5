package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/kennels"
)

type KennelsRepo struct {
	db *gorm.DB
}

func NewKennelsRepo(db *gorm.DB) *KennelsRepo {
	return &KennelsRepo{db: db}
}

func (r *KennelsRepo) CreateWithOwner(ctx context.Context, k kennels.Kennel, owner kennels.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&k).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(&owner).Error)
	})
}

func (r *KennelsRepo) GetByID(ctx context.Context, id string) (kennels.Kennel, error) {
	return first[kennels.Kennel](ctx, r.db, "id = ?", id)
}

func (r *KennelsRepo) List(ctx context.Context) ([]kennels.Kennel, error) {
	return find[kennels.Kennel](r.db.WithContext(ctx).Order("created_at ASC"))
}

func (r *KennelsRepo) CreateMember(ctx context.Context, m kennels.Member) error {
	return create(ctx, r.db, &m)
}

func (r *KennelsRepo) GetMember(ctx context.Context, id string) (kennels.Member, error) {
	return first[kennels.Member](ctx, r.db, "id = ?", id)
}

func (r *KennelsRepo) FindMember(ctx context.Context, kennelID, userID string) (kennels.Member, error) {
	return first[kennels.Member](ctx, r.db, "kennel_id = ? AND user_id = ?", kennelID, userID)
}

func (r *KennelsRepo) ListMembers(ctx context.Context, kennelID string) ([]kennels.Member, error) {
	return find[kennels.Member](r.db.WithContext(ctx).Where("kennel_id = ?", kennelID).Order("created_at ASC"))
}

func (r *KennelsRepo) UpdateMember(ctx context.Context, m kennels.Member) error {
	return save(ctx, r.db, &m)
}

func (r *KennelsRepo) DeleteMember(ctx context.Context, id string) error {
	return deleteByID[kennels.Member](ctx, r.db, id)
}
