package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/images"
)

type ImagesRepo struct {
	db *gorm.DB
}

func NewImagesRepo(db *gorm.DB) *ImagesRepo {
	return &ImagesRepo{db: db}
}

func (r *ImagesRepo) Create(ctx context.Context, img images.Image) error {
	return create(ctx, r.db, &img)
}

func (r *ImagesRepo) GetByID(ctx context.Context, id string) (images.Image, error) {
	return first[images.Image](ctx, r.db, "id = ?", id)
}

func (r *ImagesRepo) ListByPet(ctx context.Context, petID string) ([]images.Image, error) {
	return find[images.Image](r.db.WithContext(ctx).Where("pet_id = ?", petID).Order("created_at ASC"))
}

func (r *ImagesRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[images.Image](ctx, r.db, id)
}
