package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/paperwork"
)

type PaperworkRepo struct {
	db *gorm.DB
}

func NewPaperworkRepo(db *gorm.DB) *PaperworkRepo {
	return &PaperworkRepo{db: db}
}

func (r *PaperworkRepo) Create(ctx context.Context, s paperwork.Submission) error {
	return create(ctx, r.db, &s)
}

func (r *PaperworkRepo) GetByID(ctx context.Context, id string) (paperwork.Submission, error) {
	return first[paperwork.Submission](ctx, r.db, "id = ?", id)
}

func (r *PaperworkRepo) ListByUser(ctx context.Context, userID string) ([]paperwork.Submission, error) {
	return find[paperwork.Submission](r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC"))
}

func (r *PaperworkRepo) ListByStatus(ctx context.Context, status string) ([]paperwork.Submission, error) {
	return find[paperwork.Submission](r.db.WithContext(ctx).Where("status = ?", status).Order("created_at ASC"))
}

func (r *PaperworkRepo) Update(ctx context.Context, s paperwork.Submission) error {
	return save(ctx, r.db, &s)
}
