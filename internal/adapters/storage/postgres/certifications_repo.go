package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/certifications"
)

type CertificationsRepo struct {
	db *gorm.DB
}

func NewCertificationsRepo(db *gorm.DB) *CertificationsRepo {
	return &CertificationsRepo{db: db}
}

func (r *CertificationsRepo) Create(ctx context.Context, c certifications.Certification) error {
	return create(ctx, r.db, &c)
}

func (r *CertificationsRepo) GetByID(ctx context.Context, id string) (certifications.Certification, error) {
	return first[certifications.Certification](ctx, r.db, "id = ?", id)
}

func (r *CertificationsRepo) FindByCoursePet(ctx context.Context, courseID, petID string) (certifications.Certification, error) {
	return first[certifications.Certification](ctx, r.db, "course_id = ? AND pet_id = ?", courseID, petID)
}

func (r *CertificationsRepo) ListByPet(ctx context.Context, petID string) ([]certifications.Certification, error) {
	return find[certifications.Certification](r.db.WithContext(ctx).Where("pet_id = ?", petID).Order("created_at ASC"))
}

func (r *CertificationsRepo) Update(ctx context.Context, c certifications.Certification) error {
	return save(ctx, r.db, &c)
}
