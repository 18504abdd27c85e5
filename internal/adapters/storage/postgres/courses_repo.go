package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/courses"
)

type CoursesRepo struct {
	db *gorm.DB
}

func NewCoursesRepo(db *gorm.DB) *CoursesRepo {
	return &CoursesRepo{db: db}
}

func (r *CoursesRepo) Create(ctx context.Context, c courses.Course) error {
	return create(ctx, r.db, &c)
}

func (r *CoursesRepo) GetByID(ctx context.Context, id string) (courses.Course, error) {
	return first[courses.Course](ctx, r.db, "id = ?", id)
}

func (r *CoursesRepo) List(ctx context.Context, iss authz.Issuer) ([]courses.Course, error) {
	return find[courses.Course](byIssuer(r.db.WithContext(ctx), iss).Order("created_at ASC"))
}

func (r *CoursesRepo) CreateEnrollment(ctx context.Context, e courses.Enrollment) error {
	return create(ctx, r.db, &e)
}

func (r *CoursesRepo) GetEnrollment(ctx context.Context, id string) (courses.Enrollment, error) {
	return first[courses.Enrollment](ctx, r.db, "id = ?", id)
}

func (r *CoursesRepo) FindEnrollment(ctx context.Context, courseID string, target courses.TargetType, targetID string) (courses.Enrollment, error) {
	if target == courses.TargetPet {
		return first[courses.Enrollment](ctx, r.db, "course_id = ? AND pet_id = ?", courseID, targetID)
	}
	return first[courses.Enrollment](ctx, r.db, "course_id = ? AND user_id = ?", courseID, targetID)
}

func (r *CoursesRepo) ListEnrollments(ctx context.Context, courseID string) ([]courses.Enrollment, error) {
	return find[courses.Enrollment](r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at ASC"))
}

func (r *CoursesRepo) UpdateEnrollment(ctx context.Context, e courses.Enrollment) error {
	return save(ctx, r.db, &e)
}

func (r *CoursesRepo) CreateCertifier(ctx context.Context, a courses.CertifierAssignment) error {
	return create(ctx, r.db, &a)
}

func (r *CoursesRepo) FindCertifier(ctx context.Context, courseID, userID string) (courses.CertifierAssignment, error) {
	return first[courses.CertifierAssignment](ctx, r.db, "course_id = ? AND user_id = ?", courseID, userID)
}

func (r *CoursesRepo) ListCertifiers(ctx context.Context, courseID string) ([]courses.CertifierAssignment, error) {
	return find[courses.CertifierAssignment](r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at ASC"))
}
