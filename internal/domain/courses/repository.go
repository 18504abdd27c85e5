package courses

import (
	"context"

	"pet-marketplace/internal/authz"
)

type Repository interface {
	Create(ctx context.Context, c Course) error
	GetByID(ctx context.Context, id string) (Course, error)
	// List filtra por emisor si iss no es cero.
	List(ctx context.Context, iss authz.Issuer) ([]Course, error)

	CreateEnrollment(ctx context.Context, e Enrollment) error
	GetEnrollment(ctx context.Context, id string) (Enrollment, error)
	// FindEnrollment busca por clave natural (courseId, target).
	FindEnrollment(ctx context.Context, courseID string, target TargetType, targetID string) (Enrollment, error)
	ListEnrollments(ctx context.Context, courseID string) ([]Enrollment, error)
	UpdateEnrollment(ctx context.Context, e Enrollment) error

	CreateCertifier(ctx context.Context, a CertifierAssignment) error
	FindCertifier(ctx context.Context, courseID, userID string) (CertifierAssignment, error)
	ListCertifiers(ctx context.Context, courseID string) ([]CertifierAssignment, error)
}
