package certifications

import "context"

type Repository interface {
	Create(ctx context.Context, c Certification) error
	GetByID(ctx context.Context, id string) (Certification, error)
	FindByCoursePet(ctx context.Context, courseID, petID string) (Certification, error)
	ListByPet(ctx context.Context, petID string) ([]Certification, error)
	Update(ctx context.Context, c Certification) error
}
