package images

import "context"

type Repository interface {
	Create(ctx context.Context, img Image) error
	GetByID(ctx context.Context, id string) (Image, error)
	ListByPet(ctx context.Context, petID string) ([]Image, error)
	Delete(ctx context.Context, id string) error
}
