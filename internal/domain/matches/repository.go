package matches

import "context"

type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, id string) (Match, error)
	FindByPair(ctx context.Context, ownerID, sitterID string) (Match, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Match, error)
	ListBySitter(ctx context.Context, sitterID string) ([]Match, error)
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) error
}
