package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	ListByKennel(ctx context.Context, kennelID string) ([]Pet, error)

	CreateLink(ctx context.Context, l KennelLink) error
	GetLink(ctx context.Context, id string) (KennelLink, error)
	FindLink(ctx context.Context, petID, kennelID string) (KennelLink, error)
	// ListLinksByKennel filtra por status si status != "".
	ListLinksByKennel(ctx context.Context, kennelID, status string) ([]KennelLink, error)
	// SaveLinkDecision persiste el link procesado y, si setKennel, pet.kennelId en la misma escritura.
	SaveLinkDecision(ctx context.Context, l KennelLink, setKennel bool) error
}
