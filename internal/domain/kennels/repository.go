package kennels

import "context"

type Repository interface {
	// CreateWithOwner inserta el kennel y la membresía OWNER del creador juntos.
	CreateWithOwner(ctx context.Context, k Kennel, owner Member) error
	GetByID(ctx context.Context, id string) (Kennel, error)
	List(ctx context.Context) ([]Kennel, error)

	CreateMember(ctx context.Context, m Member) error
	GetMember(ctx context.Context, id string) (Member, error)
	FindMember(ctx context.Context, kennelID, userID string) (Member, error)
	ListMembers(ctx context.Context, kennelID string) ([]Member, error)
	UpdateMember(ctx context.Context, m Member) error
	DeleteMember(ctx context.Context, id string) error
}
