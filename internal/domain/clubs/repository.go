package clubs

import "context"

type Repository interface {
	// CreateWithOwner inserta el club y la membresía OWNER del creador juntos.
	CreateWithOwner(ctx context.Context, c Club, owner Member) error
	GetByID(ctx context.Context, id string) (Club, error)
	List(ctx context.Context) ([]Club, error)

	CreateMember(ctx context.Context, m Member) error
	GetMember(ctx context.Context, id string) (Member, error)
	FindMember(ctx context.Context, clubID, userID string) (Member, error)
	ListMembers(ctx context.Context, clubID string) ([]Member, error)
	UpdateMember(ctx context.Context, m Member) error
	DeleteMember(ctx context.Context, id string) error

	CreateCertifier(ctx context.Context, c Certifier) error
	FindCertifier(ctx context.Context, clubID, userID string) (Certifier, error)
	ListCertifiers(ctx context.Context, clubID string) ([]Certifier, error)
}
