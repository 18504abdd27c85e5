package users

import "context"

type Repository interface {
	// Create inserta usuario, rol inicial y perfil en una sola escritura.
	// Email repetido => apperr.ErrDuplicateKey.
	Create(ctx context.Context, u User, role UserRole, p Profile) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// List filtra por rol si role != "".
	List(ctx context.Context, role string) ([]User, error)

	AddRole(ctx context.Context, r UserRole) error
	// ListRoles en orden de otorgamiento.
	ListRoles(ctx context.Context, userID string) ([]UserRole, error)

	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, p Profile) error
}
