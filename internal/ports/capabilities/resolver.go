package capabilities

import "context"

// RoleResolver responde si un usuario tiene un rol de plataforma (UserRole).
type RoleResolver interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}
