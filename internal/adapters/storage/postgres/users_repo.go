package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/users"
)

type UsersRepo struct {
	db *gorm.DB
}

func NewUsersRepo(db *gorm.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create inserta usuario, rol y perfil en una transacción.
func (r *UsersRepo) Create(ctx context.Context, u users.User, role users.UserRole, p users.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return translate(err)
		}
		if err := tx.Create(&role).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(&p).Error)
	})
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return first[users.User](ctx, r.db, "id = ?", id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return first[users.User](ctx, r.db, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsersRepo) List(ctx context.Context, role string) ([]users.User, error) {
	q := r.db.WithContext(ctx).Model(&users.User{})
	if role != "" {
		q = q.Joins("JOIN user_roles ur ON ur.user_id = users.id AND ur.role = ?", role)
	}
	return find[users.User](q.Order("users.created_at ASC"))
}

func (r *UsersRepo) AddRole(ctx context.Context, ur users.UserRole) error {
	return create(ctx, r.db, &ur)
}

func (r *UsersRepo) ListRoles(ctx context.Context, userID string) ([]users.UserRole, error) {
	return find[users.UserRole](r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC"))
}

func (r *UsersRepo) GetProfile(ctx context.Context, userID string) (users.Profile, error) {
	return first[users.Profile](ctx, r.db, "user_id = ?", userID)
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, p users.Profile) error {
	return save(ctx, r.db, &p)
}
