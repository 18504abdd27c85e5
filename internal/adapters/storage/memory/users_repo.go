package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
)

type usersRepo struct {
	mu       sync.RWMutex
	byID     map[string]users.User
	byEmail  map[string]string
	roles    map[string][]users.UserRole
	profiles map[string]users.Profile
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID:     make(map[string]users.User),
		byEmail:  make(map[string]string),
		roles:    make(map[string][]users.UserRole),
		profiles: make(map[string]users.Profile),
	}
}

func (r *usersRepo) Create(_ context.Context, u users.User, role users.UserRole, p users.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return apperr.ErrDuplicateKey
	}
	if _, exists := r.byID[u.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	u.Roles, u.Profile = nil, nil
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.roles[u.ID] = []users.UserRole{role}
	r.profiles[u.ID] = p
	return nil
}

func (r *usersRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, apperr.ErrRecordNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return users.User{}, apperr.ErrRecordNotFound
	}
	return r.byID[id], nil
}

func (r *usersRepo) List(_ context.Context, role string) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0)
	for id, u := range r.byID {
		if role != "" && !hasUserRole(r.roles[id], role) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *usersRepo) AddRole(_ context.Context, ur users.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[ur.UserID]; !ok {
		return apperr.ErrRecordNotFound
	}
	if hasUserRole(r.roles[ur.UserID], ur.Role) {
		return apperr.ErrDuplicateKey
	}
	r.roles[ur.UserID] = append(r.roles[ur.UserID], ur)
	return nil
}

func (r *usersRepo) ListRoles(_ context.Context, userID string) ([]users.UserRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]users.UserRole(nil), r.roles[userID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *usersRepo) GetProfile(_ context.Context, userID string) (users.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return users.Profile{}, apperr.ErrRecordNotFound
	}
	return p, nil
}

func (r *usersRepo) UpdateProfile(_ context.Context, p users.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.UserID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.profiles[p.UserID] = p
	return nil
}

func hasUserRole(rs []users.UserRole, role string) bool {
	for _, r := range rs {
		if r.Role == role {
			return true
		}
	}
	return false
}
