package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/platform/apperr"
)

type clubsRepo struct {
	mu         sync.RWMutex
	byID       map[string]clubs.Club
	members    map[string]clubs.Member
	memberKey  map[pairKey]string
	certifiers map[pairKey]clubs.Certifier
}

// pairKey indexa las unique constraints compuestas.
type pairKey struct{ a, b string }

func NewClubsRepo() clubs.Repository {
	return &clubsRepo{
		byID:       make(map[string]clubs.Club),
		members:    make(map[string]clubs.Member),
		memberKey:  make(map[pairKey]string),
		certifiers: make(map[pairKey]clubs.Certifier),
	}
}

func (r *clubsRepo) CreateWithOwner(_ context.Context, c clubs.Club, owner clubs.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[c.ID] = c
	r.members[owner.ID] = owner
	r.memberKey[pairKey{owner.ClubID, owner.UserID}] = owner.ID
	return nil
}

func (r *clubsRepo) GetByID(_ context.Context, id string) (clubs.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clubs.Club{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *clubsRepo) List(_ context.Context) ([]clubs.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clubs.Club, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *clubsRepo) CreateMember(_ context.Context, m clubs.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{m.ClubID, m.UserID}
	if _, exists := r.memberKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.members[m.ID] = m
	r.memberKey[k] = m.ID
	return nil
}

func (r *clubsRepo) GetMember(_ context.Context, id string) (clubs.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return clubs.Member{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (r *clubsRepo) FindMember(_ context.Context, clubID, userID string) (clubs.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.memberKey[pairKey{clubID, userID}]
	if !ok {
		return clubs.Member{}, apperr.ErrRecordNotFound
	}
	return r.members[id], nil
}

func (r *clubsRepo) ListMembers(_ context.Context, clubID string) ([]clubs.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clubs.Member, 0)
	for _, m := range r.members {
		if m.ClubID == clubID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *clubsRepo) UpdateMember(_ context.Context, m clubs.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[m.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.members[m.ID] = m
	return nil
}

func (r *clubsRepo) DeleteMember(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.members, id)
	delete(r.memberKey, pairKey{m.ClubID, m.UserID})
	return nil
}

func (r *clubsRepo) CreateCertifier(_ context.Context, c clubs.Certifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{c.ClubID, c.UserID}
	if _, exists := r.certifiers[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.certifiers[k] = c
	return nil
}

func (r *clubsRepo) FindCertifier(_ context.Context, clubID, userID string) (clubs.Certifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.certifiers[pairKey{clubID, userID}]
	if !ok {
		return clubs.Certifier{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *clubsRepo) ListCertifiers(_ context.Context, clubID string) ([]clubs.Certifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clubs.Certifier, 0)
	for _, c := range r.certifiers {
		if c.ClubID == clubID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
