package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/platform/apperr"
)

type kennelsRepo struct {
	mu        sync.RWMutex
	byID      map[string]kennels.Kennel
	members   map[string]kennels.Member
	memberKey map[pairKey]string
}

func NewKennelsRepo() kennels.Repository {
	return &kennelsRepo{
		byID:      make(map[string]kennels.Kennel),
		members:   make(map[string]kennels.Member),
		memberKey: make(map[pairKey]string),
	}
}

func (r *kennelsRepo) CreateWithOwner(_ context.Context, k kennels.Kennel, owner kennels.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[k.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[k.ID] = k
	r.members[owner.ID] = owner
	r.memberKey[pairKey{owner.KennelID, owner.UserID}] = owner.ID
	return nil
}

func (r *kennelsRepo) GetByID(_ context.Context, id string) (kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byID[id]
	if !ok {
		return kennels.Kennel{}, apperr.ErrRecordNotFound
	}
	return k, nil
}

func (r *kennelsRepo) List(_ context.Context) ([]kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]kennels.Kennel, 0, len(r.byID))
	for _, k := range r.byID {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *kennelsRepo) CreateMember(_ context.Context, m kennels.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{m.KennelID, m.UserID}
	if _, exists := r.memberKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.members[m.ID] = m
	r.memberKey[k] = m.ID
	return nil
}

func (r *kennelsRepo) GetMember(_ context.Context, id string) (kennels.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return kennels.Member{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (r *kennelsRepo) FindMember(_ context.Context, kennelID, userID string) (kennels.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.memberKey[pairKey{kennelID, userID}]
	if !ok {
		return kennels.Member{}, apperr.ErrRecordNotFound
	}
	return r.members[id], nil
}

func (r *kennelsRepo) ListMembers(_ context.Context, kennelID string) ([]kennels.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]kennels.Member, 0)
	for _, m := range r.members {
		if m.KennelID == kennelID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *kennelsRepo) UpdateMember(_ context.Context, m kennels.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[m.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.members[m.ID] = m
	return nil
}

func (r *kennelsRepo) DeleteMember(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.members, id)
	delete(r.memberKey, pairKey{m.KennelID, m.UserID})
	return nil
}
