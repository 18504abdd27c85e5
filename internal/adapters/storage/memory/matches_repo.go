package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/platform/apperr"
)

type matchesRepo struct {
	mu     sync.RWMutex
	byID   map[string]matches.Match
	byPair map[pairKey]string
}

func NewMatchesRepo() matches.Repository {
	return &matchesRepo{
		byID:   make(map[string]matches.Match),
		byPair: make(map[pairKey]string),
	}
}

func (r *matchesRepo) Create(_ context.Context, m matches.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{m.OwnerID, m.SitterID}
	if _, exists := r.byPair[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[m.ID] = m
	r.byPair[k] = m.ID
	return nil
}

func (r *matchesRepo) GetByID(_ context.Context, id string) (matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return matches.Match{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (r *matchesRepo) FindByPair(_ context.Context, ownerID, sitterID string) (matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pairKey{ownerID, sitterID}]
	if !ok {
		return matches.Match{}, apperr.ErrRecordNotFound
	}
	return r.byID[id], nil
}

func (r *matchesRepo) ListByOwner(_ context.Context, ownerID string) ([]matches.Match, error) {
	return r.filter(func(m matches.Match) bool { return m.OwnerID == ownerID }), nil
}

func (r *matchesRepo) ListBySitter(_ context.Context, sitterID string) ([]matches.Match, error) {
	return r.filter(func(m matches.Match) bool { return m.SitterID == sitterID }), nil
}

func (r *matchesRepo) filter(keep func(matches.Match) bool) []matches.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, m)
		}
	}
	// más recientes primero
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *matchesRepo) Update(_ context.Context, m matches.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *matchesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.byID, id)
	delete(r.byPair, pairKey{m.OwnerID, m.SitterID})
	return nil
}
