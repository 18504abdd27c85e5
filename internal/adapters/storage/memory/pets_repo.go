package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
)

type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	links   map[string]pets.KennelLink
	linkKey map[pairKey]string
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		links:   make(map[string]pets.KennelLink),
		linkKey: make(map[pairKey]string),
	}
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, apperr.ErrRecordNotFound
	}
	return p, nil
}

func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.byID[p.ID] = p
	return nil
}

// Delete borra la mascota y sus solicitudes de vínculo.
func (r *petRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.byID, id)
	for lid, l := range r.links {
		if l.PetID == id {
			delete(r.links, lid)
			delete(r.linkKey, pairKey{l.PetID, l.KennelID})
		}
	}
	return nil
}

func (r *petRepo) ListByOwner(_ context.Context, ownerID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.OwnerID == ownerID }), nil
}

func (r *petRepo) ListByKennel(_ context.Context, kennelID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.KennelID != nil && *p.KennelID == kennelID }), nil
}

func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *petRepo) CreateLink(_ context.Context, l pets.KennelLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{l.PetID, l.KennelID}
	if _, exists := r.linkKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.links[l.ID] = l
	r.linkKey[k] = l.ID
	return nil
}

func (r *petRepo) GetLink(_ context.Context, id string) (pets.KennelLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.links[id]
	if !ok {
		return pets.KennelLink{}, apperr.ErrRecordNotFound
	}
	return l, nil
}

func (r *petRepo) FindLink(_ context.Context, petID, kennelID string) (pets.KennelLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.linkKey[pairKey{petID, kennelID}]
	if !ok {
		return pets.KennelLink{}, apperr.ErrRecordNotFound
	}
	return r.links[id], nil
}

func (r *petRepo) ListLinksByKennel(_ context.Context, kennelID, status string) ([]pets.KennelLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.KennelLink, 0)
	for _, l := range r.links {
		if l.KennelID != kennelID {
			continue
		}
		if status != "" && string(l.Status) != status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *petRepo) SaveLinkDecision(_ context.Context, l pets.KennelLink, setKennel bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[l.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	if setKennel {
		p, ok := r.byID[l.PetID]
		if !ok {
			return apperr.ErrRecordNotFound
		}
		kid := l.KennelID
		p.KennelID = &kid
		if l.ProcessedAt != nil {
			p.UpdatedAt = *l.ProcessedAt
		}
		r.byID[p.ID] = p
	}
	r.links[l.ID] = l
	return nil
}
