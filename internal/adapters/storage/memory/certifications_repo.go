package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/certifications"
	"pet-marketplace/internal/platform/apperr"
)

type certificationsRepo struct {
	mu    sync.RWMutex
	byID  map[string]certifications.Certification
	byKey map[pairKey]string
}

func NewCertificationsRepo() certifications.Repository {
	return &certificationsRepo{
		byID:  make(map[string]certifications.Certification),
		byKey: make(map[pairKey]string),
	}
}

func (r *certificationsRepo) Create(_ context.Context, c certifications.Certification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{c.CourseID, c.PetID}
	if _, exists := r.byKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[c.ID] = c
	r.byKey[k] = c.ID
	return nil
}

func (r *certificationsRepo) GetByID(_ context.Context, id string) (certifications.Certification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return certifications.Certification{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *certificationsRepo) FindByCoursePet(_ context.Context, courseID, petID string) (certifications.Certification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[pairKey{courseID, petID}]
	if !ok {
		return certifications.Certification{}, apperr.ErrRecordNotFound
	}
	return r.byID[id], nil
}

func (r *certificationsRepo) ListByPet(_ context.Context, petID string) ([]certifications.Certification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]certifications.Certification, 0)
	for _, c := range r.byID {
		if c.PetID == petID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *certificationsRepo) Update(_ context.Context, c certifications.Certification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.byID[c.ID] = c
	return nil
}
