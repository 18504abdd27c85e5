package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/images"
	"pet-marketplace/internal/platform/apperr"
)

type imagesRepo struct {
	mu   sync.RWMutex
	byID map[string]images.Image
}

func NewImagesRepo() images.Repository {
	return &imagesRepo{byID: make(map[string]images.Image)}
}

func (r *imagesRepo) Create(_ context.Context, img images.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[img.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[img.ID] = img
	return nil
}

func (r *imagesRepo) GetByID(_ context.Context, id string) (images.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.byID[id]
	if !ok {
		return images.Image{}, apperr.ErrRecordNotFound
	}
	return img, nil
}

func (r *imagesRepo) ListByPet(_ context.Context, petID string) ([]images.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]images.Image, 0)
	for _, img := range r.byID {
		if img.PetID == petID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *imagesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}
