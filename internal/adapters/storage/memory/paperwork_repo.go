package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/paperwork"
	"pet-marketplace/internal/platform/apperr"
)

type paperworkRepo struct {
	mu   sync.RWMutex
	byID map[string]paperwork.Submission
}

func NewPaperworkRepo() paperwork.Repository {
	return &paperworkRepo{byID: make(map[string]paperwork.Submission)}
}

func (r *paperworkRepo) Create(_ context.Context, s paperwork.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[s.ID] = s
	return nil
}

func (r *paperworkRepo) GetByID(_ context.Context, id string) (paperwork.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return paperwork.Submission{}, apperr.ErrRecordNotFound
	}
	return s, nil
}

func (r *paperworkRepo) ListByUser(_ context.Context, userID string) ([]paperwork.Submission, error) {
	return r.filter(func(s paperwork.Submission) bool { return s.UserID == userID }), nil
}

func (r *paperworkRepo) ListByStatus(_ context.Context, status string) ([]paperwork.Submission, error) {
	return r.filter(func(s paperwork.Submission) bool { return string(s.Status) == status }), nil
}

func (r *paperworkRepo) filter(keep func(paperwork.Submission) bool) []paperwork.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]paperwork.Submission, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *paperworkRepo) Update(_ context.Context, s paperwork.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.byID[s.ID] = s
	return nil
}
