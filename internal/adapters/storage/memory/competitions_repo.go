package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/platform/apperr"
)

type competitionsRepo struct {
	mu         sync.RWMutex
	byID       map[string]competitions.Competition
	entries    map[string]competitions.Entry
	entryKey   map[pairKey]string
	awarders   map[string]competitions.AllowedAwarder
	awarderKey map[pairKey]string
	awards     map[string]competitions.Award
	assigned   map[pairKey]competitions.CompetitionAward
}

func NewCompetitionsRepo() competitions.Repository {
	return &competitionsRepo{
		byID:       make(map[string]competitions.Competition),
		entries:    make(map[string]competitions.Entry),
		entryKey:   make(map[pairKey]string),
		awarders:   make(map[string]competitions.AllowedAwarder),
		awarderKey: make(map[pairKey]string),
		awards:     make(map[string]competitions.Award),
		assigned:   make(map[pairKey]competitions.CompetitionAward),
	}
}

func entryKey(competitionID string, t competitions.TargetType, targetID string) pairKey {
	return pairKey{competitionID, string(t) + ":" + targetID}
}

func (r *competitionsRepo) Create(_ context.Context, c competitions.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[c.ID] = c
	return nil
}

func (r *competitionsRepo) GetByID(_ context.Context, id string) (competitions.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return competitions.Competition{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *competitionsRepo) List(_ context.Context, iss authz.Issuer) ([]competitions.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competitions.Competition, 0, len(r.byID))
	for _, c := range r.byID {
		if !iss.IsZero() && c.Issuer() != iss {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *competitionsRepo) CreateEntry(_ context.Context, e competitions.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := entryKey(e.CompetitionID, e.TargetType, e.TargetID())
	if _, exists := r.entryKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.entries[e.ID] = e
	r.entryKey[k] = e.ID
	return nil
}

func (r *competitionsRepo) GetEntry(_ context.Context, id string) (competitions.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return competitions.Entry{}, apperr.ErrRecordNotFound
	}
	return e, nil
}

func (r *competitionsRepo) FindEntry(_ context.Context, competitionID string, t competitions.TargetType, targetID string) (competitions.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.entryKey[entryKey(competitionID, t, targetID)]
	if !ok {
		return competitions.Entry{}, apperr.ErrRecordNotFound
	}
	return r.entries[id], nil
}

func (r *competitionsRepo) ListEntries(_ context.Context, competitionID string) ([]competitions.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competitions.Entry, 0)
	for _, e := range r.entries {
		if e.CompetitionID == competitionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *competitionsRepo) UpdateEntry(_ context.Context, e competitions.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.entries[e.ID] = e
	return nil
}

func (r *competitionsRepo) CreateAwarder(_ context.Context, a competitions.AllowedAwarder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{a.CompetitionID, a.UserID}
	if _, exists := r.awarderKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.awarders[a.ID] = a
	r.awarderKey[k] = a.ID
	return nil
}

func (r *competitionsRepo) GetAwarder(_ context.Context, id string) (competitions.AllowedAwarder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.awarders[id]
	if !ok {
		return competitions.AllowedAwarder{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (r *competitionsRepo) FindAwarder(_ context.Context, competitionID, userID string) (competitions.AllowedAwarder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.awarderKey[pairKey{competitionID, userID}]
	if !ok {
		return competitions.AllowedAwarder{}, apperr.ErrRecordNotFound
	}
	return r.awarders[id], nil
}

func (r *competitionsRepo) ListAwarders(_ context.Context, competitionID string) ([]competitions.AllowedAwarder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competitions.AllowedAwarder, 0)
	for _, a := range r.awarders {
		if a.CompetitionID == competitionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *competitionsRepo) UpdateAwarder(_ context.Context, a competitions.AllowedAwarder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.awarders[a.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.awarders[a.ID] = a
	return nil
}

func (r *competitionsRepo) CreateAward(_ context.Context, a competitions.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.awards[a.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.awards[a.ID] = a
	return nil
}

func (r *competitionsRepo) GetAward(_ context.Context, id string) (competitions.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.awards[id]
	if !ok {
		return competitions.Award{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (r *competitionsRepo) ListAwards(_ context.Context) ([]competitions.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competitions.Award, 0, len(r.awards))
	for _, a := range r.awards {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *competitionsRepo) AssignAward(_ context.Context, ca competitions.CompetitionAward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	award, ok := r.awards[ca.AwardID]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	if award.CompetitionID != nil && *award.CompetitionID != ca.CompetitionID {
		return competitions.ErrAwardAlreadyBound
	}
	k := pairKey{ca.CompetitionID, ca.AwardID}
	if _, exists := r.assigned[k]; exists {
		return apperr.ErrDuplicateKey
	}

	r.assigned[k] = ca
	if award.CompetitionID == nil {
		cid := ca.CompetitionID
		award.CompetitionID = &cid
		r.awards[award.ID] = award
	}
	return nil
}

func (r *competitionsRepo) FindCompetitionAward(_ context.Context, competitionID, awardID string) (competitions.CompetitionAward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ca, ok := r.assigned[pairKey{competitionID, awardID}]
	if !ok {
		return competitions.CompetitionAward{}, apperr.ErrRecordNotFound
	}
	return ca, nil
}

func (r *competitionsRepo) ListCompetitionAwards(_ context.Context, competitionID string) ([]competitions.CompetitionAward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competitions.CompetitionAward, 0)
	for _, ca := range r.assigned {
		if ca.CompetitionID == competitionID {
			out = append(out, ca)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
