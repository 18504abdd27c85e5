package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/domain/messages"
)

type messagesRepo struct {
	mu      sync.RWMutex
	byMatch map[string][]messages.Message
}

func NewMessagesRepo() messages.Repository {
	return &messagesRepo{byMatch: make(map[string][]messages.Message)}
}

func (r *messagesRepo) Create(_ context.Context, m messages.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[m.MatchID] = append(r.byMatch[m.MatchID], m)
	return nil
}

func (r *messagesRepo) ListByMatch(_ context.Context, matchID string, limit int) ([]messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.byMatch[matchID]
	out := make([]messages.Message, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
