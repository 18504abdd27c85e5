package postgres

import (
	"context"
	"slices"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/messages"
)

type MessagesRepo struct {
	db *gorm.DB
}

func NewMessagesRepo(db *gorm.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Create(ctx context.Context, m messages.Message) error {
	return create(ctx, r.db, &m)
}

// ListByMatch lee DESC con limit (usa ix_messages_match_created) y devuelve en orden ascendente.
func (r *MessagesRepo) ListByMatch(ctx context.Context, matchID string, limit int) ([]messages.Message, error) {
	q := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out, err := find[messages.Message](q)
	if err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}
