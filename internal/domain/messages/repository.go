package messages

import "context"

type Repository interface {
	Create(ctx context.Context, m Message) error
	// ListByMatch devuelve los últimos limit mensajes en orden ascendente.
	ListByMatch(ctx context.Context, matchID string, limit int) ([]Message, error)
}
