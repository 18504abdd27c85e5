package messages

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/adapters/realtime"
	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/workflow"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	maxBody      = 4000
)

// Matches resuelve el match validando que el actor sea parte (matches.Service).
type Matches interface {
	Get(ctx context.Context, actorID, matchID string) (matches.Match, error)
}

// Profiles arma el snippet del remitente (users.Service).
type Profiles interface {
	Snippet(ctx context.Context, userID string) (users.Snippet, error)
}

// Broadcaster reparte el evento a los websockets del room.
type Broadcaster interface {
	Broadcast(ctx context.Context, room string, v any) error
}

type Service struct {
	repo     Repository
	matches  Matches
	profiles Profiles
	bus      Broadcaster
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, m Matches, p Profiles, bus Broadcaster, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		matches:  m,
		profiles: p,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// Send persiste y luego difunde. Un fallo del broadcast se loguea y no se propaga.
func (s *Service) Send(ctx context.Context, actorID, matchID, body string) (Event, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Event{}, apperr.Validation("body is required")
	}
	if len(body) > maxBody {
		return Event{}, apperr.Validation("body is too long")
	}
	m, err := s.matches.Get(ctx, actorID, matchID)
	if err != nil {
		return Event{}, err
	}
	if m.Status != workflow.StatusAccepted {
		return Event{}, apperr.Validation("Match is not accepted").WithDetails("current status is " + string(m.Status))
	}

	msg := Message{
		ID:        uuid.NewString(),
		MatchID:   m.ID,
		SenderID:  actorID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return Event{}, err
	}

	sender, err := s.profiles.Snippet(ctx, actorID)
	if err != nil {
		s.log.Warn("messages: sender snippet failed", map[string]any{"user_id": actorID, "err": err.Error()})
		sender = users.Snippet{UserID: actorID}
	}
	ev := Event{Type: EventMessage, Message: msg, Sender: sender}

	if s.bus != nil {
		if err := s.bus.Broadcast(ctx, realtime.Room(m.ID), ev); err != nil {
			metrics.RecordBroadcast(false)
			s.log.Error("messages: broadcast failed", map[string]any{"match_id": m.ID, "err": err.Error()})
		} else {
			metrics.RecordBroadcast(true)
		}
	}
	return ev, nil
}

// List devuelve el historial ascendente. limit: 1..200, default 50.
func (s *Service) List(ctx context.Context, actorID, matchID string, limit int) ([]Message, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, apperr.Validation("limit must be between 1 and 200")
	}
	m, err := s.matches.Get(ctx, actorID, matchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByMatch(ctx, m.ID, limit)
}

// CanSubscribe valida que el actor pueda abrir el websocket del match.
func (s *Service) CanSubscribe(ctx context.Context, actorID, matchID string) (string, error) {
	m, err := s.matches.Get(ctx, actorID, matchID)
	if err != nil {
		return "", err
	}
	return realtime.Room(m.ID), nil
}
