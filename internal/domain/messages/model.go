package messages

import (
	"time"

	"pet-marketplace/internal/domain/users"
)

type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	MatchID   string    `json:"matchId" gorm:"type:text;not null;index:ix_messages_match_created,priority:1"`
	SenderID  string    `json:"senderId" gorm:"type:text;not null"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:ix_messages_match_created,priority:2"`
}

func (Message) TableName() string { return "messages" }

// Event es lo que recibe cada websocket suscripto al match.
type Event struct {
	Type    string        `json:"type"`
	Message Message       `json:"message"`
	Sender  users.Snippet `json:"sender"`
}

const EventMessage = "message"
