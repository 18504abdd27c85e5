package matches

import (
	"time"

	"pet-marketplace/internal/workflow"
)

// Match es la solicitud de un dueño a un sitter/kennel. Única por (ownerId, sitterId).
type Match struct {
	ID          string          `json:"id" gorm:"primaryKey;type:text"`
	OwnerID     string          `json:"ownerId" gorm:"type:text;not null;uniqueIndex:ux_matches_owner_sitter,priority:1"`
	SitterID    string          `json:"sitterId" gorm:"type:text;not null;uniqueIndex:ux_matches_owner_sitter,priority:2;index"`
	PetID       *string         `json:"petId,omitempty" gorm:"type:text"`
	Message     string          `json:"message"`
	Status      workflow.Status `json:"status" gorm:"type:text;not null"`
	RespondedAt *time.Time      `json:"respondedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (Match) TableName() string { return "matches" }

// Involves reporta si userID es una de las dos partes.
func (m Match) Involves(userID string) bool {
	return userID != "" && (m.OwnerID == userID || m.SitterID == userID)
}

// Listing es la vista bifurcada de GET /match.
type Listing struct {
	Sent     []Match `json:"sent"`
	Received []Match `json:"received"`
}
