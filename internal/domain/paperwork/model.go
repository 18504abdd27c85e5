package paperwork

import (
	"time"

	"pet-marketplace/internal/workflow"
)

// Submission es un certificado/documento que el usuario sube para validar su perfil
// (ej. título de adiestrador). Lo procesa un admin de plataforma.
type Submission struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	UserID        string          `json:"userId" gorm:"type:text;not null;index"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description"`
	DocumentURL   string          `json:"documentUrl" gorm:"not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null;index"`
	Notes         string          `json:"notes"`
	ProcessedByID *string         `json:"processedById,omitempty" gorm:"type:text"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Submission) TableName() string { return "user_certificate_submissions" }
