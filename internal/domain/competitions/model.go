package competitions

import (
	"time"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/workflow"
)

// TargetType de una inscripción a competencia.
// @Enum USER, PET
type TargetType string

const (
	TargetUser TargetType = "USER"
	TargetPet  TargetType = "PET"
)

type Competition struct {
	ID          string        `json:"id" gorm:"primaryKey;type:text"`
	Name        string        `json:"name" gorm:"not null"`
	Description string        `json:"description"`
	IssuerType  authz.OrgKind `json:"issuerType" gorm:"type:text;not null"`
	ClubID      *string       `json:"clubId" gorm:"type:text;index"`
	KennelID    *string       `json:"kennelId" gorm:"type:text;index"`
	CreatedByID string        `json:"createdById" gorm:"type:text;not null"`
	StartsAt    *time.Time    `json:"startsAt,omitempty"`
	EndsAt      *time.Time    `json:"endsAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (Competition) TableName() string { return "competitions" }

func (c Competition) Issuer() authz.Issuer { return authz.IssuerFromColumns(c.ClubID, c.KennelID) }

// Closed reporta si la ventana ya terminó.
func (c Competition) Closed(now time.Time) bool {
	return c.EndsAt != nil && c.EndsAt.Before(now)
}

type Entry struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	CompetitionID string          `json:"competitionId" gorm:"type:text;not null;uniqueIndex:ux_competition_entries_comp_user,priority:1;uniqueIndex:ux_competition_entries_comp_pet,priority:1"`
	TargetType    TargetType      `json:"targetType" gorm:"type:text;not null"`
	UserID        *string         `json:"userId" gorm:"type:text;uniqueIndex:ux_competition_entries_comp_user,priority:2"`
	PetID         *string         `json:"petId" gorm:"type:text;uniqueIndex:ux_competition_entries_comp_pet,priority:2"`
	RequestedByID string          `json:"requestedById" gorm:"type:text;not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null"`
	Notes         string          `json:"notes"`
	ProcessedByID *string         `json:"processedById,omitempty" gorm:"type:text"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Entry) TableName() string { return "competition_entries" }

func (e Entry) TargetID() string {
	if e.PetID != nil {
		return *e.PetID
	}
	if e.UserID != nil {
		return *e.UserID
	}
	return ""
}

// AllowedAwarder es la nominación de un usuario habilitado para premiar en nombre de la competencia.
type AllowedAwarder struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	CompetitionID string          `json:"competitionId" gorm:"type:text;not null;uniqueIndex:ux_competition_awarders_comp_user,priority:1"`
	UserID        string          `json:"userId" gorm:"type:text;not null;uniqueIndex:ux_competition_awarders_comp_user,priority:2"`
	NominatedByID string          `json:"nominatedById" gorm:"type:text;not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null"`
	ProcessedByID *string         `json:"processedById,omitempty" gorm:"type:text"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (AllowedAwarder) TableName() string { return "competition_allowed_awarders" }

// Award queda ligado a una sola competencia; CompetitionID se setea una única vez.
type Award struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	CompetitionID *string   `json:"competitionId" gorm:"type:text;index"`
	CreatedByID   string    `json:"createdById" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Award) TableName() string { return "awards" }

type CompetitionAward struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	CompetitionID   string    `json:"competitionId" gorm:"type:text;not null;uniqueIndex:ux_competition_awards_comp_award,priority:1"`
	AwardID         string    `json:"awardId" gorm:"type:text;not null;uniqueIndex:ux_competition_awards_comp_award,priority:2"`
	EntryID         *string   `json:"entryId,omitempty" gorm:"type:text"`
	AwardedByUserID string    `json:"awardedByUserId" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (CompetitionAward) TableName() string { return "competition_awards" }
