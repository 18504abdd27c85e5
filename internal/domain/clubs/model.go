package clubs

import (
	"time"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/workflow"
)

// Roles válidos en un club.
var Roles = []authz.Role{authz.RoleOwner, authz.RoleAdmin, authz.RoleEmployee, authz.RoleMember}

type Club struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	CreatedByID string    `json:"createdById" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Club) TableName() string { return "clubs" }

// Member es una fila ClubMember: única por (clubId, userId).
type Member struct {
	ID        string          `json:"id" gorm:"primaryKey;type:text"`
	ClubID    string          `json:"clubId" gorm:"type:text;not null;uniqueIndex:ux_club_members_club_user,priority:1"`
	UserID    string          `json:"userId" gorm:"type:text;not null;uniqueIndex:ux_club_members_club_user,priority:2"`
	Role      authz.Role      `json:"role" gorm:"type:text;not null"`
	Status    workflow.Status `json:"status" gorm:"type:text;not null"`
	JoinedAt  *time.Time      `json:"joinedAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Member) TableName() string { return "club_members" }

// Certifier es la nominación de un miembro como certificador del club.
type Certifier struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	ClubID        string          `json:"clubId" gorm:"type:text;not null;uniqueIndex:ux_club_certifiers_club_user,priority:1"`
	UserID        string          `json:"userId" gorm:"type:text;not null;uniqueIndex:ux_club_certifiers_club_user,priority:2"`
	NominatedByID string          `json:"nominatedById" gorm:"type:text;not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (Certifier) TableName() string { return "club_certifiers" }
