package kennels

import (
	"time"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/workflow"
)

// Roles válidos en un kennel.
var Roles = []authz.Role{authz.RoleOwner, authz.RoleManager, authz.RoleEmployee, authz.RoleMember}

type Kennel struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	CreatedByID string    `json:"createdById" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Kennel) TableName() string { return "kennels" }

// Member es una fila KennelMember. Las solicitudes entran como MEMBER/PENDING
// y un OWNER las promueve.
type Member struct {
	ID        string          `json:"id" gorm:"primaryKey;type:text"`
	KennelID  string          `json:"kennelId" gorm:"type:text;not null;uniqueIndex:ux_kennel_members_kennel_user,priority:1"`
	UserID    string          `json:"userId" gorm:"type:text;not null;uniqueIndex:ux_kennel_members_kennel_user,priority:2"`
	Role      authz.Role      `json:"role" gorm:"type:text;not null"`
	Status    workflow.Status `json:"status" gorm:"type:text;not null"`
	JoinedAt  *time.Time      `json:"joinedAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Member) TableName() string { return "kennel_members" }
