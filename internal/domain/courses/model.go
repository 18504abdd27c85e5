package courses

import (
	"time"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/workflow"
)

// TargetType indica si la inscripción es de un usuario o de una mascota.
// @Enum USER, PET
type TargetType string

const (
	TargetUser TargetType = "USER"
	TargetPet  TargetType = "PET"
)

// Course lo emite exactamente un club o un kennel.
type Course struct {
	ID          string        `json:"id" gorm:"primaryKey;type:text"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	IssuerType  authz.OrgKind `json:"issuerType" gorm:"type:text;not null"`
	ClubID      *string       `json:"clubId" gorm:"type:text;index"`
	KennelID    *string       `json:"kennelId" gorm:"type:text;index"`
	CreatedByID string        `json:"createdById" gorm:"type:text;not null"`
	StartsAt    *time.Time    `json:"startsAt,omitempty"`
	EndsAt      *time.Time    `json:"endsAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (Course) TableName() string { return "courses" }

func (c Course) Issuer() authz.Issuer { return authz.IssuerFromColumns(c.ClubID, c.KennelID) }

// Enrollment: exactamente uno de UserID/PetID está seteado.
// Las unique (course,user) y (course,pet) admiten múltiples NULL.
type Enrollment struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	CourseID      string          `json:"courseId" gorm:"type:text;not null;uniqueIndex:ux_course_enrollments_course_user,priority:1;uniqueIndex:ux_course_enrollments_course_pet,priority:1"`
	TargetType    TargetType      `json:"targetType" gorm:"type:text;not null"`
	UserID        *string         `json:"userId" gorm:"type:text;uniqueIndex:ux_course_enrollments_course_user,priority:2"`
	PetID         *string         `json:"petId" gorm:"type:text;uniqueIndex:ux_course_enrollments_course_pet,priority:2"`
	RequestedByID string          `json:"requestedById" gorm:"type:text;not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null"`
	Notes         string          `json:"notes"`
	ProcessedByID *string         `json:"processedBy,omitempty" gorm:"type:text"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Enrollment) TableName() string { return "course_enrollments" }

// TargetID devuelve el id del usuario o mascota inscriptos.
func (e Enrollment) TargetID() string {
	if e.PetID != nil {
		return *e.PetID
	}
	if e.UserID != nil {
		return *e.UserID
	}
	return ""
}

// CertifierAssignment habilita a un miembro del club a certificar un curso puntual.
type CertifierAssignment struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	CourseID     string    `json:"courseId" gorm:"type:text;not null;uniqueIndex:ux_course_certifiers_course_user,priority:1"`
	UserID       string    `json:"userId" gorm:"type:text;not null;uniqueIndex:ux_course_certifiers_course_user,priority:2"`
	AssignedByID string    `json:"assignedById" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (CertifierAssignment) TableName() string { return "course_certifier_assignments" }
