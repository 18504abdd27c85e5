package certifications

import (
	"time"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/workflow"
)

// TargetPet es el único targetType admitido: la plataforma solo certifica mascotas.
const TargetPet = "PET"

// Certification copia el emisor del curso al momento de la solicitud.
type Certification struct {
	ID               string          `json:"id" gorm:"primaryKey;type:text"`
	CourseID         string          `json:"courseId" gorm:"type:text;not null;uniqueIndex:ux_certifications_course_pet,priority:1"`
	TargetType       string          `json:"targetType" gorm:"type:text;not null"`
	PetID            string          `json:"petId" gorm:"type:text;not null;uniqueIndex:ux_certifications_course_pet,priority:2"`
	RequestedByID    string          `json:"requestedById" gorm:"type:text;not null"`
	IssuingClubID    *string         `json:"issuingClubId" gorm:"type:text"`
	IssuingKennelID  *string         `json:"issuingKennelId" gorm:"type:text"`
	Status           workflow.Status `json:"status" gorm:"type:text;not null"`
	Notes            string          `json:"notes"`
	VerifiedByUserID *string         `json:"verifiedByUserId,omitempty" gorm:"type:text"`
	IssuedAt         *time.Time      `json:"issuedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (Certification) TableName() string { return "certifications" }

func (c Certification) Issuer() authz.Issuer {
	return authz.IssuerFromColumns(c.IssuingClubID, c.IssuingKennelID)
}
