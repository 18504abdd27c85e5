package pets

import (
	"time"

	"pet-marketplace/internal/workflow"
)

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Pet: OwnerID es el dueño exclusivo. KennelID solo se setea cuando un kennel
// aprueba la solicitud de vínculo (origen verificado).
type Pet struct {
	ID       string  `json:"id" gorm:"primaryKey;type:text"`
	OwnerID  string  `json:"ownerId" gorm:"type:text;not null;index"`
	KennelID *string `json:"kennelId" gorm:"type:text;index"`

	Name    string  `json:"name" gorm:"not null"`
	Species Species `json:"species" gorm:"type:text;not null"`
	Breed   string  `json:"breed"`
	Sex     Sex     `json:"sex" gorm:"type:text"`

	BirthDate *time.Time `json:"birthDate,omitempty" gorm:"type:date"`
	Microchip string     `json:"microchip"`
	Notes     string     `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Pet) TableName() string { return "pets" }

// KennelLink es la solicitud del dueño para que un kennel verifique el origen de la mascota.
type KennelLink struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text"`
	PetID         string          `json:"petId" gorm:"type:text;not null;uniqueIndex:ux_pet_kennel_links_pet_kennel,priority:1"`
	KennelID      string          `json:"kennelId" gorm:"type:text;not null;uniqueIndex:ux_pet_kennel_links_pet_kennel,priority:2"`
	RequestedByID string          `json:"requestedById" gorm:"type:text;not null"`
	Status        workflow.Status `json:"status" gorm:"type:text;not null"`
	ProcessedByID *string         `json:"processedById,omitempty" gorm:"type:text"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (KennelLink) TableName() string { return "pet_kennel_links" }
