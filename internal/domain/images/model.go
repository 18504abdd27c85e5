package images

import "time"

// Image guarda solo la URL; el binario vive en un storage externo.
type Image struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	PetID        string    `json:"petId" gorm:"type:text;not null;index"`
	UploadedByID string    `json:"uploadedById" gorm:"type:text;not null"`
	URL          string    `json:"url" gorm:"not null"`
	Caption      string    `json:"caption"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Image) TableName() string { return "images" }
