package app

import (
	"gorm.io/gorm"

	mem "pet-marketplace/internal/adapters/storage/memory"
	pg "pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/domain/certifications"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/images"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/domain/messages"
	"pet-marketplace/internal/domain/paperwork"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
)

// Stores agrupa un repo por módulo.
type Stores struct {
	Users          users.Repository
	Clubs          clubs.Repository
	Kennels        kennels.Repository
	Pets           pets.Repository
	Courses        courses.Repository
	Competitions   competitions.Repository
	Certifications certifications.Repository
	Paperwork      paperwork.Repository
	Matches        matches.Repository
	Messages       messages.Repository
	Images         images.Repository
}

// MemoryStores: todo in-memory (dev y tests).
func MemoryStores() Stores {
	return Stores{
		Users:          mem.NewUsersRepo(),
		Clubs:          mem.NewClubsRepo(),
		Kennels:        mem.NewKennelsRepo(),
		Pets:           mem.NewPetRepo(),
		Courses:        mem.NewCoursesRepo(),
		Competitions:   mem.NewCompetitionsRepo(),
		Certifications: mem.NewCertificationsRepo(),
		Paperwork:      mem.NewPaperworkRepo(),
		Matches:        mem.NewMatchesRepo(),
		Messages:       mem.NewMessagesRepo(),
		Images:         mem.NewImagesRepo(),
	}
}

// PostgresStores usa gorm sobre el pool pgx.
func PostgresStores(db *gorm.DB) Stores {
	return Stores{
		Users:          pg.NewUsersRepo(db),
		Clubs:          pg.NewClubsRepo(db),
		Kennels:        pg.NewKennelsRepo(db),
		Pets:           pg.NewPetsRepo(db),
		Courses:        pg.NewCoursesRepo(db),
		Competitions:   pg.NewCompetitionsRepo(db),
		Certifications: pg.NewCertificationsRepo(db),
		Paperwork:      pg.NewPaperworkRepo(db),
		Matches:        pg.NewMatchesRepo(db),
		Messages:       pg.NewMessagesRepo(db),
		Images:         pg.NewImagesRepo(db),
	}
}
