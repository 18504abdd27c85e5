package images

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
)

// Pets es lo que images usa del módulo pets.
type Pets interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	RequireManager(ctx context.Context, actorID, petID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets Pets
	now  func() time.Time
}

func NewService(repo Repository, p Pets) *Service {
	return &Service{repo: repo, pets: p, now: time.Now}
}

// Add: dueño o staff del kennel vinculado.
func (s *Service) Add(ctx context.Context, actorID, petID, rawURL, caption string) (Image, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if rawURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Image{}, apperr.Validation("url must be an absolute http(s) URL")
	}
	p, err := s.pets.RequireManager(ctx, actorID, petID)
	if err != nil {
		return Image{}, err
	}

	img := Image{
		ID:           uuid.NewString(),
		PetID:        p.ID,
		UploadedByID: actorID,
		URL:          rawURL,
		Caption:      strings.TrimSpace(caption),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return Image{}, err
	}
	return img, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Image, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, p.ID)
}

// Delete: quien la subió o quien gestiona la mascota.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	img, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return apperr.MapNotFound(err, "Image not found")
	}
	if img.UploadedByID != actorID {
		if _, err := s.pets.RequireManager(ctx, actorID, img.PetID); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, img.ID)
}
