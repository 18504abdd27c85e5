package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
)

type PetsRepo struct {
	db *gorm.DB
}

func NewPetsRepo(db *gorm.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_id, kennel_id,
	name, species, breed, sex,
	birth_date, microchip, notes,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO pets (`+petColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		p.ID,
		p.OwnerID,
		p.KennelID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.BirthDate,
		p.Microchip,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	).Error
	return translate(err)
}

// Update no toca kennel_id: solo lo cambia SaveLinkDecision.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE pets
		SET
			name = ?,
			species = ?,
			breed = ?,
			sex = ?,
			birth_date = ?,
			microchip = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.BirthDate,
		p.Microchip,
		p.Notes,
		p.UpdatedAt,
		p.ID,
	)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, apperr.ErrRecordNotFound
	}

	var out []pets.Pet
	err := r.db.WithContext(ctx).Raw(`SELECT `+petColumns+` FROM pets WHERE id = ?`, id).Scan(&out).Error
	if err != nil {
		return pets.Pet{}, translate(err)
	}
	if len(out) == 0 {
		return pets.Pet{}, apperr.ErrRecordNotFound
	}
	return out[0], nil
}

// Delete borra la mascota y sus solicitudes de vínculo.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&pets.KennelLink{}).Error; err != nil {
			return translate(err)
		}
		return deleteByID[pets.Pet](ctx, tx, id)
	})
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.list(ctx, "owner_id", ownerID)
}

func (r *PetsRepo) ListByKennel(ctx context.Context, kennelID string) ([]pets.Pet, error) {
	return r.list(ctx, "kennel_id", kennelID)
}

func (r *PetsRepo) list(ctx context.Context, column, value string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	value = strings.TrimSpace(value)
	if value == "" {
		return out, nil
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+petColumns+`
		FROM pets
		WHERE `+column+` = ?
		ORDER BY created_at ASC
	`, value).Scan(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *PetsRepo) CreateLink(ctx context.Context, l pets.KennelLink) error {
	return create(ctx, r.db, &l)
}

func (r *PetsRepo) GetLink(ctx context.Context, id string) (pets.KennelLink, error) {
	return first[pets.KennelLink](ctx, r.db, "id = ?", id)
}

func (r *PetsRepo) FindLink(ctx context.Context, petID, kennelID string) (pets.KennelLink, error) {
	return first[pets.KennelLink](ctx, r.db, "pet_id = ? AND kennel_id = ?", petID, kennelID)
}

func (r *PetsRepo) ListLinksByKennel(ctx context.Context, kennelID, status string) ([]pets.KennelLink, error) {
	q := r.db.WithContext(ctx).Where("kennel_id = ?", kennelID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return find[pets.KennelLink](q.Order("created_at ASC"))
}

func (r *PetsRepo) SaveLinkDecision(ctx context.Context, l pets.KennelLink, setKennel bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := save(ctx, tx, &l); err != nil {
			return err
		}
		if !setKennel {
			return nil
		}
		updates := map[string]any{"kennel_id": l.KennelID}
		if l.ProcessedAt != nil {
			updates["updated_at"] = *l.ProcessedAt
		}
		res := tx.Model(&pets.Pet{}).Where("id = ?", l.PetID).Updates(updates)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrRecordNotFound
		}
		return nil
	})
}
