package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pet-marketplace/internal/authz"
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
	"pet-marketplace/internal/platform/apperr"
)

// SQLSTATE unique_violation.
const uniqueViolation = "23505"

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewGorm monta gorm sobre el pool pgx ya abierto.
// Sin transacción implícita: las escrituras multi-fila usan Transaction explícito.
func NewGorm(sqlDB *sql.DB) (*gorm.DB, error) {
	return gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Models son todas las tablas del marketplace, en orden de dependencia.
func Models() []any {
	return []any{
		&users.User{}, &users.UserRole{}, &users.Profile{},
		&clubs.Club{}, &clubs.Member{}, &clubs.Certifier{},
		&kennels.Kennel{}, &kennels.Member{},
		&pets.Pet{}, &pets.KennelLink{},
		&courses.Course{}, &courses.Enrollment{}, &courses.CertifierAssignment{},
		&competitions.Competition{}, &competitions.Entry{}, &competitions.AllowedAwarder{},
		&competitions.Award{}, &competitions.CompetitionAward{},
		&certifications.Certification{},
		&paperwork.Submission{},
		&matches.Match{},
		&messages.Message{},
		&images.Image{},
	}
}

// AutoMigrate crea tablas e índices únicos (las unique constraints respaldan los duplicate guards).
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// translate lleva errores de gorm/pgx a los sentinels del dominio.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicateKey, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateKey
	}
	return err
}

func create(ctx context.Context, db *gorm.DB, row any) error {
	return translate(db.WithContext(ctx).Create(row).Error)
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (T, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	return out, translate(err)
}

func find[T any](q *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// save actualiza todas las columnas de la fila (row es puntero con PK seteada).
func save(ctx context.Context, db *gorm.DB, row any) error {
	res := db.WithContext(ctx).Model(row).Select("*").Updates(row)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

// byIssuer filtra por la columna del emisor; sin emisor no filtra.
func byIssuer(q *gorm.DB, iss authz.Issuer) *gorm.DB {
	clubID, kennelID := iss.Columns()
	switch {
	case clubID != nil:
		return q.Where("club_id = ?", *clubID)
	case kennelID != nil:
		return q.Where("kennel_id = ?", *kennelID)
	}
	return q
}
