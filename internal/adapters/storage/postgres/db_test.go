package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := NewGorm(sqlDB)
	require.NoError(t, err)
	return db, mock
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), apperr.ErrRecordNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), apperr.ErrDuplicateKey)

	dup := translate(&pgconn.PgError{Code: "23505", ConstraintName: "ux_matches_owner_sitter"})
	assert.ErrorIs(t, dup, apperr.ErrDuplicateKey)
	assert.Contains(t, dup.Error(), "ux_matches_owner_sitter")

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
	assert.NotErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), apperr.ErrDuplicateKey)
}

func TestPetsRepo_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(`UPDATE pets`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), pets.Pet{ID: "p1", Name: "Firulais", UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, apperr.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_SaveLinkDecisionSetsKennel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)
	now := time.Now()
	actor := "kennel-owner"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pet_kennel_links"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "pets" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveLinkDecision(context.Background(), pets.KennelLink{
		ID:            "l1",
		PetID:         "p1",
		KennelID:      "k1",
		RequestedByID: "owner",
		Status:        workflow.StatusApproved,
		ProcessedByID: &actor,
		ProcessedAt:   &now,
		CreatedAt:     now,
	}, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_SaveLinkDecisionRollsBackWhenPetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pet_kennel_links"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "pets" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SaveLinkDecision(context.Background(), pets.KennelLink{
		ID: "l1", PetID: "gone", KennelID: "k1", Status: workflow.StatusApproved,
	}, true)
	assert.ErrorIs(t, err, apperr.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompetitionsRepo_AssignAwardBoundElsewhere(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCompetitionsRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "awards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "competition_id", "created_by_id"}).
			AddRow("a1", "Best in show", "other-comp", "admin"))
	mock.ExpectRollback()

	err := repo.AssignAward(context.Background(), competitions.CompetitionAward{
		ID: "ca1", CompetitionID: "c1", AwardID: "a1", AwardedByUserID: "u1",
	})
	assert.ErrorIs(t, err, competitions.ErrAwardAlreadyBound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagesRepo_ListByMatchReturnsAscending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessagesRepo(db)
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE match_id = \$1 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "sender_id", "body", "created_at"}).
			AddRow("3", "m1", "u1", "tercero", t0.Add(2*time.Minute)).
			AddRow("2", "m1", "u2", "segundo", t0.Add(time.Minute)))

	out, err := repo.ListByMatch(context.Background(), "m1", 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
