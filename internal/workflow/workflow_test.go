package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/platform/apperr"
)

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"APPROVE", "approve", "ACCEPTED", " accept "} {
		d, err := ParseDecision(s)
		require.NoError(t, err, s)
		assert.Equal(t, Approve, d)
	}
	for _, s := range []string{"REJECT", "rejected"} {
		d, err := ParseDecision(s)
		require.NoError(t, err, s)
		assert.Equal(t, Reject, d)
	}

	_, err := ParseDecision("")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = ParseDecision("MAYBE")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestApply_EnrollmentFromApplied(t *testing.T) {
	out, err := Enrollment.Apply(StatusApplied, Approve)
	require.NoError(t, err)
	assert.Equal(t, Outcome{From: StatusApplied, To: StatusApproved}, out)

	out, err = Enrollment.Apply(StatusApplied, Reject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.To)
	assert.False(t, out.Delete)
}

func TestApply_ClubRejectDeletes(t *testing.T) {
	out, err := ClubMembership.Apply(StatusPending, Reject)
	require.NoError(t, err)
	assert.True(t, out.Delete)
	assert.Equal(t, Deleted, out.MetricLabel())

	out, err = ClubMembership.Apply(StatusPending, Approve)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, out.To)
	assert.Equal(t, "ACCEPTED", out.MetricLabel())
}

func TestApply_TerminalStatesAreAlreadyProcessed(t *testing.T) {
	_, err := Match.Apply(StatusAccepted, Approve)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Already responded", e.Message)

	_, err = Certification.Apply(StatusRejected, Reject)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.True(t, Certification.IsTerminal(StatusApproved))
	assert.False(t, Certification.IsTerminal(StatusPending))
}

type row struct {
	ID     string
	Status Status
}

func describeRow(r row) (string, string) { return r.ID, string(r.Status) }

func TestCreateOnce_PreCheckFindsExisting(t *testing.T) {
	created := false
	err := CreateOnce(context.Background(), Guard[row]{
		Message:  "Certification already requested",
		Find:     func(context.Context) (row, error) { return row{ID: "c1", Status: StatusPending}, nil },
		Create:   func(context.Context) error { created = true; return nil },
		Describe: describeRow,
	})

	require.Error(t, err)
	assert.False(t, created)
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, "c1", e.ExistingID)
	assert.Equal(t, "PENDING", e.ExistingStatus)
}

func TestCreateOnce_CreatesWhenAbsent(t *testing.T) {
	created := false
	err := CreateOnce(context.Background(), Guard[row]{
		Find:   func(context.Context) (row, error) { return row{}, apperr.ErrRecordNotFound },
		Create: func(context.Context) error { created = true; return nil },
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestCreateOnce_UniqueViolationIsAuthoritative(t *testing.T) {
	finds := 0
	err := CreateOnce(context.Background(), Guard[row]{
		Message: "Match already exists",
		Find: func(context.Context) (row, error) {
			finds++
			if finds == 1 {
				return row{}, apperr.ErrRecordNotFound
			}
			return row{ID: "m-winner", Status: StatusPending}, nil
		},
		Create:   func(context.Context) error { return apperr.ErrDuplicateKey },
		Describe: describeRow,
	})

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, "m-winner", e.ExistingID)
	assert.Equal(t, 2, finds)
}

func TestCreateOnce_StoreErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	err := CreateOnce(context.Background(), Guard[row]{
		Find:   func(context.Context) (row, error) { return row{}, boom },
		Create: func(context.Context) error { return nil },
	})
	assert.ErrorIs(t, err, boom)

	err = CreateOnce(context.Background(), Guard[row]{
		Find:   func(context.Context) (row, error) { return row{}, apperr.ErrRecordNotFound },
		Create: func(context.Context) error { return boom },
	})
	assert.ErrorIs(t, err, boom)
}
