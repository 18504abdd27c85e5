package matches_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/authz/authztest"
	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

// fakeUsers: id -> rol primario.
type fakeUsers map[string]string

func (f fakeUsers) Exists(_ context.Context, id string) error {
	if _, ok := f[id]; !ok {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (f fakeUsers) HasRole(_ context.Context, id, role string) (bool, error) {
	return f[id] == role, nil
}

type fakePets map[string]string

func (f fakePets) OwnerOf(_ context.Context, petID string) (string, error) {
	o, ok := f[petID]
	if !ok {
		return "", apperr.NotFound("Pet not found")
	}
	return o, nil
}

func newService() *matches.Service {
	u := fakeUsers{"ana": "owner", "bob": "owner", "sam": "sitter", "kim": "kennel"}
	p := fakePets{"pet-ana": "ana", "pet-bob": "bob"}
	return matches.NewService(memory.NewMatchesRepo(), authztest.NewDirectory().RuleSet(), u, u, p)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   matches.CreateInput
		kind apperr.Kind
	}{
		{"missing sitter", matches.CreateInput{}, apperr.KindValidation},
		{"self", matches.CreateInput{SitterID: "ana"}, apperr.KindValidation},
		{"unknown sitter", matches.CreateInput{SitterID: "ghost"}, apperr.KindNotFound},
		{"not matchable", matches.CreateInput{SitterID: "bob"}, apperr.KindValidation},
		{"someone else's pet", matches.CreateInput{SitterID: "sam", PetID: "pet-bob"}, apperr.KindForbidden},
		{"unknown pet", matches.CreateInput{SitterID: "sam", PetID: "nope"}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "ana", tc.in)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}
}

func TestCreate_DuplicatePair(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "ana", matches.CreateInput{SitterID: "sam", PetID: "pet-ana", Message: " hola "})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, m.Status)
	assert.Equal(t, "hola", m.Message)

	_, err = svc.Create(ctx, "ana", matches.CreateInput{SitterID: "sam"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, m.ID, ae.ExistingID)

	// el par inverso o con otro sitter no colisiona
	_, err = svc.Create(ctx, "ana", matches.CreateInput{SitterID: "kim"})
	assert.NoError(t, err)

	l, err := svc.List(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, l.Sent, 2)
	assert.Empty(t, l.Received)

	l, err = svc.List(ctx, "sam")
	require.NoError(t, err)
	assert.Len(t, l.Received, 1)
}

func TestRespond_SitterOnly(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "ana", matches.CreateInput{SitterID: "sam"})
	require.NoError(t, err)

	_, err = svc.Respond(ctx, "ana", m.ID, "APPROVE")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := svc.Respond(ctx, "sam", m.ID, "ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAccepted, got.Status)
	assert.NotNil(t, got.RespondedAt)

	_, err = svc.Respond(ctx, "sam", m.ID, "REJECT")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.Cancel(ctx, "ana", m.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "accepted matches cannot be cancelled")
}

func TestGetAndCancel(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "ana", matches.CreateInput{SitterID: "sam"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "sam", m.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, "bob", m.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.Cancel(ctx, "sam", m.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.Cancel(ctx, "ana", m.ID))
	_, err = svc.Get(ctx, "ana", m.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// cancelado se puede volver a pedir
	_, err = svc.Create(ctx, "ana", matches.CreateInput{SitterID: "sam"})
	assert.NoError(t, err)
}
