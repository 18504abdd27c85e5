package paperwork_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/authz/authztest"
	"pet-marketplace/internal/domain/paperwork"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/workflow"
)

func newService() *paperwork.Service {
	dir := authztest.NewDirectory().SetAdmin("root")
	return paperwork.NewService(memory.NewPaperworkRepo(), dir.RuleSet())
}

func TestSubmit(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, "ana", paperwork.SubmitInput{Title: "Pedigree"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	sub, err := svc.Submit(ctx, "ana", paperwork.SubmitInput{Title: " Pedigree ", DocumentURL: "https://files.example.com/p.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "Pedigree", sub.Title)
	assert.Equal(t, workflow.StatusPending, sub.Status)

	mine, err := svc.ListMine(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := svc.ListMine(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestProcess_AdminOnly(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "ana", paperwork.SubmitInput{Title: "Pedigree", DocumentURL: "https://files.example.com/p.pdf"})
	require.NoError(t, err)

	_, err = svc.ListPending(ctx, "ana")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.Process(ctx, "ana", sub.ID, workflow.ProcessRequest{Action: "APPROVE"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	pending, err := svc.ListPending(ctx, "root")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	got, err := svc.Process(ctx, "root", sub.ID, workflow.ProcessRequest{Action: "APPROVE", Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAccepted, got.Status)
	assert.Equal(t, "ok", got.Notes)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, "root", *got.ProcessedByID)

	pending, err = svc.ListPending(ctx, "root")
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.Process(ctx, "root", sub.ID, workflow.ProcessRequest{Action: "REJECT"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Process(ctx, "root", "missing", workflow.ProcessRequest{Action: "REJECT"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
