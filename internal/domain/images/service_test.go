package images_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/app"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/platform/apperr"
)

func setup(t *testing.T) (*app.Services, pets.Pet) {
	t.Helper()
	ctx := context.Background()
	svcs := app.NewServices(app.MemoryStores(), app.Deps{})

	k, err := svcs.Kennels.Create(ctx, "breeder", kennels.CreateInput{Name: "Criadero"})
	require.NoError(t, err)
	p, err := svcs.Pets.Create(ctx, "ana", pets.CreateInput{Name: "Milo"})
	require.NoError(t, err)
	l, err := svcs.Pets.RequestLink(ctx, "ana", p.ID, k.ID)
	require.NoError(t, err)
	_, err = svcs.Pets.ProcessLink(ctx, "breeder", l.ID, "APPROVE")
	require.NoError(t, err)
	return svcs, p
}

func TestAdd(t *testing.T) {
	svcs, p := setup(t)
	ctx := context.Background()

	for _, bad := range []string{"", "ftp://x.example.com/a.jpg", "/relative.jpg", "https://"} {
		_, err := svcs.Images.Add(ctx, "ana", p.ID, bad, "")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), bad)
	}

	_, err := svcs.Images.Add(ctx, "bob", p.ID, "https://cdn.example.com/a.jpg", "")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svcs.Images.Add(ctx, "ana", "missing", "https://cdn.example.com/a.jpg", "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	img, err := svcs.Images.Add(ctx, "breeder", p.ID, "https://cdn.example.com/a.jpg", " en la expo ")
	require.NoError(t, err)
	assert.Equal(t, "en la expo", img.Caption)
	assert.Equal(t, "breeder", img.UploadedByID)

	list, err := svcs.Images.ListByPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDelete(t *testing.T) {
	svcs, p := setup(t)
	ctx := context.Background()

	img, err := svcs.Images.Add(ctx, "breeder", p.ID, "https://cdn.example.com/a.jpg", "")
	require.NoError(t, err)

	err = svcs.Images.Delete(ctx, "bob", img.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// el dueño gestiona la mascota aunque no haya subido la imagen
	require.NoError(t, svcs.Images.Delete(ctx, "ana", img.ID))

	err = svcs.Images.Delete(ctx, "ana", img.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
