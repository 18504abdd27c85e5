package workflow

import (
	"context"
	"errors"

	"pet-marketplace/internal/platform/apperr"
)

// Guard es el duplicate guard de un create: lookup por clave natural + unique constraint.
// La pre-consulta solo da un mensaje más amable; el ErrDuplicateKey del store es lo que manda.
type Guard[T any] struct {
	// Message del 409.
	Message string
	// Find busca por clave natural; sin fila devuelve apperr.ErrRecordNotFound.
	Find func(ctx context.Context) (T, error)
	// Create hace la única escritura.
	Create func(ctx context.Context) error
	// Describe extrae id y status del registro existente para el cuerpo del 409.
	Describe func(T) (id string, status string)
}

// CreateOnce corre el guard. Devuelve un Conflict con el registro existente si ya hay uno.
func CreateOnce[T any](ctx context.Context, g Guard[T]) error {
	existing, err := g.Find(ctx)
	switch {
	case err == nil:
		return g.conflict(existing)
	case !apperr.IsRecordNotFound(err):
		return err
	}

	err = g.Create(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		return err
	}

	// Perdimos la carrera: releer al ganador para el cuerpo del 409.
	winner, ferr := g.Find(ctx)
	if ferr != nil {
		return apperr.Conflict(g.message())
	}
	return g.conflict(winner)
}

func (g Guard[T]) conflict(existing T) error {
	e := apperr.Conflict(g.message())
	if g.Describe == nil {
		return e.WithExisting("", "", existing)
	}
	id, status := g.Describe(existing)
	return e.WithExisting(id, status, existing)
}

func (g Guard[T]) message() string {
	if g.Message == "" {
		return "already exists"
	}
	return g.Message
}
