package apperr

import (
	"errors"
	"net/http"
)

// Kind clasifica el error para decidir el status HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Sentinels que devuelven los adapters de storage.
var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey viene de una unique constraint; es la señal autoritativa de conflicto.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Error es el error tipado que viaja desde los services hasta httpx.WriteError.
type Error struct {
	Kind    Kind
	Message string
	Details string

	// Solo para conflictos: registro existente.
	ExistingID     string
	ExistingStatus string
	Existing       any
}

func (e *Error) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func Internal(msg string) *Error { return &Error{Kind: KindInternal, Message: msg} }

// WithDetails devuelve una copia con details.
func (e *Error) WithDetails(details string) *Error {
	c := *e
	c.Details = details
	return &c
}

// WithExisting adjunta el registro que ganó el duplicate guard.
func (e *Error) WithExisting(id, status string, record any) *Error {
	c := *e
	c.ExistingID = id
	c.ExistingStatus = status
	c.Existing = record
	return &c
}

// KindOf resuelve el Kind de cualquier error, incluidos los sentinels de storage.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateKey):
		return KindConflict
	}
	return KindInternal
}

// Is reporta si err es del kind dado.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// HTTPStatus mapea Kind -> status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MapNotFound traduce ErrRecordNotFound a un NotFound con mensaje propio.
// Cualquier otro error se devuelve tal cual.
func MapNotFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRecordNotFound) {
		return NotFound(msg)
	}
	return err
}

// IsRecordNotFound es un atajo para los lookups opcionales.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
