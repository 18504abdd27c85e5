package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorBody es el contrato de error de toda la API.
type errorBody struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	ExistingID string `json:"existingId,omitempty"`
	Status     string `json:"status,omitempty"`
	Existing   any    `json:"existing,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError mapea err al status de su Kind. Los 5xx se loguean y responden genérico.
func WriteError(w http.ResponseWriter, log logger.Logger, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if kind == apperr.KindInternal {
		if log != nil {
			fields := map[string]any{"err": err.Error()}
			if r != nil {
				fields["method"] = r.Method
				fields["path"] = r.URL.Path
			}
			log.Error("request failed", fields)
		}
		WriteJSON(w, status, errorBody{Error: "internal error"})
		return
	}

	body := errorBody{Error: http.StatusText(status)}
	var e *apperr.Error
	if errors.As(err, &e) {
		body.Error = e.Message
		body.Details = e.Details
		body.ExistingID = e.ExistingID
		body.Status = e.ExistingStatus
		body.Existing = e.Existing
	}
	WriteJSON(w, status, body)
}

// Decode lee JSON estricto y corre las validaciones `validate:"..."` del struct.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("invalid json").WithDetails("empty body")
		}
		return apperr.Validation("invalid json").WithDetails(err.Error())
	}
	return Validate(dst)
}

// DecodeOptional acepta body vacío (PATCH/POST sin payload).
func DecodeOptional(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return Validate(dst)
	}
	err := Decode(r, dst)
	var e *apperr.Error
	if errors.As(err, &e) && e.Details == "empty body" {
		return Validate(dst)
	}
	return err
}

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				parts = append(parts, fmt.Sprintf("%s failed %s", lowerFirst(fe.Field()), fe.Tag()))
			}
			return apperr.Validation("validation failed").WithDetails(strings.Join(parts, "; "))
		}
		return apperr.Validation("validation failed").WithDetails(err.Error())
	}
	return nil
}

// QueryInt lee un entero opcional del query string.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(key + " must be an integer")
	}
	return n, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
