package pets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

// RegisterRoutes registra rutas planas: /pets, /kennels/{id}/pets y /pet-links comparten prefijos con otros módulos.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/pets", createPetHandler(svc, log))
	r.Get("/pets", listPetsHandler(svc, log))
	r.Get("/pets/{petID}", getPetHandler(svc, log))
	r.Patch("/pets/{petID}", updatePetHandler(svc, log))
	r.Delete("/pets/{petID}", deletePetHandler(svc, log))

	// Vínculo con kennel (origen verificado)
	r.Post("/pets/{petID}/request-link", requestLinkHandler(svc, log))
	r.Get("/kennels/{kennelID}/pets", listKennelPetsHandler(svc, log))
	r.Get("/kennels/{kennelID}/pet-links", listLinksHandler(svc, log))
	r.Patch("/pet-links/{linkID}/process", processLinkHandler(svc, log))
}

type createPetRequest struct {
	Name      string `json:"name" validate:"required,max=80"`
	Species   string `json:"species" validate:"omitempty,oneof=dog cat other"`
	Breed     string `json:"breed" validate:"max=80"`
	Sex       string `json:"sex" validate:"omitempty,oneof=male female unknown"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD opcional
	Microchip string `json:"microchip" validate:"max=40"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type updatePetRequest struct {
	Name      *string         `json:"name"`
	Species   *string         `json:"species"`
	Breed     *string         `json:"breed"`
	Sex       *string         `json:"sex"`
	BirthDate json.RawMessage `json:"birthDate"`
	Microchip *string         `json:"microchip"`
	Notes     *string         `json:"notes"`
}

type requestLinkRequest struct {
	KennelID string `json:"kennelId" validate:"required"`
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, apperr.Validation("birthDate must be YYYY-MM-DD")
	}
	return &t, nil
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param body body createPetRequest true "Mascota"
// @Success 201 {object} Pet
// @Failure 400 {object} map[string]string
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}

		p, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, p)
	}
}

// listPetsHandler devuelve las mascotas del actor.
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Description Dueño o staff del kennel vinculado. birthDate: null limpia el campo.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "Pet ID"
// @Success 200 {object} Pet
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Para soportar birthDate: null hay que detectar presencia del campo.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.WriteError(w, log, r, apperr.Validation("invalid json"))
			return
		}
		b, _ := json.Marshal(raw)
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteError(w, log, r, apperr.Validation("invalid json").WithDetails(err.Error()))
			return
		}

		in := UpdateProfileInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		}
		if v, ok := raw["birthDate"]; ok {
			if string(v) == "null" {
				in.SetBirthDate(nil)
			} else {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.WriteError(w, log, r, apperr.Validation("birthDate must be YYYY-MM-DD or null"))
					return
				}
				bd, err := parseBirthDate(s)
				if err != nil {
					httpx.WriteError(w, log, r, err)
					return
				}
				in.SetBirthDate(bd)
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), in)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, updated)
	}
}

func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID")); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// requestLinkHandler godoc
// @Summary Solicitar vínculo mascota-kennel
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "Pet ID"
// @Param body body requestLinkRequest true "Kennel"
// @Success 201 {object} KennelLink
// @Failure 409 {object} map[string]string
// @Router /pets/{petID}/request-link [post]
func requestLinkHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestLinkRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		l, err := svc.RequestLink(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), req.KennelID)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, l)
	}
}

func listKennelPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByKennel(r.Context(), chi.URLParam(r, "kennelID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func listLinksHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLinks(r.Context(), middleware.UserID(r.Context()),
			chi.URLParam(r, "kennelID"), r.URL.Query().Get("status"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func processLinkHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		l, err := svc.ProcessLink(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "linkID"), req.Action)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, l)
	}
}
