package matches

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
)

// RegisterRoutes registra /match plano: messages cuelga sus rutas del mismo prefijo.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/match", createMatchHandler(svc, log))
	r.Get("/match", listMatchesHandler(svc, log))
	r.Get("/match/{matchID}", getMatchHandler(svc, log))
	r.Patch("/match/{matchID}", respondMatchHandler(svc, log))
	r.Delete("/match/{matchID}", cancelMatchHandler(svc, log))
}

type createMatchRequest struct {
	SitterID string `json:"sitterId" validate:"required"`
	PetID    string `json:"petId"`
	Message  string `json:"message" validate:"max=2000"`
}

// createMatchHandler godoc
// @Summary Solicitar match a un sitter/kennel
// @Tags matches
// @Accept json
// @Produce json
// @Param body body createMatchRequest true "Match"
// @Success 201 {object} Match
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /match [post]
func createMatchHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		m, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			SitterID: req.SitterID,
			PetID:    req.PetID,
			Message:  req.Message,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, m)
	}
}

// listMatchesHandler godoc
// @Summary Mis matches
// @Description {sent: ownerId = yo, received: sitterId = yo}
// @Tags matches
// @Produce json
// @Success 200 {object} Listing
// @Router /match [get]
func listMatchesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.List(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getMatchHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

// respondMatchRequest acepta {"action":"APPROVE"} o el estado destino {"status":"ACCEPTED"}.
type respondMatchRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

func (r respondMatchRequest) decision() string {
	if strings.TrimSpace(r.Action) != "" {
		return r.Action
	}
	return r.Status
}

// respondMatchHandler godoc
// @Summary Responder match (solo el sitter)
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body respondMatchRequest true "action o status: ACCEPTED/REJECTED"
// @Success 200 {object} Match
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /match/{matchID} [patch]
func respondMatchHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req respondMatchRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		m, err := svc.Respond(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID"), req.decision())
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

func cancelMatchHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID")); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
