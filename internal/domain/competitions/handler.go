package competitions

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

// RegisterRoutes registra rutas planas: /competitions, /entries, /awarders y /awards.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/competitions", createCompetitionHandler(svc, log))
	r.Get("/competitions", listCompetitionsHandler(svc, log))
	r.Get("/competitions/{competitionID}", getCompetitionHandler(svc, log))

	r.Post("/competitions/{competitionID}/entries", enterHandler(svc, log))
	r.Get("/competitions/{competitionID}/entries", listEntriesHandler(svc, log))
	r.Patch("/entries/{entryID}/process", processEntryHandler(svc, log))

	r.Post("/competitions/{competitionID}/awarders", nominateAwarderHandler(svc, log))
	r.Get("/competitions/{competitionID}/awarders", listAwardersHandler(svc, log))
	r.Patch("/awarders/{awarderID}/process", processAwarderHandler(svc, log))

	r.Post("/awards", createAwardHandler(svc, log))
	r.Get("/awards", listAwardsHandler(svc, log))
	r.Get("/awards/{awardID}", getAwardHandler(svc, log))
	r.Post("/competitions/{competitionID}/awards", assignAwardHandler(svc, log))
	r.Get("/competitions/{competitionID}/awards", listCompetitionAwardsHandler(svc, log))
}

type createCompetitionRequest struct {
	Name        string     `json:"name" validate:"required,max=160"`
	Description string     `json:"description" validate:"max=4000"`
	IssuerType  string     `json:"issuerType" validate:"omitempty,oneof=CLUB KENNEL club kennel"`
	ClubID      string     `json:"clubId"`
	KennelID    string     `json:"kennelId"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

type enterRequest struct {
	TargetType string `json:"targetType" validate:"omitempty,oneof=USER PET user pet"`
	UserID     string `json:"userId"`
	PetID      string `json:"petId"`
	Notes      string `json:"notes" validate:"max=2000"`
}

type nominateAwarderRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type createAwardRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type assignAwardRequest struct {
	AwardID         string `json:"awardId" validate:"required"`
	EntryID         string `json:"entryId"`
	AwardedByUserID string `json:"awardedByUserId"`
}

// createCompetitionHandler godoc
// @Summary Crear competencia
// @Tags competitions
// @Accept json
// @Produce json
// @Param body body createCompetitionRequest true "Competencia"
// @Success 201 {object} Competition
// @Failure 403 {object} map[string]string
// @Router /competitions [post]
func createCompetitionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCompetitionRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			IssuerType:  req.IssuerType,
			ClubID:      req.ClubID,
			KennelID:    req.KennelID,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, c)
	}
}

func listCompetitionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), q.Get("issuerType"), q.Get("clubId"), q.Get("kennelId"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getCompetitionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "competitionID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func enterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enterRequest
		if err := httpx.DecodeOptional(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		e, err := svc.Enter(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "competitionID"), EnterInput{
			TargetType: req.TargetType,
			UserID:     req.UserID,
			PetID:      req.PetID,
			Notes:      req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, e)
	}
}

func listEntriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListEntries(r.Context(), chi.URLParam(r, "competitionID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// processEntryHandler godoc
// @Summary Aceptar o rechazar inscripción a competencia
// @Tags competitions
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body workflow.ProcessRequest true "APPROVE | REJECT"
// @Success 200 {object} Entry
// @Router /entries/{entryID}/process [patch]
func processEntryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		e, err := svc.ProcessEntry(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "entryID"), req)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
	}
}

func nominateAwarderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nominateAwarderRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		a, err := svc.NominateAwarder(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "competitionID"), req.UserID)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

func listAwardersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAwarders(r.Context(), chi.URLParam(r, "competitionID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func processAwarderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		a, err := svc.ProcessAwarder(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "awarderID"), req.Action)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

func createAwardHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAwardRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		a, err := svc.CreateAward(r.Context(), middleware.UserID(r.Context()), AwardInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

func listAwardsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAwards(r.Context())
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getAwardHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAward(r.Context(), chi.URLParam(r, "awardID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// assignAwardHandler godoc
// @Summary Asignar premio a la competencia
// @Description Un premio se liga a una sola competencia; otra competencia => 400, repetido => 409.
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param body body assignAwardRequest true "Asignación"
// @Success 201 {object} CompetitionAward
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /competitions/{competitionID}/awards [post]
func assignAwardHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignAwardRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		ca, err := svc.AssignAward(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "competitionID"), AssignInput{
			AwardID:         req.AwardID,
			EntryID:         req.EntryID,
			AwardedByUserID: req.AwardedByUserID,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ca)
	}
}

func listCompetitionAwardsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCompetitionAwards(r.Context(), chi.URLParam(r, "competitionID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}
