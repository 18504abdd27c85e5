package paperwork

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/paperwork", func(pr chi.Router) {
		pr.Post("/", submitHandler(svc, log))
		pr.Get("/", listMineHandler(svc, log))
		pr.Get("/pending", listPendingHandler(svc, log))
		pr.Patch("/{submissionID}/process", processHandler(svc, log))
	})
}

type submitRequest struct {
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description" validate:"max=2000"`
	DocumentURL string `json:"documentUrl" validate:"required,url"`
}

func submitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		s, err := svc.Submit(r.Context(), middleware.UserID(r.Context()), SubmitInput{
			Title:       req.Title,
			Description: req.Description,
			DocumentURL: req.DocumentURL,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, s)
	}
}

func listMineHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMine(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func listPendingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPending(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// processHandler godoc
// @Summary Procesar documentación (admin)
// @Tags paperwork
// @Accept json
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Param body body workflow.ProcessRequest true "APPROVE | REJECT"
// @Success 200 {object} Submission
// @Failure 403 {object} map[string]string
// @Router /paperwork/{submissionID}/process [patch]
func processHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		s, err := svc.Process(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "submissionID"), req)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, s)
	}
}
