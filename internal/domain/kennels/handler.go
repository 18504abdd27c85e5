package kennels

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

// RegisterRoutes monta /kennels. Las rutas de pets y pet-links por kennel viven en el paquete pets.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/kennels", createKennelHandler(svc, log))
	r.Get("/kennels", listKennelsHandler(svc, log))
	r.Get("/kennels/{kennelID}", getKennelHandler(svc, log))
	r.Post("/kennels/{kennelID}/join", joinKennelHandler(svc, log))
	r.Get("/kennels/{kennelID}/members", listMembersHandler(svc, log))
	r.Patch("/kennels/{kennelID}/members/{memberID}/process", processMemberHandler(svc, log))
	r.Patch("/kennels/{kennelID}/members/{memberID}/role", changeRoleHandler(svc, log))
}

type createKennelRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	City        string `json:"city" validate:"max=80"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func createKennelHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createKennelRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		k, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			City:        req.City,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, k)
	}
}

func listKennelsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getKennelHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := svc.Get(r.Context(), chi.URLParam(r, "kennelID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, k)
	}
}

func joinKennelHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Join(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "kennelID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, m)
	}
}

func listMembersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMembers(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "kennelID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func processMemberHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		res, err := svc.ProcessMember(r.Context(), middleware.UserID(r.Context()),
			chi.URLParam(r, "kennelID"), chi.URLParam(r, "memberID"), req.Action)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

func changeRoleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeRoleRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		m, err := svc.ChangeMemberRole(r.Context(), middleware.UserID(r.Context()),
			chi.URLParam(r, "kennelID"), chi.URLParam(r, "memberID"), req.Role)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}
