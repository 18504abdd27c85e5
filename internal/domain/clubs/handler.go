package clubs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/clubs", func(cr chi.Router) {
		cr.Post("/", createClubHandler(svc, log))
		cr.Get("/", listClubsHandler(svc, log))
		cr.Get("/{clubID}", getClubHandler(svc, log))

		cr.Post("/{clubID}/join", joinClubHandler(svc, log))
		cr.Get("/{clubID}/members", listMembersHandler(svc, log))
		cr.Patch("/{clubID}/members/{memberID}/process", processMemberHandler(svc, log))
		cr.Patch("/{clubID}/members/{memberID}/role", changeRoleHandler(svc, log))

		cr.Post("/{clubID}/certifiers", nominateCertifierHandler(svc, log))
		cr.Get("/{clubID}/certifiers", listCertifiersHandler(svc, log))
	})
}

type createClubRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	City        string `json:"city" validate:"max=80"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type nominateCertifierRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func createClubHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClubRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			City:        req.City,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, c)
	}
}

func listClubsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getClubHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "clubID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

// joinClubHandler godoc
// @Summary Solicitar ingreso a un club
// @Description Crea una membresía MEMBER/PENDING para el actor. Si ya existe una fila para (club, usuario) responde 409 con el registro existente.
// @Tags clubs
// @Produce json
// @Param clubID path string true "ID del club"
// @Success 201 {object} Member
// @Failure 404 {object} map[string]string "club not found"
// @Failure 409 {object} map[string]string "ya es miembro o hay una solicitud pendiente"
// @Router /clubs/{clubID}/join [post]
func joinClubHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Join(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "clubID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, m)
	}
}

func listMembersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMembers(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "clubID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// processMemberHandler godoc
// @Summary Aceptar o rechazar una solicitud de ingreso
// @Description OWNER/EMPLOYEE aceptados del club. APPROVE deja la fila ACCEPTED con joinedAt; REJECT borra la fila.
// @Tags clubs
// @Accept json
// @Produce json
// @Param clubID path string true "ID del club"
// @Param memberID path string true "ID de la membresía"
// @Param payload body workflow.ProcessRequest true "APPROVE | REJECT"
// @Success 200 {object} ProcessResult
// @Failure 400 {object} map[string]string "acción inválida o ya procesada"
// @Failure 403 {object} map[string]string "forbidden"
// @Router /clubs/{clubID}/members/{memberID}/process [patch]
func processMemberHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		res, err := svc.ProcessMember(r.Context(), middleware.UserID(r.Context()),
			chi.URLParam(r, "clubID"), chi.URLParam(r, "memberID"), req.Action)
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
			chi.URLParam(r, "clubID"), chi.URLParam(r, "memberID"), req.Role)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

// nominateCertifierHandler: 201 si se crea, 200 si ya existía.
func nominateCertifierHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nominateCertifierRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, created, err := svc.NominateCertifier(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "clubID"), req.UserID)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		httpx.WriteJSON(w, status, c)
	}
}

func listCertifiersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCertifiers(r.Context(), chi.URLParam(r, "clubID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}
