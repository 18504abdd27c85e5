package certifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/certifications", requestHandler(svc, log))
	r.Get("/certifications/{certificationID}", getHandler(svc, log))
	r.Patch("/certifications/{certificationID}/process", processHandler(svc, log))
	r.Get("/pets/{petID}/certifications", listByPetHandler(svc, log))
}

type requestCertificationRequest struct {
	CourseID   string `json:"courseId" validate:"required"`
	TargetType string `json:"targetType"`
	PetID      string `json:"petId"`
	Notes      string `json:"notes" validate:"max=2000"`
}

// requestHandler godoc
// @Summary Solicitar certificación de mascota
// @Description Solo targetType PET. (courseId, petId) repetido => 409 con existingId y status.
// @Tags certifications
// @Accept json
// @Produce json
// @Param body body requestCertificationRequest true "Solicitud"
// @Success 201 {object} Certification
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /certifications [post]
func requestHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestCertificationRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, err := svc.Request(r.Context(), middleware.UserID(r.Context()), RequestInput{
			CourseID:   req.CourseID,
			TargetType: req.TargetType,
			PetID:      req.PetID,
			Notes:      req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, c)
	}
}

func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "certificationID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func processHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, err := svc.Process(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "certificationID"), req)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func listByPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}
