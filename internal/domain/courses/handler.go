package courses

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/workflow"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/courses", func(cr chi.Router) {
		cr.Post("/", createCourseHandler(svc, log))
		cr.Get("/", listCoursesHandler(svc, log))
		cr.Get("/{courseID}", getCourseHandler(svc, log))

		cr.Post("/{courseID}/enrollments", enrollHandler(svc, log))
		cr.Get("/{courseID}/enrollments", listEnrollmentsHandler(svc, log))

		cr.Post("/{courseID}/certifiers", assignCertifierHandler(svc, log))
		cr.Get("/{courseID}/certifiers", listCertifiersHandler(svc, log))
	})

	r.Patch("/enrollments/{enrollmentID}/process", processEnrollmentHandler(svc, log))
}

type createCourseRequest struct {
	Title       string     `json:"title" validate:"required,max=160"`
	Description string     `json:"description" validate:"max=4000"`
	IssuerType  string     `json:"issuerType" validate:"omitempty,oneof=CLUB KENNEL club kennel"`
	ClubID      string     `json:"clubId"`
	KennelID    string     `json:"kennelId"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

type enrollRequest struct {
	TargetType string `json:"targetType" validate:"omitempty,oneof=USER PET user pet"`
	UserID     string `json:"userId"`
	PetID      string `json:"petId"`
	Notes      string `json:"notes" validate:"max=2000"`
}

type assignCertifierRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// createCourseHandler godoc
// @Summary Crear curso
// @Description Emisor club (OWNER/ADMIN) o kennel (OWNER).
// @Tags courses
// @Accept json
// @Produce json
// @Param body body createCourseRequest true "Curso"
// @Success 201 {object} Course
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /courses [post]
func createCourseHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourseRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		c, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Title:       req.Title,
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

func listCoursesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

func getCourseHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

// enrollHandler godoc
// @Summary Inscribir usuario o mascota
// @Tags courses
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param body body enrollRequest true "Inscripción"
// @Success 201 {object} Enrollment
// @Failure 409 {object} map[string]string
// @Router /courses/{courseID}/enrollments [post]
func enrollHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrollRequest
		if err := httpx.DecodeOptional(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		e, err := svc.Enroll(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "courseID"), EnrollInput{
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

func listEnrollmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListEnrollments(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "courseID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// processEnrollmentHandler godoc
// @Summary Aprobar o rechazar inscripción
// @Tags courses
// @Accept json
// @Produce json
// @Param enrollmentID path string true "Enrollment ID"
// @Param body body workflow.ProcessRequest true "APPROVE | REJECT"
// @Success 200 {object} Enrollment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /enrollments/{enrollmentID}/process [patch]
func processEnrollmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workflow.ProcessRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		e, err := svc.ProcessEnrollment(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "enrollmentID"), req)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
	}
}

func assignCertifierHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignCertifierRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		a, err := svc.AssignCertifier(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "courseID"), req.UserID)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

func listCertifiersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCertifiers(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}
