package images

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/pets/{petID}/images", addImageHandler(svc, log))
	r.Get("/pets/{petID}/images", listImagesHandler(svc, log))
	r.Delete("/images/{imageID}", deleteImageHandler(svc, log))
}

type addImageRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption" validate:"max=280"`
}

func addImageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addImageRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		img, err := svc.Add(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), req.URL, req.Caption)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, img)
	}
}

func listImagesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func deleteImageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "imageID")); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
