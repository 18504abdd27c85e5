package messages

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
)

// Subscriber hace el upgrade websocket y atiende la conexión (realtime.Hub).
type Subscriber interface {
	Serve(w http.ResponseWriter, r *http.Request, room string) error
}

func RegisterRoutes(r chi.Router, svc *Service, hub Subscriber, log logger.Logger) {
	r.Post("/match/{matchID}/messages", sendMessageHandler(svc, log))
	r.Get("/match/{matchID}/messages", listMessagesHandler(svc, log))
	if hub != nil {
		r.Get("/match/{matchID}/ws", subscribeHandler(svc, hub, log))
	}
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje en un match aceptado
// @Tags messages
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body sendMessageRequest true "Mensaje"
// @Success 201 {object} Event
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /match/{matchID}/messages [post]
func sendMessageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		ev, err := svc.Send(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID"), req.Body)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ev)
	}
}

func listMessagesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := httpx.QueryInt(r, "limit", DefaultLimit)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		items, err := svc.List(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID"), limit)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func subscribeHandler(svc *Service, hub Subscriber, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := svc.CanSubscribe(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "matchID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		if err := hub.Serve(w, r, room); err != nil {
			log.Debug("messages: websocket closed", map[string]any{"room": room, "err": err.Error()})
		}
	}
}
