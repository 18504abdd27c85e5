package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
)

// Recover reemplaza chimw.Recoverer: loguea el panic con stack y responde
// el mismo JSON genérico que cualquier 500.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic":      fmt.Sprint(rec),
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"stack":      string(debug.Stack()),
				})
				httpx.WriteError(w, nil, r, apperr.Internal("panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
